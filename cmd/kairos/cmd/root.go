package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/internal/kairos/server"
	"github.com/msto63/kairos/internal/kairos/service"
	"github.com/msto63/kairos/pkg/core/config"
	"github.com/msto63/kairos/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	verbose    bool
	remote     string
	outputJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "kairos",
	Short: "kairos - date parsing and formatting",
	Long: `kairos parses and prints dates with named formats, custom patterns,
epoch_millis / epoch_second and composite "a||b" patterns.

Commands run locally unless --server points at a running kairos server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd, err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $KAIROS_CONFIG or ./configs/kairos.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&remote, "server", "", "address of a kairos server to query instead of running locally")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "print results as JSON")
}

func printError(cmd *cobra.Command, err error) {
	fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("error: ")+err.Error())
}

// loadConfig reads the configured file, falling back to defaults when no
// file exists
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
		if kerror.HasCode(err, kerror.CodeMissingConfig) {
			cfg, err = config.Default(), nil
		}
	}
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.General.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes to stderr so command output stays machine readable
func newLogger(cfg *config.Config, name string) *logging.Logger {
	return logging.Wrap(logging.NewLogger(logging.LoggerConfig{
		ServiceName: name,
		Level:       cfg.General.LogLevel,
		Format:      cfg.General.LogFormat,
		Output:      os.Stderr,
	}))
}

// backend is implemented by the in-process service and the remote client
type backend interface {
	Parse(ctx context.Context, req service.ParseRequest) (*server.ParseReply, error)
	Format(ctx context.Context, req service.FormatRequest) (string, error)
	Detect(ctx context.Context, text string) (*service.DetectResult, error)
	Patterns(ctx context.Context) (*server.PatternsReply, error)
	Close() error
}

type localBackend struct {
	svc *service.Service
}

func (b localBackend) Parse(ctx context.Context, req service.ParseRequest) (*server.ParseReply, error) {
	res, err := b.svc.Parse(ctx, req)
	if err != nil {
		return nil, err
	}
	reply := &server.ParseReply{Pattern: res.Pattern, Kind: res.Kind, Time: res.Time}
	reply.Offset, reply.HasOffset = res.Parsed.Offset()
	return reply, nil
}

func (b localBackend) Format(ctx context.Context, req service.FormatRequest) (string, error) {
	return b.svc.Format(ctx, req)
}

func (b localBackend) Detect(ctx context.Context, text string) (*service.DetectResult, error) {
	return b.svc.Detect(ctx, text)
}

func (b localBackend) Patterns(context.Context) (*server.PatternsReply, error) {
	return &server.PatternsReply{
		Patterns:         b.svc.Patterns(),
		DetectionFormats: b.svc.DetectionFormats(),
	}, nil
}

func (b localBackend) Close() error {
	b.svc.Close()
	return nil
}

func openBackend() (backend, error) {
	if remote != "" {
		client, err := server.Dial(remote, 10*time.Second)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	svc, err := service.New(service.Config{
		Detection: cfg.Detection,
		Cache:     cfg.Cache,
		Logger:    newLogger(cfg, "kairos"),
	})
	if err != nil {
		return nil, err
	}
	return localBackend{svc: svc}, nil
}
