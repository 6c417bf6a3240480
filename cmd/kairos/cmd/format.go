package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/internal/kairos/service"
	"github.com/spf13/cobra"
)

var formatOpts struct {
	pattern     string
	locale      string
	zone        string
	epochMillis string
}

var formatCmd = &cobra.Command{
	Use:   "format [RFC3339]",
	Short: "Print an instant with a pattern",
	Long: `Print an instant with --pattern. The instant is the RFC 3339 argument,
--epoch-millis, or the current time when neither is given.

Examples:
  kairos format --pattern epoch_second 2014-05-05T12:12:12.5Z
  kairos format --pattern "EEEE, d. MMMM yyyy HH:mm" --locale de --zone Europe/Berlin --epoch-millis 1399291932000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().StringVarP(&formatOpts.pattern, "pattern", "p", "", "pattern, named format or composite (required)")
	formatCmd.Flags().StringVarP(&formatOpts.locale, "locale", "l", "", "locale for textual fields")
	formatCmd.Flags().StringVarP(&formatOpts.zone, "zone", "z", "", "zone to print in")
	formatCmd.Flags().StringVar(&formatOpts.epochMillis, "epoch-millis", "", "instant as milliseconds since the epoch")
	_ = formatCmd.MarkFlagRequired("pattern")
	rootCmd.AddCommand(formatCmd)
}

func formatInstant(args []string) (time.Time, error) {
	switch {
	case len(args) == 1 && formatOpts.epochMillis != "":
		return time.Time{}, kerror.New("give either an RFC 3339 argument or --epoch-millis").
			WithCode(kerror.CodeInvalidInput)
	case len(args) == 1:
		t, err := time.Parse(time.RFC3339Nano, args[0])
		if err != nil {
			return time.Time{}, kerror.Wrap(err, "invalid RFC 3339 time ["+args[0]+"]").
				WithCode(kerror.CodeInvalidInput)
		}
		return t, nil
	case formatOpts.epochMillis != "":
		ms, err := strconv.ParseInt(formatOpts.epochMillis, 10, 64)
		if err != nil {
			return time.Time{}, kerror.Wrap(err, "invalid --epoch-millis ["+formatOpts.epochMillis+"]").
				WithCode(kerror.CodeInvalidInput)
		}
		return time.UnixMilli(ms).UTC(), nil
	default:
		return time.Now().UTC(), nil
	}
}

func runFormat(cmd *cobra.Command, args []string) error {
	t, err := formatInstant(args)
	if err != nil {
		return err
	}

	b, err := openBackend()
	if err != nil {
		return err
	}
	defer b.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	text, err := b.Format(ctx, service.FormatRequest{
		Pattern: formatOpts.pattern,
		Time:    t,
		Locale:  formatOpts.locale,
		Zone:    formatOpts.zone,
	})
	if err != nil {
		return err
	}

	if outputJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]string{"text": text})
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
