package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/foundation/core/i18n"
	"github.com/msto63/kairos/foundation/core/log"
	"github.com/msto63/kairos/foundation/dateformat"
	"github.com/msto63/kairos/foundation/mapping"
	"github.com/msto63/kairos/foundation/utils/timex"
)

// EnvConfigPath names the environment variable holding the config path
const EnvConfigPath = "KAIROS_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General   GeneralConfig   `toml:"general" yaml:"general"`
	Server    ServerConfig    `toml:"server" yaml:"server"`
	Detection DetectionConfig `toml:"detection" yaml:"detection"`
	Cache     CacheConfig     `toml:"cache" yaml:"cache"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Environment string `toml:"environment" yaml:"environment"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	LogFormat   string `toml:"log_format" yaml:"log_format"`
}

// ServerConfig holds gRPC and metrics endpoint settings
type ServerConfig struct {
	Host            string   `toml:"host" yaml:"host"`
	Port            int      `toml:"port" yaml:"port"`
	MaxRecvMsgSize  int      `toml:"max_recv_msg_size" yaml:"max_recv_msg_size"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
	// MetricsPort serves Prometheus metrics over HTTP; 0 disables it
	MetricsPort int `toml:"metrics_port" yaml:"metrics_port"`
}

// DetectionConfig holds dynamic date detection settings
type DetectionConfig struct {
	Enabled            bool     `toml:"enabled" yaml:"enabled"`
	DynamicDateFormats []string `toml:"dynamic_date_formats" yaml:"dynamic_date_formats"`
	Locale             string   `toml:"locale" yaml:"locale"`
	Zone               string   `toml:"zone" yaml:"zone"`
}

// CacheConfig holds detection result cache settings
type CacheConfig struct {
	Enabled         bool     `toml:"enabled" yaml:"enabled"`
	TTL             Duration `toml:"ttl" yaml:"ttl"`
	MaxEntries      int      `toml:"max_entries" yaml:"max_entries"`
	CleanupInterval Duration `toml:"cleanup_interval" yaml:"cleanup_interval"`
	// MaxPatterns bounds the compiled request patterns kept outside the
	// formatter registry
	MaxPatterns int `toml:"max_patterns" yaml:"max_patterns"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration string node
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{
		Detection: DetectionConfig{Enabled: true},
		Cache:     CacheConfig{Enabled: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, kerror.Newf("config file not found: %s", path).
			WithCode(kerror.CodeMissingConfig).
			WithOperation("config.Load")
	}
	if err != nil {
		return nil, kerror.Wrap(err, "failed to read config").
			WithCode(kerror.CodeConfigError).
			WithOperation("config.Load")
	}

	cfg := &Config{
		Detection: DetectionConfig{Enabled: true},
		Cache:     CacheConfig{Enabled: true},
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		_, err = toml.Decode(string(data), cfg)
	}
	if err != nil {
		return nil, kerror.Wrap(err, "failed to parse config").
			WithCode(kerror.CodeInvalidConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	// Apply defaults
	cfg.applyDefaults()

	// Expand environment variables in values
	cfg.expandEnvVars()

	return cfg, nil
}

// LoadFromEnv loads configuration from the KAIROS_CONFIG environment
// variable or the first default location that exists
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		// Try default locations
		defaultPaths := []string{
			"./configs/kairos.toml",
			"./configs/kairos.yaml",
			"./kairos.toml",
			filepath.Join(os.Getenv("HOME"), ".config/kairos/kairos.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, kerror.New("no config file found, set KAIROS_CONFIG or create configs/kairos.toml").
			WithCode(kerror.CodeMissingConfig).
			WithOperation("config.LoadFromEnv")
	}

	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "kairos"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 9260
	}
	if c.Server.MaxRecvMsgSize == 0 {
		c.Server.MaxRecvMsgSize = 4 * 1024 * 1024
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 10 * time.Second
	}

	// Detection
	if len(c.Detection.DynamicDateFormats) == 0 {
		c.Detection.DynamicDateFormats = append([]string(nil), mapping.DefaultDynamicDateFormats...)
	}

	// Cache
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = 5 * time.Minute
	}
	if c.Cache.MaxEntries == 0 {
		c.Cache.MaxEntries = 10000
	}
	if c.Cache.CleanupInterval.Duration == 0 {
		c.Cache.CleanupInterval.Duration = time.Minute
	}
	if c.Cache.MaxPatterns == 0 {
		c.Cache.MaxPatterns = 1024
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.Server.Host = os.ExpandEnv(c.Server.Host)
	c.Detection.Locale = os.ExpandEnv(c.Detection.Locale)
	c.Detection.Zone = os.ExpandEnv(c.Detection.Zone)
}

// Validate checks ports, log settings, locale, zone and every dynamic date
// format
func (c *Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return kerror.Newf(format, args...).
			WithCode(kerror.CodeInvalidConfig).
			WithOperation("config.Validate")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return invalid("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.MetricsPort < 0 || c.Server.MetricsPort > 65535 {
		return invalid("server.metrics_port out of range: %d", c.Server.MetricsPort)
	}
	if c.Server.MetricsPort != 0 && c.Server.MetricsPort == c.Server.Port {
		return invalid("server.metrics_port must differ from server.port")
	}
	if _, err := log.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level: %v", err)
	}
	if _, err := log.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format: %v", err)
	}
	if c.Cache.Enabled && c.Cache.MaxEntries < 0 {
		return invalid("cache.max_entries must not be negative")
	}
	if c.Cache.MaxPatterns < 0 {
		return invalid("cache.max_patterns must not be negative")
	}

	if _, err := i18n.ParseLocale(c.Detection.Locale); err != nil {
		return kerror.Wrap(err, "detection.locale").WithCode(kerror.CodeInvalidConfig)
	}
	if c.Detection.Zone != "" {
		if _, err := timex.LoadZone(c.Detection.Zone); err != nil {
			return kerror.Wrap(err, "detection.zone").WithCode(kerror.CodeInvalidConfig)
		}
	}
	for _, format := range c.Detection.DynamicDateFormats {
		if _, err := dateformat.ForPattern(format); err != nil {
			return kerror.Wrap(err, fmt.Sprintf("detection.dynamic_date_formats [%s]", format)).
				WithCode(kerror.CodeInvalidConfig)
		}
	}
	return nil
}

// Address returns the gRPC listen address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// MetricsAddress returns the metrics listen address, "" when disabled
func (c *Config) MetricsAddress() string {
	if c.Server.MetricsPort == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.MetricsPort)
}
