package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	kerror "github.com/msto63/kairos/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{5 * time.Minute}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "5m0s" {
		t.Errorf("MarshalText() = %v, want 5m0s", string(result))
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.General.Name != "kairos" {
		t.Errorf("General.Name = %v, want kairos", cfg.General.Name)
	}
	if cfg.General.LogLevel != "info" || cfg.General.LogFormat != "text" {
		t.Errorf("General log settings = %v/%v, want info/text", cfg.General.LogLevel, cfg.General.LogFormat)
	}
	if cfg.Server.Port != 9260 {
		t.Errorf("Server.Port = %v, want 9260", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout.Duration != 10*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 10s", cfg.Server.ShutdownTimeout.Duration)
	}
	if !cfg.Detection.Enabled {
		t.Error("Detection.Enabled should default to true")
	}
	want := []string{"strict_date_optional_time", "yyyy/MM/dd HH:mm:ss||yyyy/MM/dd"}
	if len(cfg.Detection.DynamicDateFormats) != 2 ||
		cfg.Detection.DynamicDateFormats[0] != want[0] || cfg.Detection.DynamicDateFormats[1] != want[1] {
		t.Errorf("Detection.DynamicDateFormats = %v, want %v", cfg.Detection.DynamicDateFormats, want)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTL.Duration != 5*time.Minute || cfg.Cache.MaxEntries != 10000 || cfg.Cache.MaxPatterns != 1024 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if cfg.Address() != "0.0.0.0:9260" || cfg.MetricsAddress() != "" {
		t.Errorf("addresses = %q, %q", cfg.Address(), cfg.MetricsAddress())
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/kairos.toml")
	if err == nil {
		t.Fatal("Load() expected error for non-existent file")
	}
	if !kerror.HasCode(err, kerror.CodeMissingConfig) {
		t.Errorf("code = %v, want MISSING_CONFIG", kerror.GetCode(err))
	}
}

func TestLoad_TOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "kairos.toml")

	configContent := `
[general]
name = "test-kairos"
log_level = "debug"

[server]
port = 9999
metrics_port = 9998

[detection]
enabled = false
dynamic_date_formats = ["dd.MM.yyyy", "epoch_millis"]
locale = "de_DE"
zone = "Europe/Berlin"

[cache]
ttl = "30s"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.Name != "test-kairos" || cfg.General.LogLevel != "debug" {
		t.Errorf("General = %+v", cfg.General)
	}
	if cfg.Server.Port != 9999 || cfg.MetricsAddress() != "0.0.0.0:9998" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Detection.Enabled {
		t.Error("Detection.Enabled = true, want false")
	}
	if len(cfg.Detection.DynamicDateFormats) != 2 || cfg.Detection.DynamicDateFormats[0] != "dd.MM.yyyy" {
		t.Errorf("Detection.DynamicDateFormats = %v", cfg.Detection.DynamicDateFormats)
	}
	if cfg.Cache.TTL.Duration != 30*time.Second {
		t.Errorf("Cache.TTL = %v, want 30s", cfg.Cache.TTL.Duration)
	}
	// Check defaults were applied for missing values
	if !cfg.Cache.Enabled || cfg.Cache.MaxEntries != 10000 {
		t.Errorf("Cache defaults not applied: %+v", cfg.Cache)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "kairos.yaml")
	configContent := `
general:
  log_format: json
server:
  port: 7000
detection:
  dynamic_date_formats:
    - "yyyy/MM/dd"
  zone: "+02:00"
cache:
  enabled: false
  cleanup_interval: 2m
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.General.LogFormat != "json" || cfg.Server.Port != 7000 {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.Detection.Enabled {
		t.Error("Detection.Enabled should keep its default")
	}
	if cfg.Cache.Enabled || cfg.Cache.CleanupInterval.Duration != 2*time.Minute {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_InvalidSyntax(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "kairos.toml")
	if err := os.WriteFile(configPath, []byte("[server\nport = "), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(configPath)
	if !kerror.HasCode(err, kerror.CodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"metrics port clash", func(c *Config) { c.Server.MetricsPort = c.Server.Port }},
		{"log level", func(c *Config) { c.General.LogLevel = "loud" }},
		{"log format", func(c *Config) { c.General.LogFormat = "xml" }},
		{"locale", func(c *Config) { c.Detection.Locale = "not a locale!" }},
		{"zone", func(c *Config) { c.Detection.Zone = "Mars/Olympus" }},
		{"format", func(c *Config) { c.Detection.DynamicDateFormats = []string{"yyyy||"} }},
		{"max patterns", func(c *Config) { c.Cache.MaxPatterns = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !kerror.HasCode(err, kerror.CodeInvalidConfig) {
				t.Errorf("code = %v, want INVALID_CONFIG", kerror.GetCode(err))
			}
		})
	}
}

func TestConfig_expandEnvVars(t *testing.T) {
	t.Setenv("TEST_KAIROS_ZONE", "Europe/Paris")

	cfg := &Config{Detection: DetectionConfig{Zone: "$TEST_KAIROS_ZONE"}}
	cfg.expandEnvVars()

	if cfg.Detection.Zone != "Europe/Paris" {
		t.Errorf("Zone = %v, want Europe/Paris", cfg.Detection.Zone)
	}
}

func TestLoadFromEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(configPath, []byte("[server]\nport = 9301\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, configPath)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Server.Port != 9301 {
		t.Errorf("Server.Port = %v, want 9301", cfg.Server.Port)
	}
}

func TestLoadFromEnv_NoConfigFound(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("HOME", t.TempDir())

	// Change to a temp directory without config files
	originalWd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(originalWd)

	_, err := LoadFromEnv()
	if err == nil {
		t.Fatal("LoadFromEnv() expected error when no config found")
	}
	if !kerror.HasCode(err, kerror.CodeMissingConfig) {
		t.Errorf("code = %v, want MISSING_CONFIG", kerror.GetCode(err))
	}
}
