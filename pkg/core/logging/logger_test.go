package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	logger := New("test-service")
	if logger.Name() != "test-service" {
		t.Errorf("Name() = %v, want test-service", logger.Name())
	}
	if logger.GetLevel().String() != "info" {
		t.Errorf("level = %v, want info", logger.GetLevel())
	}
}

func TestLogger_WithLevel(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"debug", "debug"},
		{"WARN", "warn"},
		{"bogus", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			result := New("test").WithLevel(tt.level)
			if result.Name() != "test" {
				t.Errorf("name not preserved: %v", result.Name())
			}
			if got := result.GetLevel().String(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLogger_JSONKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := Wrap(NewLogger(LoggerConfig{
		ServiceName: "kairos",
		Level:       "debug",
		Format:      "json",
		Output:      &buf,
	}))

	logger.WithRequestID("req-1").Debug("parsed", "pattern", "epoch_millis", "nanos", 42, "orphan")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	want := map[string]interface{}{
		"level":      "debug",
		"message":    "parsed",
		"logger":     "kairos",
		"request_id": "req-1",
		"pattern":    "epoch_millis",
		"nanos":      float64(42),
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("entry[%q] = %v, want %v", k, entry[k], v)
		}
	}
	if entry["!BADKEY"] != "orphan" {
		t.Errorf("a key without value should be logged under !BADKEY, got %v", entry)
	}
}

func TestNewLogger_LevelAndFormatFallbacks(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{ServiceName: "svc", Level: "loud", Format: "xml", Output: &buf})

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("unknown level should fall back to info, got %q", buf.String())
	}
	logger.Info("shown")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("unknown format should fall back to JSON, got %q", buf.String())
	}
}

func TestNewLogger_AdditionalOutputs(t *testing.T) {
	var primary, extra bytes.Buffer
	logger := NewLogger(LoggerConfig{
		ServiceName:       "svc",
		Level:             "info",
		Format:            "text",
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&extra},
	})

	logger.Warn("zone fallback")
	if !strings.Contains(primary.String(), "[WRN] {svc} zone fallback") {
		t.Errorf("primary = %q", primary.String())
	}
	if primary.String() != extra.String() {
		t.Errorf("outputs differ: %q vs %q", primary.String(), extra.String())
	}
}

func TestNewServiceLogger(t *testing.T) {
	logger := NewServiceLogger("svc", "warn", "")
	if logger.GetLevel().String() != "warn" || logger.Name() != "svc" {
		t.Errorf("logger = %v/%v", logger.GetLevel(), logger.Name())
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("my-service")

	if cfg.ServiceName != "my-service" {
		t.Errorf("ServiceName = %v, want my-service", cfg.ServiceName)
	}
	if cfg.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %v, want json", cfg.Format)
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := Wrap(NewLogger(LoggerConfig{ServiceName: "svc", Format: "logfmt", Output: &buf})).
		With("component", "detector")

	logger.Info("detected", "index", 1)
	out := buf.String()
	for _, want := range []string{`component="detector"`, "index=1", `message="detected"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestToFields(t *testing.T) {
	fields := toFields()
	if fields != nil {
		t.Error("toFields() with no args should return nil")
	}

	fields = toFields("key1", "value1", "key2", 42)
	if fields["key1"] != "value1" {
		t.Errorf("fields[key1] = %v, want value1", fields["key1"])
	}
	if fields["key2"] != 42 {
		t.Errorf("fields[key2] = %v, want 42", fields["key2"])
	}

	fields = toFields(123, "value", "dangling")
	if fields["123"] != "value" {
		t.Errorf("non-string key: %v", fields)
	}
	if fields["!BADKEY"] != "dangling" {
		t.Errorf("dangling key: %v", fields)
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := Wrap(NewLogger(LoggerConfig{ServiceName: "benchmark", Output: io.Discard}))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "iteration", i)
	}
}
