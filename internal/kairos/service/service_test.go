package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/foundation/dateformat"
	"github.com/msto63/kairos/internal/kairos/metrics"
	"github.com/msto63/kairos/pkg/core/config"
	"github.com/msto63/kairos/pkg/core/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestService(t *testing.T, mutate func(*Config)) *Service {
	t.Helper()
	defaults := config.Default()
	cfg := Config{
		Detection: defaults.Detection,
		Cache:     defaults.Cache,
		Registry:  dateformat.NewRegistry(),
		Metrics:   metrics.New(prometheus.NewRegistry()),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestParse(t *testing.T) {
	s := newTestService(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  ParseRequest
		want time.Time
		kind string
	}{
		{
			name: "strict date optional time",
			req:  ParseRequest{Pattern: "strict_date_optional_time", Text: "2014-05-05T12:12:12.123Z"},
			want: time.Date(2014, 5, 5, 12, 12, 12, 123_000_000, time.UTC),
			kind: "textual",
		},
		{
			name: "epoch millis",
			req:  ParseRequest{Pattern: "epoch_millis", Text: "12345.6789"},
			want: time.Unix(12, 345_678_900),
			kind: "epoch_millis",
		},
		{
			name: "composite falls through to epoch",
			req:  ParseRequest{Pattern: "strict_date_optional_time||epoch_millis", Text: "123"},
			want: time.UnixMilli(123),
			kind: "composite",
		},
		{
			name: "german locale with zone",
			req:  ParseRequest{Pattern: "dd. MMMM yyyy", Text: "10. März 2014", Locale: "de", Zone: "Europe/Berlin"},
			want: time.Date(2014, 3, 9, 23, 0, 0, 0, time.UTC),
			kind: "textual",
		},
		{
			name: "zone only applies to zone-less input",
			req:  ParseRequest{Pattern: "yyyy/MM/dd HH:mm:ss", Text: "2014/10/10 12:12:12", Zone: "+02:00"},
			want: time.Date(2014, 10, 10, 10, 12, 12, 0, time.UTC),
			kind: "textual",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Parse(ctx, tt.req)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !res.Time.Equal(tt.want) {
				t.Errorf("Parse() time = %v, want %v", res.Time, tt.want)
			}
			if res.Kind != tt.kind {
				t.Errorf("Parse() kind = %q, want %q", res.Kind, tt.kind)
			}
			if res.Pattern != tt.req.Pattern {
				t.Errorf("Parse() pattern = %q, want %q", res.Pattern, tt.req.Pattern)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	s := newTestService(t, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     ParseRequest
		code    kerror.Code
		message string
	}{
		{"empty pattern", ParseRequest{Pattern: " ", Text: "1"}, kerror.CodeInvalidInput, "pattern must not be empty"},
		{"invalid number", ParseRequest{Pattern: "epoch_millis", Text: "invalid"}, kerror.CodeInvalidNumber, "invalid number [invalid]"},
		{"granularity", ParseRequest{Pattern: "epoch_second", Text: "1234.1234567890"}, kerror.CodeTooMuchGranularity, "too much granularity after dot [1234.1234567890]"},
		{"epoch locale", ParseRequest{Pattern: "epoch_millis", Text: "1", Locale: "fr"}, kerror.CodeIllegalSetting, "epoch_millis date formatter can only be in locale ROOT"},
		{"epoch zone", ParseRequest{Pattern: "epoch_second", Text: "1", Zone: "CET"}, kerror.CodeIllegalSetting, "epoch_second date formatter can only be in zone offset UTC"},
		{"unknown zone", ParseRequest{Pattern: "yyyy", Text: "2014", Zone: "Mars/Olympus"}, kerror.CodeUnknownZone, ""},
		{"invalid locale", ParseRequest{Pattern: "yyyy", Text: "2014", Locale: "not a locale!"}, kerror.CodeInvalidLocale, ""},
		{"mismatch", ParseRequest{Pattern: "strict_date_optional_time", Text: "2014-5-05"}, kerror.CodeParseMismatch, ""},
		{"bad pattern", ParseRequest{Pattern: "yyyy||", Text: "2014"}, kerror.CodeInvalidPattern, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Parse(ctx, tt.req)
			if err == nil {
				t.Fatal("Parse() error = nil")
			}
			if !kerror.HasCode(err, tt.code) {
				t.Errorf("Parse() code = %v, want %v (%v)", kerror.GetCode(err), tt.code, err)
			}
			if tt.message != "" && err.Error() != tt.message {
				t.Errorf("Parse() error = %q, want %q", err.Error(), tt.message)
			}
		})
	}
}

func TestParseCanceled(t *testing.T) {
	s := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Parse(ctx, ParseRequest{Pattern: "epoch_millis", Text: "1"}); err != context.Canceled {
		t.Errorf("Parse() error = %v, want context.Canceled", err)
	}
}

func TestFormat(t *testing.T) {
	s := newTestService(t, nil)
	ctx := context.Background()
	instant := time.Date(2014, 5, 5, 12, 12, 12, 123_000_000, time.UTC)

	tests := []struct {
		name string
		req  FormatRequest
		want string
	}{
		{"named", FormatRequest{Pattern: "strict_date_optional_time", Time: instant}, "2014-05-05T12:12:12.123Z"},
		{"epoch millis", FormatRequest{Pattern: "epoch_millis", Time: time.Unix(12, 345_678_900)}, "12345.6789"},
		{"epoch second", FormatRequest{Pattern: "epoch_second", Time: time.Unix(1234, 0)}, "1234"},
		{"zone", FormatRequest{Pattern: "yyyy-MM-dd HH:mm", Time: instant, Zone: "Europe/Berlin"}, "2014-05-05 14:12"},
		{"composite uses first", FormatRequest{Pattern: "epoch_second||strict_date_optional_time", Time: time.Unix(1234, 0)}, "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Format(ctx, tt.req)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := s.Format(ctx, FormatRequest{Pattern: "epoch_millis", Time: instant, Locale: "de"}); !kerror.HasCode(err, kerror.CodeIllegalSetting) {
		t.Errorf("Format() with epoch locale error = %v, want illegal setting", err)
	}
}

func TestDetect(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := newTestService(t, func(c *Config) { c.Metrics = metrics.New(reg) })
	ctx := context.Background()

	res, err := s.Detect(ctx, "2014/10/10 12:12:12")
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if !res.Matched || res.Index != 1 || res.Cached {
		t.Errorf("Detect() = %+v, want uncached match at index 1", res)
	}
	if res.Pattern != "yyyy/MM/dd HH:mm:ss||yyyy/MM/dd" {
		t.Errorf("Detect() pattern = %q", res.Pattern)
	}

	again, err := s.Detect(ctx, "2014/10/10 12:12:12")
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if !again.Cached || !again.Time.Equal(res.Time) {
		t.Errorf("second Detect() = %+v, want cached copy of %+v", again, res)
	}

	miss, err := s.Detect(ctx, "2014-5-05")
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if miss.Matched || miss.Index != -1 {
		t.Errorf("Detect() = %+v, want no match", miss)
	}

	if got := testutil.ToFloat64(s.metrics.DetectTotal.WithLabelValues(metrics.ResultMatch)); got != 2 {
		t.Errorf("match counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(s.metrics.DetectCacheHits); got != 1 {
		t.Errorf("cache hit counter = %v, want 1", got)
	}
	if stats := s.CacheStats(); stats["detection_cache_size"] != 2 {
		t.Errorf("cache size = %v, want 2", stats["detection_cache_size"])
	}
}

func TestDetectWithoutCache(t *testing.T) {
	s := newTestService(t, func(c *Config) { c.Cache.Enabled = false })

	for i := 0; i < 2; i++ {
		res, err := s.Detect(context.Background(), "2014-05-05")
		if err != nil {
			t.Fatalf("Detect() error = %v", err)
		}
		if !res.Matched || res.Index != 0 || res.Cached {
			t.Errorf("Detect() = %+v, want uncached match at index 0", res)
		}
	}
	if s.CacheStats() != nil {
		t.Error("CacheStats() should be nil without a cache")
	}
}

func TestDetectDisabled(t *testing.T) {
	s := newTestService(t, func(c *Config) { c.Detection.Enabled = false })

	_, err := s.Detect(context.Background(), "2014-05-05")
	if !kerror.HasCode(err, kerror.CodeInvalidInput) {
		t.Errorf("Detect() error = %v, want invalid input", err)
	}
	if s.DetectionFormats() != nil {
		t.Errorf("DetectionFormats() = %v, want nil", s.DetectionFormats())
	}
}

func TestNewRejectsBadDetection(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.DetectionConfig)
		code   kerror.Code
	}{
		{"locale", func(d *config.DetectionConfig) { d.Locale = "not a locale!" }, kerror.CodeInvalidLocale},
		{"zone", func(d *config.DetectionConfig) { d.Zone = "Mars/Olympus" }, kerror.CodeUnknownZone},
		{"format", func(d *config.DetectionConfig) { d.DynamicDateFormats = []string{"yyyy||"} }, kerror.CodeServiceInitialization},
		{"epoch with locale", func(d *config.DetectionConfig) {
			d.DynamicDateFormats = []string{"epoch_millis"}
			d.Locale = "de"
		}, kerror.CodeServiceInitialization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg.Detection)
			_, err := New(Config{Detection: cfg.Detection, Registry: dateformat.NewRegistry()})
			if err == nil {
				t.Fatal("New() error = nil")
			}
			if !kerror.HasCode(err, tt.code) {
				t.Errorf("New() error code = %v, want %v (%v)", kerror.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestPatterns(t *testing.T) {
	s := newTestService(t, nil)
	patterns := s.Patterns()

	seen := map[string]string{}
	for i, p := range patterns {
		if i > 0 && patterns[i-1].Name >= p.Name {
			t.Errorf("Patterns() not sorted at %d: %q >= %q", i, patterns[i-1].Name, p.Name)
		}
		seen[p.Name] = p.Kind
	}
	for name, kind := range map[string]string{
		"epoch_millis":              "epoch_millis",
		"epoch_second":              "epoch_second",
		"strict_date_optional_time": "named",
	} {
		if seen[name] != kind {
			t.Errorf("Patterns()[%s] kind = %q, want %q", name, seen[name], kind)
		}
	}
}

func TestRegistryGauge(t *testing.T) {
	s := newTestService(t, nil)
	ctx := context.Background()

	before := testutil.ToFloat64(s.metrics.RegistryFormatters)
	if _, err := s.Parse(ctx, ParseRequest{Pattern: "year_month", Text: "2014-05"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if after := testutil.ToFloat64(s.metrics.RegistryFormatters); after != before+1 {
		t.Errorf("registry gauge = %v, want %v", after, before+1)
	}
	if got := testutil.ToFloat64(s.metrics.ParseTotal.WithLabelValues("textual", metrics.ResultOK)); got != 1 {
		t.Errorf("parse counter = %v, want 1", got)
	}
}

func TestRequestPatternsStayOutOfRegistry(t *testing.T) {
	registry := dateformat.NewRegistry()
	s := newTestService(t, func(cfg *Config) {
		cfg.Registry = registry
		cfg.Cache.MaxPatterns = 8
	})
	ctx := context.Background()

	before := registry.Len()
	for i := 0; i < 100; i++ {
		pattern := fmt.Sprintf("'a%d' yyyy", i)
		res, err := s.Format(ctx, FormatRequest{Pattern: pattern, Time: time.Date(2014, 5, 5, 0, 0, 0, 0, time.UTC)})
		if err != nil {
			t.Fatalf("Format(%q) error = %v", pattern, err)
		}
		if want := fmt.Sprintf("a%d 2014", i); res != want {
			t.Fatalf("Format(%q) = %q, want %q", pattern, res, want)
		}
	}
	if after := registry.Len(); after != before {
		t.Errorf("registry Len() = %d after request patterns, want %d", after, before)
	}
	if size := s.PatternCacheStats().Size; size != 8 {
		t.Errorf("pattern cache size = %d, want 8", size)
	}

	// a composite with a built-in segment adds only that segment
	if _, err := s.Parse(ctx, ParseRequest{Pattern: "'b' yyyy||epoch_second", Text: "1234"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, ok := registry.Lookup("'b' yyyy||epoch_second"); ok {
		t.Error("composite request pattern must not enter the registry")
	}
	if _, ok := registry.Lookup(dateformat.EpochSecond); !ok {
		t.Error("built-in segment should resolve through the registry")
	}

	// repeated patterns are served from the pattern cache
	first, err := s.Resolve("'c' yyyy", "", "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Resolve("'c' yyyy", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("Resolve() should reuse the cached formatter")
	}

	// configured dynamic formats keep their registry instance
	for _, pattern := range s.formats {
		f, err := s.Resolve(pattern, "", "")
		if err != nil {
			t.Fatal(err)
		}
		if cached, ok := registry.Lookup(pattern); !ok || cached != f {
			t.Errorf("Resolve(%q) should return the registry instance", pattern)
		}
	}
}

func TestHealthChecks(t *testing.T) {
	s := newTestService(t, nil)

	registry := health.NewRegistry("kairos", "test")
	for _, c := range s.HealthChecks() {
		registry.Register(c)
	}
	report := registry.Check(context.Background())
	if report.Status != health.StatusHealthy {
		t.Errorf("report status = %v, want healthy: %+v", report.Status, report.Checks)
	}
	if len(report.Checks) != 2 {
		t.Errorf("checks = %d, want 2", len(report.Checks))
	}
}
