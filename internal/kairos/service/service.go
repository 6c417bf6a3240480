// Package service implements the date formatting operations exposed by the
// kairos server and CLI.
package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/msto63/kairos/foundation/calendar"
	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/foundation/core/i18n"
	"github.com/msto63/kairos/foundation/dateformat"
	"github.com/msto63/kairos/foundation/mapping"
	"github.com/msto63/kairos/foundation/utils/timex"
	"github.com/msto63/kairos/internal/kairos/metrics"
	"github.com/msto63/kairos/pkg/core/cache"
	"github.com/msto63/kairos/pkg/core/config"
	"github.com/msto63/kairos/pkg/core/health"
	"github.com/msto63/kairos/pkg/core/logging"
)

// Config holds service dependencies
type Config struct {
	Detection config.DetectionConfig
	Cache     config.CacheConfig
	// Registry resolves patterns; dateformat.Default() when nil
	Registry *dateformat.Registry
	// Metrics is optional
	Metrics *metrics.Metrics
	Logger  *logging.Logger
}

// Service resolves formatters and runs parse, format and detection requests
type Service struct {
	registry *dateformat.Registry
	// request patterns outside the built-in set, bounded by
	// cache.max_patterns
	patterns *cache.Cache[string, *dateformat.DateFormatter]
	detector *mapping.DateDetector
	formats  []string
	cache    *cache.DetectionCache
	capacity int
	metrics  *metrics.Metrics
	logger   *logging.Logger
}

// ParseRequest asks to parse Text with Pattern. Locale and Zone are optional
// overrides applied to the formatter.
type ParseRequest struct {
	Pattern string
	Text    string
	Locale  string
	Zone    string
}

// ParseResult is the outcome of a successful parse
type ParseResult struct {
	Pattern string
	Kind    string
	Parsed  *calendar.Parsed
	// Time is the resolved instant in the parsed offset, the formatter zone
	// or UTC, in that order of precedence
	Time time.Time
}

// FormatRequest asks to print Time with Pattern
type FormatRequest struct {
	Pattern string
	Time    time.Time
	Locale  string
	Zone    string
}

// DetectResult is the outcome of a dynamic date detection
type DetectResult struct {
	Matched bool
	Index   int
	Pattern string
	Time    time.Time
	Cached  bool
}

// PatternInfo describes a built-in pattern name
type PatternInfo struct {
	Name string
	Kind string
}

// New creates the service and its detector
func New(cfg Config) (*Service, error) {
	log := cfg.Logger
	if log == nil {
		log = logging.New("service")
	}
	registry := cfg.Registry
	if registry == nil {
		registry = dateformat.Default()
	}

	s := &Service{
		registry: registry,
		metrics:  cfg.Metrics,
		logger:   log,
	}

	if cfg.Detection.Enabled {
		locale, err := i18n.ParseLocale(cfg.Detection.Locale)
		if err != nil {
			return nil, kerror.Wrap(err, "invalid detection locale").WithOperation("service.New")
		}
		var zone *time.Location
		if cfg.Detection.Zone != "" {
			if zone, err = timex.LoadZone(cfg.Detection.Zone); err != nil {
				return nil, kerror.Wrap(err, "invalid detection zone").WithOperation("service.New")
			}
		}
		detector, err := mapping.New(mapping.Config{
			Formats:  cfg.Detection.DynamicDateFormats,
			Locale:   locale,
			Zone:     zone,
			Registry: registry,
		})
		if err != nil {
			return nil, kerror.Wrap(err, "failed to build date detector").
				WithCode(kerror.CodeServiceInitialization).
				WithOperation("service.New")
		}
		s.detector = detector
		s.formats = detector.Patterns()
	}

	s.patterns = cache.New[string, *dateformat.DateFormatter](cache.Config{
		MaxItems:        cfg.Cache.MaxPatterns,
		TTL:             cfg.Cache.TTL.Duration,
		CleanupInterval: cfg.Cache.CleanupInterval.Duration,
	})
	if cfg.Cache.Enabled && s.detector != nil {
		s.capacity = cfg.Cache.MaxEntries
		s.cache = cache.NewDetectionCache(cache.Config{
			MaxItems:        cfg.Cache.MaxEntries,
			TTL:             cfg.Cache.TTL.Duration,
			CleanupInterval: cfg.Cache.CleanupInterval.Duration,
		})
	}

	s.metrics.SetRegistryFormatters(registry.Len())
	log.Debug("service initialized",
		"detection", s.detector != nil,
		"cache", s.cache != nil,
		"formats", strings.Join(s.formats, ","),
	)
	return s, nil
}

// Close releases the pattern and detection caches
func (s *Service) Close() {
	s.patterns.Close()
	if s.cache != nil {
		s.cache.Close()
	}
}

// Resolve returns the formatter for pattern with the optional locale and
// zone applied. Built-in patterns and those the detector already resolved
// come from the registry; any other pattern is compiled into a bounded
// cache and never enters the registry.
func (s *Service) Resolve(pattern, locale, zone string) (*dateformat.DateFormatter, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, kerror.New("pattern must not be empty").
			WithCode(kerror.CodeInvalidInput).
			WithOperation("service.Resolve")
	}

	f, err := s.formatterFor(pattern)
	if err != nil {
		return nil, err
	}

	if locale != "" {
		l, err := i18n.ParseLocale(locale)
		if err != nil {
			return nil, err
		}
		if f, err = f.WithLocale(l); err != nil {
			return nil, err
		}
	}
	if zone != "" {
		z, err := timex.LoadZone(zone)
		if err != nil {
			return nil, err
		}
		if f, err = f.WithZone(z); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (s *Service) formatterFor(pattern string) (*dateformat.DateFormatter, error) {
	if dateformat.IsBuiltin(pattern) {
		f, err := s.registry.ForPattern(pattern)
		s.metrics.SetRegistryFormatters(s.registry.Len())
		return f, err
	}
	if f, ok := s.registry.Lookup(pattern); ok {
		return f, nil
	}
	return s.patterns.GetOrSet(pattern, func() (*dateformat.DateFormatter, error) {
		f, err := s.registry.Compile(pattern)
		s.metrics.SetRegistryFormatters(s.registry.Len())
		return f, err
	})
}

// PatternCacheStats returns the counters of the request pattern cache
func (s *Service) PatternCacheStats() cache.Stats {
	return s.patterns.Stats()
}

// Parse parses req.Text with the requested formatter
func (s *Service) Parse(ctx context.Context, req ParseRequest) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() { s.metrics.ObserveLatency("parse", time.Since(start)) }()

	f, err := s.Resolve(req.Pattern, req.Locale, req.Zone)
	if err != nil {
		s.metrics.IncrementParse(dateformat.Classify(req.Pattern).String(), err)
		return nil, err
	}

	parsed, err := f.Parse(req.Text)
	s.metrics.IncrementParse(f.Kind().String(), err)
	if err != nil {
		s.logger.Debug("parse failed", "pattern", req.Pattern, "error", err.Error())
		return nil, err
	}

	return &ParseResult{
		Pattern: f.Pattern(),
		Kind:    f.Kind().String(),
		Parsed:  parsed,
		Time:    parsed.Time(nil),
	}, nil
}

// Format prints req.Time with the requested formatter
func (s *Service) Format(ctx context.Context, req FormatRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	start := time.Now()
	defer func() { s.metrics.ObserveLatency("format", time.Since(start)) }()

	f, err := s.Resolve(req.Pattern, req.Locale, req.Zone)
	if err != nil {
		return "", err
	}
	s.metrics.IncrementFormat(f.Kind().String())
	return f.Format(req.Time), nil
}

// Detect reports whether text looks like a date to the configured detector
func (s *Service) Detect(ctx context.Context, text string) (*DetectResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.detector == nil {
		return nil, kerror.New("dynamic date detection is disabled").
			WithCode(kerror.CodeInvalidInput).
			WithOperation("service.Detect")
	}
	start := time.Now()
	defer func() { s.metrics.ObserveLatency("detect", time.Since(start)) }()

	if s.cache != nil {
		if entry, ok := s.cache.Get(s.formats, text); ok {
			s.metrics.IncrementDetect(entry.Matched, true)
			return &DetectResult{
				Matched: entry.Matched,
				Index:   entry.Index,
				Pattern: entry.Pattern,
				Time:    entry.Time,
				Cached:  true,
			}, nil
		}
	}

	result := &DetectResult{Index: -1}
	if m, ok := s.detector.Detect(text); ok {
		result.Matched = true
		result.Index = m.Index
		result.Pattern = m.Formatter.Pattern()
		result.Time = m.Time
	}
	s.metrics.IncrementDetect(result.Matched, false)

	if s.cache != nil {
		s.cache.Set(s.formats, text, cache.DetectionEntry{
			Matched: result.Matched,
			Index:   result.Index,
			Pattern: result.Pattern,
			Time:    result.Time,
		})
	}
	return result, nil
}

// DetectionFormats returns the detector format list, nil when detection is
// disabled
func (s *Service) DetectionFormats() []string {
	return append([]string(nil), s.formats...)
}

// Patterns lists the built-in pattern names sorted by name
func (s *Service) Patterns() []PatternInfo {
	names := calendar.Names()
	out := make([]PatternInfo, 0, len(names)+2)
	for _, name := range names {
		out = append(out, PatternInfo{Name: name, Kind: "named"})
	}
	out = append(out,
		PatternInfo{Name: dateformat.EpochMillis, Kind: dateformat.KindEpochMillis.String()},
		PatternInfo{Name: dateformat.EpochSecond, Kind: dateformat.KindEpochSecond.String()},
	)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CacheStats returns detection cache statistics, nil without a cache
func (s *Service) CacheStats() map[string]interface{} {
	if s.cache == nil {
		return nil
	}
	return s.cache.Stats()
}

// HealthChecks returns the checks describing the service state
func (s *Service) HealthChecks() []health.Checker {
	checks := []health.Checker{
		health.ProbeCheck("formatter_registry", func(ctx context.Context) error {
			f, err := s.registry.ForPattern(dateformat.EpochMillis)
			if err != nil {
				return err
			}
			_, err = f.Parse("0")
			return err
		}),
	}
	if s.cache != nil {
		checks = append(checks, health.CapacityCheck("detection_cache", s.cache.Size, s.capacity))
	}
	return checks
}
