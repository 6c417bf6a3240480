// File: detector.go
// Title: Dynamic Date Detection
// Description: Decides whether a string field holds a date by trying an
//              ordered list of formatters. The first formatter that parses
//              the text wins.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package mapping

import (
	"sync"
	"time"

	"github.com/msto63/kairos/foundation/calendar"
	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/foundation/core/i18n"
	"github.com/msto63/kairos/foundation/dateformat"
)

// DefaultDynamicDateFormats are the formats tried for new string fields of
// a root object
var DefaultDynamicDateFormats = []string{
	"strict_date_optional_time",
	"yyyy/MM/dd HH:mm:ss||yyyy/MM/dd",
}

// Config configures a DateDetector
type Config struct {
	// Formats are tried in order; DefaultDynamicDateFormats when empty
	Formats []string
	// Locale for textual fields; root when zero
	Locale i18n.Locale
	// Zone for zone-less input; nil leaves the formatters unchanged
	Zone *time.Location
	// Registry resolves the formats; dateformat.Default() when nil
	Registry *dateformat.Registry
}

// DateDetector holds an immutable, ordered list of formatters
type DateDetector struct {
	formatters []*dateformat.DateFormatter
}

// Match describes a successful detection
type Match struct {
	// Index of the formatter in the detector list
	Index     int
	Formatter *dateformat.DateFormatter
	Parsed    *calendar.Parsed
	Time      time.Time
}

// New builds a detector from cfg
func New(cfg Config) (*DateDetector, error) {
	formats := cfg.Formats
	if len(formats) == 0 {
		formats = DefaultDynamicDateFormats
	}
	registry := cfg.Registry
	if registry == nil {
		registry = dateformat.Default()
	}

	formatters := make([]*dateformat.DateFormatter, 0, len(formats))
	for _, format := range formats {
		f, err := registry.ForPattern(format)
		if err != nil {
			return nil, kerror.Wrap(err, "invalid dynamic date format ["+format+"]").
				WithOperation("mapping.New")
		}
		if !cfg.Locale.IsRoot() {
			if f, err = f.WithLocale(cfg.Locale); err != nil {
				return nil, err
			}
		}
		if cfg.Zone != nil {
			if f, err = f.WithZone(cfg.Zone); err != nil {
				return nil, err
			}
		}
		formatters = append(formatters, f)
	}
	return &DateDetector{formatters: formatters}, nil
}

// NewFromFormatters builds a detector over already resolved formatters
func NewFromFormatters(formatters ...*dateformat.DateFormatter) *DateDetector {
	list := make([]*dateformat.DateFormatter, 0, len(formatters))
	for _, f := range formatters {
		if f != nil {
			list = append(list, f)
		}
	}
	return &DateDetector{formatters: list}
}

var defaultDetector = sync.OnceValue(func() *DateDetector {
	d, err := New(Config{})
	if err != nil {
		panic("mapping: invalid default dynamic date formats: " + err.Error())
	}
	return d
})

// Default returns the detector over DefaultDynamicDateFormats
func Default() *DateDetector {
	return defaultDetector()
}

// Formatters returns a copy of the formatter list
func (d *DateDetector) Formatters() []*dateformat.DateFormatter {
	out := make([]*dateformat.DateFormatter, len(d.formatters))
	copy(out, d.formatters)
	return out
}

// Patterns returns the formatter patterns in order
func (d *DateDetector) Patterns() []string {
	patterns := make([]string, len(d.formatters))
	for i, f := range d.formatters {
		patterns[i] = f.Pattern()
	}
	return patterns
}

// Detect returns the first formatter that parses text
func (d *DateDetector) Detect(text string) (Match, bool) {
	for i, f := range d.formatters {
		parsed, err := f.Parse(text)
		if err != nil {
			continue
		}
		return Match{Index: i, Formatter: f, Parsed: parsed, Time: parsed.Time(nil)}, true
	}
	return Match{}, false
}

// IsDate reports whether any formatter parses text
func (d *DateDetector) IsDate(text string) bool {
	_, ok := d.Detect(text)
	return ok
}
