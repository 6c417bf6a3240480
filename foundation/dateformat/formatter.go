// File: formatter.go
// Title: Date Formatter
// Description: Immutable formatter value with pattern, locale and zone. The
//              kind is fixed at construction: a compiled textual layout,
//              one of the two epoch grammars, or an ordered composite.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package dateformat

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/msto63/kairos/foundation/calendar"
	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/foundation/core/i18n"
	"github.com/msto63/kairos/foundation/utils/timex"
)

// Kind identifies how a formatter parses and prints
type Kind int

const (
	KindTextual Kind = iota
	KindEpochMillis
	KindEpochSecond
	KindComposite
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindTextual:
		return "textual"
	case KindEpochMillis:
		return EpochMillis
	case KindEpochSecond:
		return EpochSecond
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// DateFormatter parses text into a calendar.Parsed and prints times. Values
// are never modified after construction and may be shared freely.
type DateFormatter struct {
	pattern string
	locale  i18n.Locale
	zone    *time.Location
	kind    Kind

	layout *calendar.Layout
	parts  []*DateFormatter
}

// Pattern returns the pattern the formatter was built from, composites
// included verbatim
func (f *DateFormatter) Pattern() string {
	return f.pattern
}

// Locale returns the locale used for textual fields
func (f *DateFormatter) Locale() i18n.Locale {
	return f.locale
}

// Zone returns the zone override, nil when absent
func (f *DateFormatter) Zone() *time.Location {
	return f.zone
}

// Kind returns the formatter kind
func (f *DateFormatter) Kind() Kind {
	return f.kind
}

// Parts returns the sub-formatters of a composite in declaration order
func (f *DateFormatter) Parts() []*DateFormatter {
	if f.kind != KindComposite {
		return nil
	}
	parts := make([]*DateFormatter, len(f.parts))
	copy(parts, f.parts)
	return parts
}

// Parse interprets text. Composites try their parts in order and return
// the first success; when all fail, the last failure is returned wrapped
// with the composite pattern.
func (f *DateFormatter) Parse(text string) (*calendar.Parsed, error) {
	switch f.kind {
	case KindEpochMillis, KindEpochSecond:
		return parseEpoch(text, f.kind)
	case KindComposite:
		var lastErr error
		for _, part := range f.parts {
			parsed, err := part.Parse(text)
			if err == nil {
				return parsed, nil
			}
			lastErr = err
		}
		return nil, kerror.Wrap(lastErr, fmt.Sprintf("failed to parse [%s] with any format of [%s]", text, f.pattern)).
			WithOperation("dateformat.Parse").
			WithDetail("composite", f.pattern)
	default:
		return f.layout.Parse(text, calendar.ParseOptions{Locale: f.locale, Zone: f.zone})
	}
}

// ParseTime parses text and resolves the result to a time.Time
func (f *DateFormatter) ParseTime(text string) (time.Time, error) {
	parsed, err := f.Parse(text)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.Time(nil), nil
}

// Format prints t. Composites print with their first part.
func (f *DateFormatter) Format(t time.Time) string {
	switch f.kind {
	case KindEpochMillis, KindEpochSecond:
		return formatEpoch(t, f.kind)
	case KindComposite:
		return f.parts[0].Format(t)
	default:
		if f.zone != nil {
			t = t.In(f.zone)
		}
		return f.layout.Format(t, f.locale)
	}
}

// WithLocale returns a formatter using locale. Epoch formatters only accept
// the root locale and then return themselves.
func (f *DateFormatter) WithLocale(locale i18n.Locale) (*DateFormatter, error) {
	switch f.kind {
	case KindEpochMillis, KindEpochSecond:
		if !locale.IsRoot() {
			return nil, illegalSetting("WithLocale", "%s date formatter can only be in locale ROOT", f.pattern)
		}
		return f, nil
	case KindComposite:
		parts := make([]*DateFormatter, len(f.parts))
		for i, part := range f.parts {
			p, err := part.WithLocale(locale)
			if err != nil {
				return nil, err
			}
			parts[i] = p
		}
		c := f.clone()
		c.locale = locale
		c.parts = parts
		return c, nil
	default:
		c := f.clone()
		c.locale = locale
		return c, nil
	}
}

// WithZone returns a formatter resolving zone-less input in zone. Epoch
// formatters only accept UTC and then return themselves.
func (f *DateFormatter) WithZone(zone *time.Location) (*DateFormatter, error) {
	switch f.kind {
	case KindEpochMillis, KindEpochSecond:
		if !timex.IsUTC(zone) {
			return nil, illegalSetting("WithZone", "%s date formatter can only be in zone offset UTC", f.pattern)
		}
		return f, nil
	case KindComposite:
		parts := make([]*DateFormatter, len(f.parts))
		for i, part := range f.parts {
			p, err := part.WithZone(zone)
			if err != nil {
				return nil, err
			}
			parts[i] = p
		}
		c := f.clone()
		c.zone = zone
		c.parts = parts
		return c, nil
	default:
		c := f.clone()
		c.zone = zone
		return c, nil
	}
}

func (f *DateFormatter) clone() *DateFormatter {
	c := *f
	return &c
}

func illegalSetting(op, format, pattern string) error {
	return kerror.Newf(format, pattern).
		WithCode(kerror.CodeIllegalSetting).
		WithOperation("dateformat."+op).
		WithDetail("pattern", pattern)
}

// Equal reports whether both formatters have the same pattern, locale and
// zone
func (f *DateFormatter) Equal(other *DateFormatter) bool {
	if f == other {
		return true
	}
	if f == nil || other == nil {
		return false
	}
	return f.pattern == other.pattern &&
		f.locale.Equal(other.locale) &&
		timex.SameZone(f.zone, other.zone)
}

// Hash returns an FNV-1a hash of pattern, locale and zone key. Equal
// formatters hash equally.
func (f *DateFormatter) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(f.pattern))
	h.Write([]byte{0})
	h.Write([]byte(f.locale.String()))
	h.Write([]byte{0})
	h.Write([]byte(timex.ZoneKey(f.zone)))
	return h.Sum64()
}

// String implements fmt.Stringer
func (f *DateFormatter) String() string {
	if f.zone == nil {
		return fmt.Sprintf("format[%s] locale[%s]", f.pattern, f.locale)
	}
	return fmt.Sprintf("format[%s] locale[%s] zone[%s]", f.pattern, f.locale, timex.ZoneID(f.zone))
}
