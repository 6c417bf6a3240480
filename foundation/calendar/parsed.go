// File: parsed.go
// Title: Parsed Date Fields
// Description: Holds the outcome of a parse: the calendar fields that were
//              present in the input, an optional offset or zone and, for
//              epoch based formats, an exact instant. Time resolves the
//              fields to a time.Time.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/msto63/kairos/foundation/utils/timex"
)

// Field names a calendar field of a parse result
type Field int

const (
	FieldYear Field = iota
	FieldMonth
	FieldDay
	FieldDayOfYear
	FieldWeekday
	FieldHour
	FieldMinute
	FieldSecond
	FieldNano

	numFields
)

var fieldNames = [numFields]string{
	"year", "month", "day", "day-of-year", "weekday", "hour", "minute", "second", "nano",
}

// String returns the field name
func (f Field) String() string {
	if f < 0 || f >= numFields {
		return "unknown"
	}
	return fieldNames[f]
}

// Parsed is the immutable result of parsing a date string
type Parsed struct {
	present uint16
	values  [numFields]int64

	hasOffset bool
	offset    int

	// zone is a parsed region id, or the formatter default when no offset
	// or zone was found in the input
	zone       *time.Location
	zoneParsed bool

	hasInstant bool
	sec        int64
	nsec       int32
}

// FromInstant builds a result that carries an exact UTC instant
func FromInstant(sec int64, nsec int32) *Parsed {
	p := &Parsed{hasInstant: true, sec: sec, nsec: nsec, zone: time.UTC}
	t := time.Unix(sec, int64(nsec)).UTC()
	p.fillFromTime(t)
	return p
}

func (p *Parsed) fillFromTime(t time.Time) {
	p.set(FieldYear, int64(t.Year()))
	p.set(FieldMonth, int64(t.Month()))
	p.set(FieldDay, int64(t.Day()))
	p.set(FieldDayOfYear, int64(t.YearDay()))
	p.set(FieldWeekday, int64(t.Weekday()))
	p.set(FieldHour, int64(t.Hour()))
	p.set(FieldMinute, int64(t.Minute()))
	p.set(FieldSecond, int64(t.Second()))
	p.set(FieldNano, int64(t.Nanosecond()))
}

func (p *Parsed) set(f Field, v int64) {
	p.present |= 1 << f
	p.values[f] = v
}

// Has reports whether the field was present
func (p *Parsed) Has(f Field) bool {
	return f >= 0 && f < numFields && p.present&(1<<f) != 0
}

// Get returns a field value and whether it was present
func (p *Parsed) Get(f Field) (int64, bool) {
	if !p.Has(f) {
		return 0, false
	}
	return p.values[f], true
}

// Offset returns the parsed UTC offset in seconds
func (p *Parsed) Offset() (int, bool) {
	return p.offset, p.hasOffset
}

// Zone returns the parsed zone, or the formatter zone recorded at parse
// time. It is nil when neither exists.
func (p *Parsed) Zone() *time.Location {
	return p.zone
}

// ZoneParsed reports whether Zone came from the input
func (p *Parsed) ZoneParsed() bool {
	return p.zoneParsed
}

// Instant returns the exact epoch seconds and nanoseconds of results
// produced by epoch formats
func (p *Parsed) Instant() (int64, int32, bool) {
	return p.sec, p.nsec, p.hasInstant
}

// HasDate reports whether the result determines a calendar date
func (p *Parsed) HasDate() bool {
	return p.hasInstant || (p.Has(FieldYear) && (p.Has(FieldDayOfYear) || (p.Has(FieldMonth) && p.Has(FieldDay))))
}

// Time resolves the result to a time.Time. An instant wins; otherwise
// missing fields default to 1970-01-01T00:00:00 and the location is the
// parsed offset, then the zone, then defaultZone, then UTC.
func (p *Parsed) Time(defaultZone *time.Location) time.Time {
	if p.hasInstant {
		loc := p.zone
		if loc == nil {
			loc = time.UTC
		}
		return time.Unix(p.sec, int64(p.nsec)).In(loc)
	}

	loc := p.location(defaultZone)
	year := int(p.valueOr(FieldYear, 1970))
	hour := int(p.valueOr(FieldHour, 0))
	minute := int(p.valueOr(FieldMinute, 0))
	second := int(p.valueOr(FieldSecond, 0))
	nano := int(p.valueOr(FieldNano, 0))

	if doy, ok := p.Get(FieldDayOfYear); ok && !(p.Has(FieldMonth) && p.Has(FieldDay)) {
		return time.Date(year, time.January, int(doy), hour, minute, second, nano, loc)
	}
	month := time.Month(p.valueOr(FieldMonth, 1))
	day := int(p.valueOr(FieldDay, 1))
	return time.Date(year, month, day, hour, minute, second, nano, loc)
}

func (p *Parsed) location(defaultZone *time.Location) *time.Location {
	switch {
	case p.hasOffset:
		return timex.FixedZone(p.offset)
	case p.zone != nil:
		return p.zone
	case defaultZone != nil:
		return defaultZone
	}
	return time.UTC
}

func (p *Parsed) valueOr(f Field, def int64) int64 {
	if v, ok := p.Get(f); ok {
		return v
	}
	return def
}

// String lists the present fields, for debugging
func (p *Parsed) String() string {
	var parts []string
	for f := Field(0); f < numFields; f++ {
		if v, ok := p.Get(f); ok {
			parts = append(parts, fmt.Sprintf("%s=%d", f, v))
		}
	}
	if p.hasOffset {
		parts = append(parts, "offset="+timex.FormatOffset(p.offset, true))
	}
	if p.zone != nil {
		parts = append(parts, "zone="+p.zone.String())
	}
	if p.hasInstant {
		parts = append(parts, fmt.Sprintf("instant=%d.%09d", p.sec, p.nsec))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
