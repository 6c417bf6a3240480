// File: builtin.go
// Title: Named Formats
// Description: Catalog of the named ISO formats (strict_date_optional_time,
//              basic_date, ...). Parsers are assembled programmatically so
//              they can use variable fraction widths and zone-or-offset
//              elements; printers are compiled from patterns.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package calendar

import (
	"sort"
	"strings"
	"sync"
	"unicode"
)

// builder assembles a parser program
type builder struct {
	elems []element
}

func (b *builder) add(e element) *builder {
	b.elems = append(b.elems, e)
	return b
}

func (b *builder) lit(s string) *builder {
	return b.add(element{op: opLiteral, lit: s})
}

func (b *builder) year(min, max int, sign signStyle) *builder {
	return b.add(element{op: opYear, minWidth: min, maxWidth: max, sign: sign})
}

func (b *builder) num(op fieldOp, min, max int) *builder {
	return b.add(element{op: op, minWidth: min, maxWidth: max})
}

func (b *builder) fraction(min, max int) *builder {
	return b.add(element{op: opFraction, minWidth: min, maxWidth: max})
}

func (b *builder) offset(style offsetStyle, zeroZ bool) *builder {
	return b.add(element{op: opOffset, offset: style, zeroZ: zeroZ})
}

func (b *builder) zoneOrOffset() *builder {
	return b.add(element{op: opZoneOrOffset})
}

func (b *builder) optional(fn func(*builder)) *builder {
	inner := &builder{}
	fn(inner)
	return b.add(element{op: opOptional, section: inner.elems})
}

func (b *builder) build() []element {
	reserveAdjacent(b.elems)
	return b.elems
}

// widths distinguishes strict fixed width formats from their lenient twins
type widths struct {
	yearMin, yearMax int
	yearSign         signStyle
	fieldMin         int
	fracMin          int
}

var (
	strictWidths  = widths{yearMin: 4, yearMax: 10, yearSign: signExceedsPad, fieldMin: 2, fracMin: 3}
	lenientWidths = widths{yearMin: 1, yearMax: 9, yearSign: signNormal, fieldMin: 1, fracMin: 1}
)

func (w widths) date(b *builder, withDay bool) {
	b.year(w.yearMin, w.yearMax, w.yearSign).
		lit("-").num(opMonth, w.fieldMin, 2)
	if withDay {
		b.lit("-").num(opDay, w.fieldMin, 2)
	}
}

func (w widths) hms(b *builder) {
	b.num(opHourOfDay, w.fieldMin, 2).
		lit(":").num(opMinute, w.fieldMin, 2).
		lit(":").num(opSecond, w.fieldMin, 2)
}

// dateOptionalTime: year[-month[-day]]['T'[HH[:mm[:ss[.fraction]]]][zone]]
func (w widths) dateOptionalTime() []element {
	b := &builder{}
	b.year(w.yearMin, w.yearMax, w.yearSign).optional(func(b *builder) {
		b.lit("-").num(opMonth, w.fieldMin, 2).optional(func(b *builder) {
			b.lit("-").num(opDay, w.fieldMin, 2)
		})
	}).optional(func(b *builder) {
		b.lit("T").optional(func(b *builder) {
			b.num(opHourOfDay, w.fieldMin, 2).optional(func(b *builder) {
				b.lit(":").num(opMinute, w.fieldMin, 2).optional(func(b *builder) {
					b.lit(":").num(opSecond, w.fieldMin, 2).optional(func(b *builder) {
						b.lit(".").fraction(w.fracMin, 9)
					})
				})
			})
		}).optional(func(b *builder) {
			b.zoneOrOffset()
		})
	})
	return b.build()
}

// dateTime: date'T'HH:mm:ss[.fraction]zone, the fraction being required
// unless noMillis is set (then it is absent)
func (w widths) dateTime(noMillis bool) []element {
	b := &builder{}
	w.date(b, true)
	b.lit("T")
	w.hms(b)
	if !noMillis {
		b.lit(".").fraction(w.fracMin, 9)
	}
	b.zoneOrOffset()
	return b.build()
}

func (w widths) dateHourMinute(withSecond bool) []element {
	b := &builder{}
	w.date(b, true)
	b.lit("T").num(opHourOfDay, w.fieldMin, 2).lit(":").num(opMinute, w.fieldMin, 2)
	if withSecond {
		b.lit(":").num(opSecond, w.fieldMin, 2)
	}
	return b.build()
}

func (w widths) yearMonthDay(month, day bool) []element {
	b := &builder{}
	b.year(w.yearMin, w.yearMax, w.yearSign)
	if month {
		b.lit("-").num(opMonth, w.fieldMin, 2)
	}
	if day {
		b.lit("-").num(opDay, w.fieldMin, 2)
	}
	return b.build()
}

func (w widths) hourMinuteSecond() []element {
	b := &builder{}
	w.hms(b)
	return b.build()
}

// timeOfDay: HH:mm:ss.fraction zone
func (w widths) timeOfDay() []element {
	b := &builder{}
	w.hms(b)
	b.lit(".").fraction(w.fracMin, 9).zoneOrOffset()
	return b.build()
}

func basicDate() []element {
	b := &builder{}
	b.year(4, 4, signNever).num(opMonth, 2, 2).num(opDay, 2, 2)
	return b.build()
}

func basicDateTime(noMillis bool) []element {
	b := &builder{}
	b.year(4, 4, signNever).num(opMonth, 2, 2).num(opDay, 2, 2).
		lit("T").num(opHourOfDay, 2, 2).num(opMinute, 2, 2).num(opSecond, 2, 2)
	if !noMillis {
		b.lit(".").fraction(3, 9)
	}
	b.optional(func(b *builder) { b.offset(offsetHHMM, true) })
	return b.build()
}

// iso8601 accepts strict dates with optional time, any fraction width and
// an optional zone or offset
func iso8601() []element {
	w := strictWidths
	w.fracMin = 1
	return w.dateOptionalTime()
}

type namedFormat struct {
	parser  func() []element
	printer string
}

var namedFormats = map[string]namedFormat{
	"strict_date_optional_time":      {strictWidths.dateOptionalTime, "yyyy-MM-dd'T'HH:mm:ss.SSSXXX"},
	"date_optional_time":             {lenientWidths.dateOptionalTime, "yyyy-MM-dd'T'HH:mm:ss.SSSXXX"},
	"strict_date":                    {func() []element { return strictWidths.yearMonthDay(true, true) }, "yyyy-MM-dd"},
	"date":                           {func() []element { return lenientWidths.yearMonthDay(true, true) }, "yyyy-MM-dd"},
	"strict_date_time":               {func() []element { return strictWidths.dateTime(false) }, "yyyy-MM-dd'T'HH:mm:ss.SSSXXX"},
	"date_time":                      {func() []element { return lenientWidths.dateTime(false) }, "yyyy-MM-dd'T'HH:mm:ss.SSSXXX"},
	"strict_date_time_no_millis":     {func() []element { return strictWidths.dateTime(true) }, "yyyy-MM-dd'T'HH:mm:ssXXX"},
	"date_time_no_millis":            {func() []element { return lenientWidths.dateTime(true) }, "yyyy-MM-dd'T'HH:mm:ssXXX"},
	"strict_date_hour_minute_second": {func() []element { return strictWidths.dateHourMinute(true) }, "yyyy-MM-dd'T'HH:mm:ss"},
	"date_hour_minute_second":        {func() []element { return lenientWidths.dateHourMinute(true) }, "yyyy-MM-dd'T'HH:mm:ss"},
	"strict_date_hour_minute":        {func() []element { return strictWidths.dateHourMinute(false) }, "yyyy-MM-dd'T'HH:mm"},
	"date_hour_minute":               {func() []element { return lenientWidths.dateHourMinute(false) }, "yyyy-MM-dd'T'HH:mm"},
	"strict_year_month_day":          {func() []element { return strictWidths.yearMonthDay(true, true) }, "yyyy-MM-dd"},
	"year_month_day":                 {func() []element { return lenientWidths.yearMonthDay(true, true) }, "yyyy-MM-dd"},
	"strict_year_month":              {func() []element { return strictWidths.yearMonthDay(true, false) }, "yyyy-MM"},
	"year_month":                     {func() []element { return lenientWidths.yearMonthDay(true, false) }, "yyyy-MM"},
	"strict_year":                    {func() []element { return strictWidths.yearMonthDay(false, false) }, "yyyy"},
	"year":                           {func() []element { return lenientWidths.yearMonthDay(false, false) }, "yyyy"},
	"strict_hour_minute_second":      {strictWidths.hourMinuteSecond, "HH:mm:ss"},
	"hour_minute_second":             {lenientWidths.hourMinuteSecond, "HH:mm:ss"},
	"strict_time":                    {strictWidths.timeOfDay, "HH:mm:ss.SSSXXX"},
	"time":                           {lenientWidths.timeOfDay, "HH:mm:ss.SSSXXX"},
	"basic_date":                     {basicDate, "yyyyMMdd"},
	"basic_date_time":                {func() []element { return basicDateTime(false) }, "yyyyMMdd'T'HHmmss.SSSX"},
	"basic_date_time_no_millis":      {func() []element { return basicDateTime(true) }, "yyyyMMdd'T'HHmmssX"},
	"iso8601":                        {iso8601, "yyyy-MM-dd'T'HH:mm:ss.SSSXXX"},
}

var builtinLayouts = sync.OnceValue(func() map[string]*Layout {
	layouts := make(map[string]*Layout, len(namedFormats))
	for name, nf := range namedFormats {
		printer, err := compileElements(nf.printer)
		if err != nil {
			panic("calendar: invalid printer for " + name + ": " + err.Error())
		}
		layouts[name] = &Layout{pattern: name, parser: nf.parser(), printer: printer}
	}
	return layouts
})

// Lookup returns the named format. camelCase names ("strictDateOptionalTime")
// are accepted as aliases.
func Lookup(name string) (*Layout, bool) {
	layouts := builtinLayouts()
	if l, ok := layouts[name]; ok {
		return l, true
	}
	l, ok := layouts[snakeCase(name)]
	return l, ok
}

// IsNamed reports whether name denotes a named format
func IsNamed(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Names returns the named formats in sorted order
func Names() []string {
	names := make([]string, 0, len(namedFormats))
	for name := range namedFormats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// snakeCase converts "strictDateOptionalTime" to "strict_date_optional_time"
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
