// File: format.go
// Title: Layout Printer
// Description: Renders a time.Time with a compiled layout. Optional
//              sections are always printed.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package calendar

import (
	"strconv"
	"time"

	"github.com/msto63/kairos/foundation/core/i18n"
	"github.com/msto63/kairos/foundation/utils/timex"
)

// Format renders t using the symbols of locale
func (l *Layout) Format(t time.Time, locale i18n.Locale) string {
	return string(l.AppendFormat(make([]byte, 0, 32), t, locale))
}

// AppendFormat is like Format but appends to b
func (l *Layout) AppendFormat(b []byte, t time.Time, locale i18n.Locale) []byte {
	return appendElements(b, l.printer, t, i18n.SymbolsFor(locale))
}

func appendElements(b []byte, elems []element, t time.Time, symbols *i18n.Symbols) []byte {
	for i := range elems {
		e := &elems[i]
		switch e.op {
		case opLiteral:
			b = append(b, e.lit...)
		case opOptional:
			b = appendElements(b, e.section, t, symbols)
		case opYear:
			b = appendYear(b, e, int64(t.Year()))
		case opYearTwoDigit:
			y := int64(t.Year()) % 100
			if y < 0 {
				y = -y
			}
			b = appendPadded(b, y, 2)
		case opMonth:
			b = appendPadded(b, int64(t.Month()), e.minWidth)
		case opMonthText:
			if e.short {
				b = append(b, symbols.ShortMonths[t.Month()-1]...)
			} else {
				b = append(b, symbols.Months[t.Month()-1]...)
			}
		case opDay:
			b = appendPadded(b, int64(t.Day()), e.minWidth)
		case opDayOfYear:
			b = appendPadded(b, int64(t.YearDay()), e.minWidth)
		case opWeekday:
			if e.short {
				b = append(b, symbols.ShortWeekdays[t.Weekday()]...)
			} else {
				b = append(b, symbols.Weekdays[t.Weekday()]...)
			}
		case opHourOfDay:
			b = appendPadded(b, int64(t.Hour()), e.minWidth)
		case opClockHourOfDay:
			h := t.Hour()
			if h == 0 {
				h = 24
			}
			b = appendPadded(b, int64(h), e.minWidth)
		case opClockHourOfAmPm:
			h := t.Hour() % 12
			if h == 0 {
				h = 12
			}
			b = appendPadded(b, int64(h), e.minWidth)
		case opHourOfAmPm:
			b = appendPadded(b, int64(t.Hour()%12), e.minWidth)
		case opAmPm:
			b = append(b, symbols.AmPm[t.Hour()/12]...)
		case opMinute:
			b = appendPadded(b, int64(t.Minute()), e.minWidth)
		case opSecond:
			b = appendPadded(b, int64(t.Second()), e.minWidth)
		case opFraction:
			b = appendFraction(b, t.Nanosecond(), e.maxWidth)
		case opOffset:
			_, offset := t.Zone()
			b = appendOffset(b, offset, e.offset, e.zeroZ)
		case opZoneID:
			b = append(b, t.Location().String()...)
		case opZoneOrOffset:
			_, offset := t.Zone()
			if isRegion(t.Location()) {
				b = append(b, t.Location().String()...)
			} else {
				b = appendOffset(b, offset, offsetHHcMM, true)
			}
		}
	}
	return b
}

// isRegion reports whether loc is a named region rather than UTC or a
// fixed offset produced by timex
func isRegion(loc *time.Location) bool {
	if loc == time.UTC {
		return false
	}
	name := loc.String()
	if name == "UTC" || name == "" {
		return false
	}
	_, ok := timex.ParseOffset(name)
	return !ok
}

func appendPadded(b []byte, v int64, width int) []byte {
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	for i := len(s); i < width; i++ {
		b = append(b, '0')
	}
	return append(b, s...)
}

func appendYear(b []byte, e *element, y int64) []byte {
	if y < 0 {
		if e.sign == signNever {
			y = -y
		}
		return appendPadded(b, y, e.minWidth)
	}
	if e.sign == signExceedsPad && len(strconv.FormatInt(y, 10)) > e.minWidth {
		b = append(b, '+')
	}
	return appendPadded(b, y, e.minWidth)
}

// appendFraction writes the first width digits of the nanoseconds
func appendFraction(b []byte, nanos, width int) []byte {
	s := strconv.Itoa(nanos)
	for i := len(s); i < 9; i++ {
		b = append(b, '0')
		width--
		if width == 0 {
			return b
		}
	}
	return append(b, s[:width]...)
}

func appendOffset(b []byte, seconds int, style offsetStyle, zeroZ bool) []byte {
	if seconds == 0 && zeroZ {
		return append(b, 'Z')
	}
	sign := byte('+')
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	h, m, s := seconds/3600, seconds/60%60, seconds%60

	b = append(b, sign)
	b = appendPadded(b, int64(h), 2)
	switch style {
	case offsetHHmm:
		if m != 0 || s != 0 {
			b = appendPadded(b, int64(m), 2)
		}
	case offsetHHMM:
		b = appendPadded(b, int64(m), 2)
	case offsetHHcMM:
		b = append(b, ':')
		b = appendPadded(b, int64(m), 2)
	case offsetHHcMMcss:
		b = append(b, ':')
		b = appendPadded(b, int64(m), 2)
		if s != 0 {
			b = append(b, ':')
			b = appendPadded(b, int64(s), 2)
		}
	}
	return b
}
