// File: parse.go
// Title: Strict Layout Parser
// Description: Executes a compiled layout against an input string. Numeric
//              fields honour their widths exactly, optional sections roll
//              back on failure and the whole input must be consumed. The
//              collected fields are range checked and cross validated.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Overflow checked numbers, year range -999999999 to 999999999

package calendar

import (
	"fmt"
	"math"
	"time"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/foundation/core/i18n"
	"github.com/msto63/kairos/foundation/utils/timex"
)

// Year bounds of parsed year fields
const (
	MinYear = -999_999_999
	MaxYear = 999_999_999
)

// ParseOptions configures a parse
type ParseOptions struct {
	// Locale selects the symbols for textual fields
	Locale i18n.Locale
	// Zone is recorded on the result when the input has no offset or zone
	Zone *time.Location
}

// internal fields that only take part in hour resolution
const (
	slotHourOfDay = iota
	slotClockHourOfDay
	slotClockHourOfAmPm
	slotHourOfAmPm
	slotAmPm
	numSlots
)

// state is everything a parse collects. It is a value so optional
// sections can snapshot and restore it.
type state struct {
	pos int

	present uint16
	values  [numFields]int64

	slotsSet uint8
	slots    [numSlots]int64

	hasOffset bool
	offset    int
	zone      *time.Location

	failed bool
	reason string
}

type parser struct {
	text    string
	symbols *i18n.Symbols
	state
}

// Parse parses text. Failures carry kerror.CodeParseMismatch and the
// message "failed to parse date field [<text>] with format [<pattern>]";
// the reason is available as the "reason" detail.
func (l *Layout) Parse(text string, opts ParseOptions) (*Parsed, error) {
	p := &parser{text: text, symbols: i18n.SymbolsFor(opts.Locale)}

	p.run(l.parser)
	if !p.failed && p.pos != len(p.text) {
		p.fail(fmt.Sprintf("unparsed text found at index %d", p.pos))
	}
	if !p.failed {
		p.validate()
	}
	if p.failed {
		return nil, l.mismatch(text, p.reason, p.pos)
	}

	return p.result(opts.Zone), nil
}

func (l *Layout) mismatch(text, reason string, pos int) error {
	return kerror.Newf("failed to parse date field [%s] with format [%s]", text, l.pattern).
		WithCode(kerror.CodeParseMismatch).
		WithOperation("calendar.Parse").
		WithDetail("reason", reason).
		WithDetail("position", pos)
}

func (p *parser) fail(reason string) {
	if !p.failed {
		p.failed = true
		p.reason = reason
	}
}

func (p *parser) run(elems []element) {
	for i := range elems {
		if p.failed {
			return
		}
		e := &elems[i]
		if e.op == opOptional {
			saved := p.state
			p.run(e.section)
			if p.failed {
				p.state = saved
			}
			continue
		}
		p.step(e)
	}
}

func (p *parser) step(e *element) {
	switch e.op {
	case opLiteral:
		if len(p.text)-p.pos < len(e.lit) || p.text[p.pos:p.pos+len(e.lit)] != e.lit {
			p.fail(fmt.Sprintf("expected %q at index %d", e.lit, p.pos))
			return
		}
		p.pos += len(e.lit)

	case opYear:
		if v, ok := p.year(e); ok {
			p.setField(FieldYear, v)
		}
	case opYearTwoDigit:
		if v, ok := p.number(e); ok {
			p.setField(FieldYear, 2000+v)
		}
	case opMonth:
		if v, ok := p.ranged(e, 1, 12); ok {
			p.setField(FieldMonth, v)
		}
	case opMonthText:
		month, n, ok := p.symbols.MatchMonth(p.text[p.pos:], e.short)
		if !ok {
			p.fail(fmt.Sprintf("unknown month name at index %d", p.pos))
			return
		}
		p.pos += n
		p.setField(FieldMonth, int64(month))
	case opDay:
		if v, ok := p.ranged(e, 1, 31); ok {
			p.setField(FieldDay, v)
		}
	case opDayOfYear:
		if v, ok := p.ranged(e, 1, 366); ok {
			p.setField(FieldDayOfYear, v)
		}
	case opWeekday:
		day, n, ok := p.symbols.MatchWeekday(p.text[p.pos:], e.short)
		if !ok {
			p.fail(fmt.Sprintf("unknown weekday name at index %d", p.pos))
			return
		}
		p.pos += n
		p.setField(FieldWeekday, int64(day))
	case opHourOfDay:
		if v, ok := p.ranged(e, 0, 23); ok {
			p.setSlot(slotHourOfDay, v)
		}
	case opClockHourOfDay:
		if v, ok := p.ranged(e, 1, 24); ok {
			p.setSlot(slotClockHourOfDay, v)
		}
	case opClockHourOfAmPm:
		if v, ok := p.ranged(e, 1, 12); ok {
			p.setSlot(slotClockHourOfAmPm, v)
		}
	case opHourOfAmPm:
		if v, ok := p.ranged(e, 0, 11); ok {
			p.setSlot(slotHourOfAmPm, v)
		}
	case opAmPm:
		marker, n, ok := p.symbols.MatchAmPm(p.text[p.pos:])
		if !ok {
			p.fail(fmt.Sprintf("unknown am/pm marker at index %d", p.pos))
			return
		}
		p.pos += n
		p.setSlot(slotAmPm, int64(marker))
	case opMinute:
		if v, ok := p.ranged(e, 0, 59); ok {
			p.setField(FieldMinute, v)
		}
	case opSecond:
		if v, ok := p.ranged(e, 0, 59); ok {
			p.setField(FieldSecond, v)
		}
	case opFraction:
		start := p.pos
		if v, ok := p.number(e); ok {
			digits := p.pos - start
			for ; digits < 9; digits++ {
				v *= 10
			}
			p.setField(FieldNano, v)
		}
	case opOffset:
		p.parseOffset(e.offset, e.zeroZ)
	case opZoneID:
		p.parseZoneID()
	case opZoneOrOffset:
		saved := p.state
		p.parseOffset(offsetHHcMM, true)
		if p.failed {
			p.state = saved
			p.parseOffset(offsetHHMM, true)
		}
		if p.failed {
			p.state = saved
			p.parseZoneID()
		}
	default:
		p.fail("invalid layout element " + e.op.String())
	}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// digitsAhead counts the digits starting at pos
func (p *parser) digitsAhead() int {
	n := 0
	for p.pos+n < len(p.text) && isDigit(p.text[p.pos+n]) {
		n++
	}
	return n
}

// number consumes between minWidth and maxWidth digits, leaving
// e.reserve digits for the fields that follow
func (p *parser) number(e *element) (int64, bool) {
	avail := p.digitsAhead()
	take := avail - e.reserve
	if take > e.maxWidth {
		take = e.maxWidth
	}
	if take < e.minWidth || take <= 0 {
		p.fail(fmt.Sprintf("expected %d to %d digits for %s at index %d", e.minWidth, e.maxWidth, e.op, p.pos))
		return 0, false
	}
	var v int64
	for _, c := range []byte(p.text[p.pos : p.pos+take]) {
		d := int64(c - '0')
		if v > (math.MaxInt64-d)/10 {
			p.fail(fmt.Sprintf("value out of range for %s at index %d", e.op, p.pos))
			return 0, false
		}
		v = v*10 + d
	}
	p.pos += take
	return v, true
}

func (p *parser) ranged(e *element, lo, hi int64) (int64, bool) {
	start := p.pos
	v, ok := p.number(e)
	if !ok {
		return 0, false
	}
	if v < lo || v > hi {
		p.pos = start
		p.fail(fmt.Sprintf("invalid value for %s (valid values %d - %d): %d", e.op, lo, hi, v))
		return 0, false
	}
	return v, true
}

// year handles the sign rules of year fields
func (p *parser) year(e *element) (int64, bool) {
	start := p.pos
	negative, positive := false, false
	if p.pos < len(p.text) {
		switch p.text[p.pos] {
		case '-':
			negative = true
		case '+':
			positive = true
		}
	}
	if negative || positive {
		if e.sign == signNever || (positive && e.sign != signExceedsPad) {
			p.fail(fmt.Sprintf("unexpected sign at index %d", p.pos))
			return 0, false
		}
		p.pos++
	}

	digitsStart := p.pos
	v, ok := p.number(e)
	if !ok {
		p.pos = start
		return 0, false
	}
	digits := p.pos - digitsStart

	if e.sign == signExceedsPad {
		switch {
		case positive && digits <= e.minWidth:
			p.pos = start
			p.fail(fmt.Sprintf("unexpected '+' for a %d digit year at index %d", digits, start))
			return 0, false
		case !positive && !negative && digits > e.minWidth:
			p.pos = start
			p.fail(fmt.Sprintf("year with more than %d digits needs a '+' sign at index %d", e.minWidth, start))
			return 0, false
		}
	}
	if v > MaxYear {
		p.pos = start
		p.fail(fmt.Sprintf("invalid value for %s (valid values %d - %d): %s", e.op, MinYear, MaxYear, p.text[start:digitsStart+digits]))
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

func (p *parser) setField(f Field, v int64) {
	bit := uint16(1) << f
	if p.present&bit != 0 && p.values[f] != v {
		p.fail(fmt.Sprintf("conflict found: %s %d differs from %s %d", f, p.values[f], f, v))
		return
	}
	p.present |= bit
	p.values[f] = v
}

func (p *parser) setSlot(slot int, v int64) {
	bit := uint8(1) << slot
	if p.slotsSet&bit != 0 && p.slots[slot] != v {
		p.fail("conflict found: hour fields differ")
		return
	}
	p.slotsSet |= bit
	p.slots[slot] = v
}

func (p *parser) hasSlot(slot int) bool {
	return p.slotsSet&(uint8(1)<<slot) != 0
}

// parseOffset reads "Z" (when allowed) or a signed offset in the given style
func (p *parser) parseOffset(style offsetStyle, zeroZ bool) {
	rest := p.text[p.pos:]
	if zeroZ && len(rest) > 0 && rest[0] == 'Z' {
		p.pos++
		p.setOffset(0)
		return
	}
	if len(rest) == 0 || (rest[0] != '+' && rest[0] != '-') {
		p.fail(fmt.Sprintf("expected offset at index %d", p.pos))
		return
	}
	sign := 1
	if rest[0] == '-' {
		sign = -1
	}

	i := 1
	two := func() (int, bool) {
		if i+2 > len(rest) || !isDigit(rest[i]) || !isDigit(rest[i+1]) {
			return 0, false
		}
		v := int(rest[i]-'0')*10 + int(rest[i+1]-'0')
		i += 2
		return v, true
	}

	hours, ok := two()
	if !ok {
		p.fail(fmt.Sprintf("invalid offset hours at index %d", p.pos))
		return
	}
	minutes, seconds := 0, 0

	switch style {
	case offsetHHmm:
		if m, ok := two(); ok {
			minutes = m
		}
	case offsetHHMM:
		if minutes, ok = two(); !ok {
			p.fail(fmt.Sprintf("invalid offset minutes at index %d", p.pos))
			return
		}
	case offsetHHcMM, offsetHHcMMcss:
		if i >= len(rest) || rest[i] != ':' {
			p.fail(fmt.Sprintf("expected ':' in offset at index %d", p.pos+i))
			return
		}
		i++
		if minutes, ok = two(); !ok {
			p.fail(fmt.Sprintf("invalid offset minutes at index %d", p.pos))
			return
		}
		if style == offsetHHcMMcss && i < len(rest) && rest[i] == ':' {
			i++
			if seconds, ok = two(); !ok {
				p.fail(fmt.Sprintf("invalid offset seconds at index %d", p.pos))
				return
			}
		}
	}

	if hours > 18 || minutes > 59 || seconds > 59 {
		p.fail(fmt.Sprintf("offset out of range at index %d", p.pos))
		return
	}
	total := hours*3600 + minutes*60 + seconds
	if total > timex.MaxOffsetSeconds {
		p.fail(fmt.Sprintf("offset out of range at index %d", p.pos))
		return
	}
	p.pos += i
	p.setOffset(sign * total)
}

func (p *parser) setOffset(seconds int) {
	if p.hasOffset && p.offset != seconds {
		p.fail("conflict found: offsets differ")
		return
	}
	p.hasOffset = true
	p.offset = seconds
}

func isZoneChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '/' || c == '_' || c == '-' || c == '+' || c == ':'
}

// parseZoneID reads the longest run of zone id characters and resolves it
func (p *parser) parseZoneID() {
	end := p.pos
	for end < len(p.text) && isZoneChar(p.text[end]) {
		end++
	}
	if end == p.pos || !isLetter(p.text[p.pos]) {
		p.fail(fmt.Sprintf("expected zone id at index %d", p.pos))
		return
	}
	loc, err := timex.LoadZone(p.text[p.pos:end])
	if err != nil {
		p.fail(fmt.Sprintf("unknown zone id %q at index %d", p.text[p.pos:end], p.pos))
		return
	}
	p.zone = loc
	p.pos = end
}

// validate resolves hour fields and cross checks the date
func (p *parser) validate() {
	p.resolveHour()
	if p.failed {
		return
	}

	year, hasYear := p.values[FieldYear], p.present&(1<<FieldYear) != 0
	month, hasMonth := p.values[FieldMonth], p.present&(1<<FieldMonth) != 0
	day, hasDay := p.values[FieldDay], p.present&(1<<FieldDay) != 0
	doy, hasDoy := p.values[FieldDayOfYear], p.present&(1<<FieldDayOfYear) != 0

	// without a year Feb 29 stays possible
	checkYear := int(year)
	if !hasYear {
		checkYear = 2000
	}

	if hasMonth && hasDay && day > int64(timex.DaysInMonth(checkYear, time.Month(month))) {
		p.fail(fmt.Sprintf("invalid date '%s %d'", time.Month(month), day))
		return
	}

	if hasDoy {
		if doy > int64(timex.DaysInYear(checkYear)) {
			p.fail(fmt.Sprintf("invalid date 'DayOfYear %d' for year %d", doy, checkYear))
			return
		}
		if hasYear && (hasMonth || hasDay) {
			d := time.Date(checkYear, time.January, int(doy), 0, 0, 0, 0, time.UTC)
			if (hasMonth && int64(d.Month()) != month) || (hasDay && int64(d.Day()) != day) {
				p.fail("conflict found: day-of-year differs from month and day")
				return
			}
		}
	}

	if wd, ok := p.values[FieldWeekday], p.present&(1<<FieldWeekday) != 0; ok && hasYear {
		var d time.Time
		switch {
		case hasMonth && hasDay:
			d = time.Date(checkYear, time.Month(month), int(day), 0, 0, 0, 0, time.UTC)
		case hasDoy:
			d = time.Date(checkYear, time.January, int(doy), 0, 0, 0, 0, time.UTC)
		default:
			return
		}
		if int64(d.Weekday()) != wd {
			p.fail(fmt.Sprintf("conflict found: weekday %s differs from %s derived from %s",
				time.Weekday(wd), d.Weekday(), d.Format("2006-01-02")))
		}
	}
}

func (p *parser) resolveHour() {
	var hour int64
	resolved := false

	set := func(v int64) {
		if resolved && hour != v {
			p.fail("conflict found: hour fields differ")
			return
		}
		hour, resolved = v, true
	}

	if p.hasSlot(slotHourOfDay) {
		set(p.slots[slotHourOfDay])
	}
	if p.hasSlot(slotClockHourOfDay) {
		set(p.slots[slotClockHourOfDay] % 24)
	}

	ampm := int64(0)
	if p.hasSlot(slotAmPm) {
		ampm = p.slots[slotAmPm]
	}
	if p.hasSlot(slotClockHourOfAmPm) {
		set(ampm*12 + p.slots[slotClockHourOfAmPm]%12)
	}
	if p.hasSlot(slotHourOfAmPm) {
		set(ampm*12 + p.slots[slotHourOfAmPm])
	}
	if p.hasSlot(slotAmPm) && resolved && p.hasSlot(slotHourOfDay) && hour/12 != ampm {
		p.fail("conflict found: am/pm differs from hour of day")
	}

	if resolved && !p.failed {
		p.setField(FieldHour, hour)
	}
}

func (p *parser) result(defaultZone *time.Location) *Parsed {
	r := &Parsed{
		present:   p.present,
		values:    p.values,
		hasOffset: p.hasOffset,
		offset:    p.offset,
	}
	switch {
	case p.zone != nil:
		r.zone = p.zone
		r.zoneParsed = true
	case !p.hasOffset:
		r.zone = defaultZone
	}
	return r
}
