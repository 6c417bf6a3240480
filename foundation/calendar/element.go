// File: element.go
// Title: Layout Elements
// Description: Defines the compiled form of a date pattern: a program of
//              elements, each a literal, a field operator or an optional
//              section.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package calendar

// fieldOp is a parsing and printing operator
type fieldOp int

const (
	opLiteral fieldOp = iota
	opYear
	opYearTwoDigit
	opMonth
	opMonthText
	opDay
	opDayOfYear
	opWeekday
	opHourOfDay      // H 0-23
	opClockHourOfDay // k 1-24
	opClockHourOfAmPm
	opHourOfAmPm
	opAmPm
	opMinute
	opSecond
	opFraction
	opOffset
	opZoneID
	opZoneOrOffset
	opOptional
)

// String returns a readable operator name for error details
func (op fieldOp) String() string {
	switch op {
	case opLiteral:
		return "literal"
	case opYear, opYearTwoDigit:
		return "year"
	case opMonth, opMonthText:
		return "month"
	case opDay:
		return "day"
	case opDayOfYear:
		return "day-of-year"
	case opWeekday:
		return "weekday"
	case opHourOfDay, opClockHourOfDay, opClockHourOfAmPm, opHourOfAmPm:
		return "hour"
	case opAmPm:
		return "am-pm"
	case opMinute:
		return "minute"
	case opSecond:
		return "second"
	case opFraction:
		return "fraction"
	case opOffset:
		return "offset"
	case opZoneID:
		return "zone-id"
	case opZoneOrOffset:
		return "zone-or-offset"
	case opOptional:
		return "optional"
	}
	return "invalid"
}

// isNumeric reports whether op consumes a run of digits
func (op fieldOp) isNumeric() bool {
	switch op {
	case opYear, opYearTwoDigit, opMonth, opDay, opDayOfYear, opHourOfDay,
		opClockHourOfDay, opClockHourOfAmPm, opHourOfAmPm, opMinute, opSecond, opFraction:
		return true
	}
	return false
}

// signStyle controls signs on year fields
type signStyle int

const (
	// signNever rejects any sign
	signNever signStyle = iota
	// signNormal accepts and prints a leading '-' only
	signNormal
	// signExceedsPad requires '+' once the value has more digits than the
	// minimum width
	signExceedsPad
)

// offsetStyle selects the textual shape of a UTC offset
type offsetStyle int

const (
	offsetHHmm     offsetStyle = iota // +HH, or +HHMM when minutes are set
	offsetHHMM                        // +HHMM
	offsetHHcMM                       // +HH:MM
	offsetHHcMMcss                    // +HH:MM, :ss when set
)

// element is a single instruction of a compiled layout
type element struct {
	op       fieldOp
	lit      string
	minWidth int
	maxWidth int
	sign     signStyle
	short    bool // text fields: abbreviated names
	offset   offsetStyle
	zeroZ    bool // offsets: "Z" for zero
	reserve  int  // digits left for the adjacent fixed-width fields
	section  []element
}

func (e element) fixedWidth() bool {
	return e.op.isNumeric() && e.minWidth == e.maxWidth && e.sign == signNever
}

// reserveAdjacent lets a variable width numeric element leave room for the
// fixed width numeric elements that directly follow it ("yyyyMMdd").
// Optional sections are processed recursively and break the chain.
func reserveAdjacent(elems []element) {
	for i := range elems {
		if elems[i].op == opOptional {
			reserveAdjacent(elems[i].section)
			continue
		}
		if !elems[i].op.isNumeric() || elems[i].fixedWidth() {
			continue
		}
		reserve := 0
		for j := i + 1; j < len(elems) && elems[j].fixedWidth(); j++ {
			reserve += elems[j].maxWidth
		}
		elems[i].reserve = reserve
	}
}
