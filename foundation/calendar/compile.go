// File: compile.go
// Title: Pattern Compiler
// Description: Compiles a letter based date pattern ("yyyy-MM-dd'T'HH:mm")
//              into a layout program. Letter runs become field operators,
//              quoted text and other characters become literals and square
//              brackets open optional sections.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package calendar

import (
	"strings"

	kerror "github.com/msto63/kairos/foundation/core/error"
)

// Layout is a compiled date pattern. A Layout is immutable and safe for
// concurrent use.
type Layout struct {
	pattern string
	parser  []element
	printer []element
}

// Compile compiles pattern. Errors carry kerror.CodeInvalidPattern.
func Compile(pattern string) (*Layout, error) {
	elems, err := compileElements(pattern)
	if err != nil {
		return nil, err
	}
	return &Layout{pattern: pattern, parser: elems, printer: elems}, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(pattern string) *Layout {
	l, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return l
}

// Pattern returns the source pattern or the name of a named format
func (l *Layout) Pattern() string {
	return l.pattern
}

// String implements fmt.Stringer
func (l *Layout) String() string {
	return l.pattern
}

func patternError(pattern, msg string) error {
	return kerror.New(msg).
		WithCode(kerror.CodeInvalidPattern).
		WithOperation("calendar.Compile").
		WithDetail("pattern", pattern)
}

func compileElements(pattern string) ([]element, error) {
	if pattern == "" {
		return nil, patternError(pattern, "pattern must not be empty")
	}

	// stack of open sections; the bottom entry is the top level
	stack := [][]element{nil}
	var lit strings.Builder

	flush := func() {
		if lit.Len() == 0 {
			return
		}
		top := len(stack) - 1
		stack[top] = append(stack[top], element{op: opLiteral, lit: lit.String()})
		lit.Reset()
	}

	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch {
		case isLetter(c):
			j := i
			for j < len(pattern) && pattern[j] == c {
				j++
			}
			e, err := letterElement(pattern, c, j-i)
			if err != nil {
				return nil, err
			}
			flush()
			top := len(stack) - 1
			stack[top] = append(stack[top], e)
			i = j

		case c == '\'':
			j := i + 1
			var quoted strings.Builder
			closed := false
			for j < len(pattern) {
				if pattern[j] == '\'' {
					if j+1 < len(pattern) && pattern[j+1] == '\'' {
						quoted.WriteByte('\'')
						j += 2
						continue
					}
					closed = true
					j++
					break
				}
				quoted.WriteByte(pattern[j])
				j++
			}
			if !closed {
				return nil, patternError(pattern, "pattern ends with an incomplete string literal: "+pattern)
			}
			if quoted.Len() == 0 {
				// '' is an escaped quote
				lit.WriteByte('\'')
			} else {
				lit.WriteString(quoted.String())
			}
			i = j

		case c == '[':
			flush()
			stack = append(stack, nil)
			i++

		case c == ']':
			if len(stack) == 1 {
				return nil, patternError(pattern, "pattern invalid as it contains ] without previous [")
			}
			flush()
			section := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(section) > 0 {
				top := len(stack) - 1
				stack[top] = append(stack[top], element{op: opOptional, section: section})
			}
			i++

		case c == '#' || c == '{' || c == '}':
			return nil, patternError(pattern, "pattern includes reserved character: '"+string(c)+"'")

		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()

	if len(stack) != 1 {
		return nil, patternError(pattern, "pattern has an unclosed optional section: "+pattern)
	}
	elems := stack[0]
	reserveAdjacent(elems)
	return elems, nil
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// letterElement maps a run of count identical pattern letters to an element
func letterElement(pattern string, c byte, count int) (element, error) {
	run := strings.Repeat(string(c), count)
	tooMany := func() (element, error) {
		return element{}, patternError(pattern, "too many pattern letters: "+run)
	}

	switch c {
	case 'y', 'u', 'Y':
		switch {
		case count == 2:
			return element{op: opYearTwoDigit, minWidth: 2, maxWidth: 2}, nil
		case count < 4:
			return element{op: opYear, minWidth: count, maxWidth: 19, sign: signNormal}, nil
		default:
			return element{op: opYear, minWidth: count, maxWidth: 19, sign: signExceedsPad}, nil
		}

	case 'M', 'L':
		switch count {
		case 1:
			return element{op: opMonth, minWidth: 1, maxWidth: 2}, nil
		case 2:
			return element{op: opMonth, minWidth: 2, maxWidth: 2}, nil
		case 3:
			return element{op: opMonthText, short: true}, nil
		case 4:
			return element{op: opMonthText}, nil
		}
		return tooMany()

	case 'd', 'H', 'k', 'h', 'K', 'm', 's':
		if count > 2 {
			return tooMany()
		}
		return element{op: twoDigitOps[c], minWidth: count, maxWidth: 2}, nil

	case 'D':
		switch count {
		case 1:
			return element{op: opDayOfYear, minWidth: 1, maxWidth: 3}, nil
		case 2:
			return element{op: opDayOfYear, minWidth: 2, maxWidth: 3}, nil
		case 3:
			return element{op: opDayOfYear, minWidth: 3, maxWidth: 3}, nil
		}
		return tooMany()

	case 'E':
		if count > 4 {
			return tooMany()
		}
		return element{op: opWeekday, short: count < 4}, nil

	case 'a':
		if count > 1 {
			return tooMany()
		}
		return element{op: opAmPm}, nil

	case 'S':
		if count > 9 {
			return tooMany()
		}
		return element{op: opFraction, minWidth: count, maxWidth: count}, nil

	case 'X', 'x':
		styles := []offsetStyle{offsetHHmm, offsetHHMM, offsetHHcMM}
		if count > len(styles) {
			return tooMany()
		}
		return element{op: opOffset, offset: styles[count-1], zeroZ: c == 'X'}, nil

	case 'Z':
		switch {
		case count <= 3:
			return element{op: opOffset, offset: offsetHHMM}, nil
		case count == 5:
			return element{op: opOffset, offset: offsetHHcMMcss, zeroZ: true}, nil
		}
		return tooMany()

	case 'V':
		if count != 2 {
			return element{}, patternError(pattern, "pattern letter count must be 2: "+run)
		}
		return element{op: opZoneID}, nil
	}

	return element{}, patternError(pattern, "unknown pattern letter: "+string(c))
}

var twoDigitOps = map[byte]fieldOp{
	'd': opDay,
	'H': opHourOfDay,
	'k': opClockHourOfDay,
	'h': opClockHourOfAmPm,
	'K': opHourOfAmPm,
	'm': opMinute,
	's': opSecond,
}
