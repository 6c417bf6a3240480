// File: epoch.go
// Title: Epoch Grammars
// Description: Exact parsing and printing of milliseconds and seconds since
//              the epoch with an optional fraction: [-]digits[.[digits]].
//              A millisecond fraction carries up to 6 digits (nanoseconds),
//              a second fraction up to 9.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Accept the int64 minimum, bound epoch seconds to the
//   instant range and print whole units without int64 multiplication

package dateformat

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/msto63/kairos/foundation/calendar"
	kerror "github.com/msto63/kairos/foundation/core/error"
)

const (
	// EpochMillis is the pattern of the milliseconds-since-epoch formatter
	EpochMillis = "epoch_millis"
	// EpochSecond is the pattern of the seconds-since-epoch formatter
	EpochSecond = "epoch_second"

	nanosPerSecond = 1_000_000_000

	// Epoch second bounds of a parsed instant: years -1,000,000,000 and
	// 1,000,000,000 at the edges
	minEpochSecond = -31_557_014_167_219_200
	maxEpochSecond = 31_556_889_864_403_199
)

// epochUnit describes one epoch grammar
type epochUnit struct {
	perSecond   uint64 // units per second
	unitNanos   int64  // nanoseconds per unit
	fracDigits  int    // fraction digits of one unit
	wholeDigits int    // decimal digits of perSecond - 1
}

var (
	millisUnit = epochUnit{perSecond: 1000, unitNanos: 1_000_000, fracDigits: 6, wholeDigits: 3}
	secondUnit = epochUnit{perSecond: 1, unitNanos: nanosPerSecond, fracDigits: 9}
)

func unitOf(kind Kind) epochUnit {
	if kind == KindEpochSecond {
		return secondUnit
	}
	return millisUnit
}

func invalidNumber(text string) error {
	return kerror.Newf("invalid number [%s]", text).
		WithCode(kerror.CodeInvalidNumber).
		WithOperation("dateformat.Parse").
		WithDetail("input", text)
}

func tooMuchGranularity(text string) error {
	return kerror.Newf("too much granularity after dot [%s]", text).
		WithCode(kerror.CodeTooMuchGranularity).
		WithOperation("dateformat.Parse").
		WithDetail("input", text)
}

func instantOutOfRange(text string) error {
	return kerror.Newf("instant exceeds minimum or maximum instant [%s]", text).
		WithCode(kerror.CodeInvalidNumber).
		WithOperation("dateformat.Parse").
		WithDetail("input", text)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseEpoch parses text in sign-magnitude form: the magnitude is split into
// whole seconds and nanoseconds, then negated and floored to whole seconds.
func parseEpoch(text string, kind Kind) (*calendar.Parsed, error) {
	unit := unitOf(kind)

	s := text
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" || !isDigits(intPart) || !isDigits(fracPart) {
		return nil, invalidNumber(text)
	}
	if len(fracPart) > unit.fracDigits {
		return nil, tooMuchGranularity(text)
	}

	// the magnitude of math.MinInt64 is one past math.MaxInt64
	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}
	magnitude, err := strconv.ParseUint(intPart, 10, 64)
	if err != nil || magnitude > limit {
		return nil, invalidNumber(text)
	}

	var frac int64
	if fracPart != "" {
		// digits only and at most 9 of them, so this cannot fail
		frac, _ = strconv.ParseInt(fracPart, 10, 64)
		for i := len(fracPart); i < unit.fracDigits; i++ {
			frac *= 10
		}
	}

	wholeSec := magnitude / unit.perSecond
	nanos := int64(magnitude%unit.perSecond)*unit.unitNanos + frac
	if neg {
		if wholeSec > -minEpochSecond || (wholeSec == -minEpochSecond && nanos != 0) {
			return nil, instantOutOfRange(text)
		}
	} else if wholeSec > maxEpochSecond {
		return nil, instantOutOfRange(text)
	}

	whole := int64(wholeSec)
	sec, nsec := whole, nanos
	if neg {
		sec, nsec = -whole, 0
		if nanos != 0 {
			sec, nsec = -whole-1, nanosPerSecond-nanos
		}
	}
	return calendar.FromInstant(sec, int32(nsec)), nil
}

// formatEpoch prints the exact value of t, trimming trailing zeros of the
// fraction, so that parsing the output yields t again
func formatEpoch(t time.Time, kind Kind) string {
	unit := unitOf(kind)

	sec, nsec := t.Unix(), int64(t.Nanosecond())
	neg := sec < 0
	if neg {
		sec, nsec = -sec, -nsec
		if nsec != 0 {
			sec, nsec = sec-1, nsec+nanosPerSecond
		}
	}

	// whole units are the seconds followed by the zero-padded sub-second
	// units, which stays exact where sec*perSecond would overflow
	sub := nsec / unit.unitNanos
	frac := nsec % unit.unitNanos

	b := make([]byte, 0, 40)
	if neg {
		b = append(b, '-')
	}
	switch {
	case unit.wholeDigits == 0:
		b = strconv.AppendInt(b, sec, 10)
	case sec == 0:
		b = strconv.AppendInt(b, sub, 10)
	default:
		b = strconv.AppendInt(b, sec, 10)
		digits := strconv.FormatInt(sub, 10)
		for i := len(digits); i < unit.wholeDigits; i++ {
			b = append(b, '0')
		}
		b = append(b, digits...)
	}
	if frac != 0 {
		digits := strconv.FormatInt(frac, 10)
		b = append(b, '.')
		for i := len(digits); i < unit.fracDigits; i++ {
			b = append(b, '0')
		}
		b = append(b, strings.TrimRight(digits, "0")...)
	}
	return string(b)
}
