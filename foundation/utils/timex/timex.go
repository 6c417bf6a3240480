// File: timex.go
// Title: Zone and Calendar Arithmetic Utilities
// Description: Zone resolution with a shared cache, UTC offset parsing and
//              printing, floor division helpers and month lengths used by
//              the calendar and date formatting packages.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with comprehensive time utilities
// - 2025-07-26 v0.1.1: Added FormatDurationCompact function, fixed business day logic
// - 2026-10-19 v0.2.0: Reduced to zone handling and calendar arithmetic, offsets
//                      resolve to cached fixed zones, offset aware zone
//                      identity

package timex

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	kerror "github.com/msto63/kairos/foundation/core/error"
)

// MaxOffsetSeconds bounds fixed offsets to +-18:00
const MaxOffsetSeconds = 18 * 3600

// Timezone cache for region ids and fixed offsets
var (
	timezoneCache = make(map[string]*time.Location)
	timezoneMu    sync.RWMutex
)

// getCachedLocation returns a cached timezone location or loads and caches it
func getCachedLocation(tz string) (*time.Location, error) {
	timezoneMu.RLock()
	if loc, exists := timezoneCache[tz]; exists {
		timezoneMu.RUnlock()
		return loc, nil
	}
	timezoneMu.RUnlock()

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}

	timezoneMu.Lock()
	timezoneCache[tz] = loc
	timezoneMu.Unlock()

	return loc, nil
}

// LoadZone resolves a zone id. "Z" and "UTC" resolve to time.UTC, "GMT"
// and "UT" to zero offset zones of that name, "+01:00" style offsets to a
// fixed zone and everything else to an IANA region.
func LoadZone(id string) (*time.Location, error) {
	id = strings.TrimSpace(id)
	switch strings.ToUpper(id) {
	case "":
		return nil, kerror.New("time zone id must not be empty").
			WithCode(kerror.CodeUnknownZone).
			WithOperation("timex.LoadZone")
	case "Z", "UTC":
		return time.UTC, nil
	case "GMT", "UT":
		return cachedFixedZone(strings.ToUpper(id), 0), nil
	}

	if id[0] == '+' || id[0] == '-' {
		seconds, ok := ParseOffset(id)
		if !ok {
			return nil, unknownZone(id)
		}
		return FixedZone(seconds), nil
	}

	loc, err := getCachedLocation(id)
	if err != nil {
		return nil, kerror.Wrap(err, fmt.Sprintf("unknown time zone [%s]", id)).
			WithCode(kerror.CodeUnknownZone).
			WithOperation("timex.LoadZone")
	}
	return loc, nil
}

// MustLoadZone is like LoadZone but panics on error
func MustLoadZone(id string) *time.Location {
	loc, err := LoadZone(id)
	if err != nil {
		panic(err)
	}
	return loc
}

func unknownZone(id string) error {
	return kerror.Newf("unknown time zone [%s]", id).
		WithCode(kerror.CodeUnknownZone).
		WithOperation("timex.LoadZone")
}

// FixedZone returns a cached fixed zone named after its offset. A zero
// offset yields time.UTC.
func FixedZone(seconds int) *time.Location {
	if seconds == 0 {
		return time.UTC
	}
	return cachedFixedZone(FormatOffset(seconds, true), seconds)
}

func cachedFixedZone(name string, seconds int) *time.Location {
	timezoneMu.RLock()
	loc, ok := timezoneCache[name]
	timezoneMu.RUnlock()
	if ok {
		return loc
	}

	loc = time.FixedZone(name, seconds)
	timezoneMu.Lock()
	if existing, ok := timezoneCache[name]; ok {
		loc = existing
	} else {
		timezoneCache[name] = loc
	}
	timezoneMu.Unlock()
	return loc
}

// ParseOffset parses "+HH", "+HHMM", "+HH:MM", "+HHMMSS" and "+HH:MM:SS"
// into seconds east of UTC
func ParseOffset(s string) (int, bool) {
	if len(s) < 3 || (s[0] != '+' && s[0] != '-') {
		return 0, false
	}
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	body := s[1:]

	var parts []string
	if strings.Contains(body, ":") {
		parts = strings.Split(body, ":")
	} else {
		for len(body) > 0 {
			if len(body) < 2 {
				return 0, false
			}
			parts = append(parts, body[:2])
			body = body[2:]
		}
	}
	if len(parts) == 0 || len(parts) > 3 {
		return 0, false
	}

	limits := []int{18, 59, 59}
	multipliers := []int{3600, 60, 1}
	total := 0
	for i, p := range parts {
		if len(p) != 2 {
			return 0, false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return 0, false
		}
		total += n * multipliers[i]
	}
	if total > MaxOffsetSeconds {
		return 0, false
	}
	return sign * total, true
}

// FormatOffset prints an offset as "+01:00" or "+0100". Seconds are
// appended only when non-zero.
func FormatOffset(seconds int, colon bool) string {
	sign := byte('+')
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	h, m, s := seconds/3600, seconds/60%60, seconds%60

	var b strings.Builder
	b.WriteByte(sign)
	fmt.Fprintf(&b, "%02d", h)
	if colon {
		b.WriteByte(':')
	}
	fmt.Fprintf(&b, "%02d", m)
	if s != 0 {
		if colon {
			b.WriteByte(':')
		}
		fmt.Fprintf(&b, "%02d", s)
	}
	return b.String()
}

// ZoneID returns the id of loc, "" for nil
func ZoneID(loc *time.Location) string {
	if loc == nil {
		return ""
	}
	return loc.String()
}

// zoneSamples are the instants at which ZoneKey records offsets: winter and
// summer in several eras
var zoneSamples = []time.Time{
	time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1970, 7, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2000, 7, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
}

// ZoneKey identifies loc by its id and its offsets at fixed sample instants,
// so two fixed zones sharing a name but not an offset get different keys.
// It returns "" for nil.
func ZoneKey(loc *time.Location) string {
	if loc == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(loc.String())
	for _, t := range zoneSamples {
		_, offset := t.In(loc).Zone()
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(offset))
	}
	return b.String()
}

// SameZone reports whether a and b denote the same zone: same id and same
// offsets. Two nil zones are the same; nil never equals a non-nil zone.
func SameZone(a, b *time.Location) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a == b || ZoneKey(a) == ZoneKey(b)
}

// IsUTC reports whether loc is time.UTC or a zone named "UTC" that is at
// offset zero throughout. "GMT", "UT" and "+00:00" style names are not UTC.
func IsUTC(loc *time.Location) bool {
	if loc == time.UTC {
		return true
	}
	return loc != nil && loc.String() == "UTC" && ZoneKey(loc) == ZoneKey(time.UTC)
}

// FloorDiv returns the largest integer less than or equal to a/b
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod returns a - FloorDiv(a, b)*b, which has the sign of b
func FloorMod(a, b int64) int64 {
	return a - FloorDiv(a, b)*b
}

// IsLeapYear reports whether year is a proleptic Gregorian leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the length of month in year
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// DaysInYear returns 366 for leap years and 365 otherwise
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}
