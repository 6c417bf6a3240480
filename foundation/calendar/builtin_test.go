// File: builtin_test.go
// Title: Named Format Tests
// Description: Tests for the named ISO format catalog.
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
	"testing"
	"time"

	"github.com/msto63/kairos/foundation/core/i18n"
)

func mustLookup(t *testing.T, name string) *Layout {
	t.Helper()
	l, ok := Lookup(name)
	if !ok {
		t.Fatalf("Lookup(%q) not found", name)
	}
	return l
}

func TestNamedFormatsParse(t *testing.T) {
	tests := []struct {
		format string
		text   string
		want   time.Time
	}{
		{"strict_date_optional_time", "2014-05-05T12:12:12.123Z", time.Date(2014, 5, 5, 12, 12, 12, 123_000_000, time.UTC)},
		{"strict_date_optional_time", "2014", time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"strict_date_optional_time", "2014-05", time.Date(2014, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"strict_date_optional_time", "2014-05-05", time.Date(2014, 5, 5, 0, 0, 0, 0, time.UTC)},
		{"strict_date_optional_time", "2014-05-05T12", time.Date(2014, 5, 5, 12, 0, 0, 0, time.UTC)},
		{"strict_date_optional_time", "2014-05-05T12:12", time.Date(2014, 5, 5, 12, 12, 0, 0, time.UTC)},
		{"strict_date_optional_time", "2014-05-05T12:12:12+01:00", time.Date(2014, 5, 5, 11, 12, 12, 0, time.UTC)},
		{"strict_date_optional_time", "2014-05-05T12:12:12-0130", time.Date(2014, 5, 5, 13, 42, 12, 0, time.UTC)},
		{"strict_date_optional_time", "2014-05-05T12:12:12.123456789Z", time.Date(2014, 5, 5, 12, 12, 12, 123_456_789, time.UTC)},
		{"strict_date_optional_time", "2014-07-05T12:12:12Europe/Paris", time.Date(2014, 7, 5, 10, 12, 12, 0, time.UTC)},
		{"date_optional_time", "2014-5-5T1:2:3.4Z", time.Date(2014, 5, 5, 1, 2, 3, 400_000_000, time.UTC)},
		{"strict_date", "2014-05-05", time.Date(2014, 5, 5, 0, 0, 0, 0, time.UTC)},
		{"date", "2014-5-5", time.Date(2014, 5, 5, 0, 0, 0, 0, time.UTC)},
		{"strict_date_time", "2014-05-05T12:12:12.123+02:00", time.Date(2014, 5, 5, 10, 12, 12, 123_000_000, time.UTC)},
		{"strict_date_time_no_millis", "2014-05-05T12:12:12Z", time.Date(2014, 5, 5, 12, 12, 12, 0, time.UTC)},
		{"strict_date_hour_minute_second", "2014-05-05T12:12:12", time.Date(2014, 5, 5, 12, 12, 12, 0, time.UTC)},
		{"strict_date_hour_minute", "2014-05-05T12:12", time.Date(2014, 5, 5, 12, 12, 0, 0, time.UTC)},
		{"strict_year_month", "2014-05", time.Date(2014, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"strict_year", "2014", time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"strict_hour_minute_second", "12:12:12", time.Date(1970, 1, 1, 12, 12, 12, 0, time.UTC)},
		{"strict_time", "12:12:12.123Z", time.Date(1970, 1, 1, 12, 12, 12, 123_000_000, time.UTC)},
		{"basic_date", "20141010", time.Date(2014, 10, 10, 0, 0, 0, 0, time.UTC)},
		{"basic_date_time", "20141010T121212.123Z", time.Date(2014, 10, 10, 12, 12, 12, 123_000_000, time.UTC)},
		{"basic_date_time_no_millis", "20141010T121212+0100", time.Date(2014, 10, 10, 11, 12, 12, 0, time.UTC)},
		{"iso8601", "2014-05-05T12:12:12.1Z", time.Date(2014, 5, 5, 12, 12, 12, 100_000_000, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.text, func(t *testing.T) {
			parsed, err := mustLookup(t, tt.format).Parse(tt.text, ParseOptions{})
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.text, err)
			}
			if got := parsed.Time(nil); !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNamedFormatsReject(t *testing.T) {
	tests := []struct {
		format string
		text   string
	}{
		{"strict_date_optional_time", "5-05-05"},
		{"strict_date_optional_time", "2014-5-05"},
		{"strict_date_optional_time", "2014-05-5"},
		{"strict_date_optional_time", "2014-05-05T1:12:12.123Z"},
		{"strict_date_optional_time", "2014-05-05T12:1:12.123Z"},
		{"strict_date_optional_time", "2014-05-05T12:12:1.123Z"},
		{"strict_date_optional_time", "2014-05-05T12:12:12.12Z"},
		{"strict_date_optional_time", "2014/10/10"},
		{"strict_date_optional_time", "2014-05-05 12:12:12"},
		{"strict_date_time", "2014-05-05T12:12:12Z"},
		{"strict_date", "2014-05-05T12:12"},
		{"basic_date", "2014-10-10"},
		{"strict_year", "14"},
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.text, func(t *testing.T) {
			if parsed, err := mustLookup(t, tt.format).Parse(tt.text, ParseOptions{}); err == nil {
				t.Errorf("Parse(%q) = %v, want error", tt.text, parsed)
			}
		})
	}
}

func TestNamedFormatsPrint(t *testing.T) {
	ts := time.Date(2014, 5, 5, 12, 12, 12, 123_456_789, time.UTC)
	tests := []struct {
		format string
		want   string
	}{
		{"strict_date_optional_time", "2014-05-05T12:12:12.123Z"},
		{"strict_date_time_no_millis", "2014-05-05T12:12:12Z"},
		{"strict_date", "2014-05-05"},
		{"strict_year_month", "2014-05"},
		{"strict_hour_minute_second", "12:12:12"},
		{"basic_date", "20140505"},
		{"basic_date_time", "20140505T121212.123Z"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if got := mustLookup(t, tt.format).Format(ts, i18n.Root); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	a := mustLookup(t, "strict_date_optional_time")
	b := mustLookup(t, "strictDateOptionalTime")
	if a != b {
		t.Error("camelCase alias should resolve to the same layout")
	}
	if a.Pattern() != "strict_date_optional_time" {
		t.Errorf("Pattern() = %q", a.Pattern())
	}
	if _, ok := Lookup("no_such_format"); ok {
		t.Error("Lookup of an unknown name should fail")
	}
	if !IsNamed("basic_date") || IsNamed("yyyy-MM-dd") {
		t.Error("IsNamed mismatch")
	}

	names := Names()
	if len(names) != len(namedFormats) {
		t.Errorf("Names() returned %d names, want %d", len(names), len(namedFormats))
	}
	if !sort.StringsAreSorted(names) {
		t.Error("Names() should be sorted")
	}
}

func TestNamedParseErrorUsesName(t *testing.T) {
	_, err := mustLookup(t, "strict_date_optional_time").Parse("2014-5-05", ParseOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	want := "failed to parse date field [2014-5-05] with format [strict_date_optional_time]"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
