// File: detector_test.go
// Title: Dynamic Date Detection Tests
// Description: Strictness of the default formats and detector configuration.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package mapping

import (
	"testing"
	"time"

	"github.com/msto63/kairos/foundation/core/i18n"
	"github.com/msto63/kairos/foundation/dateformat"
	"github.com/msto63/kairos/foundation/utils/timex"
)

func TestRootObjectParsingIsStrict(t *testing.T) {
	datesThatWork := []string{"2014/10/10", "2014/10/10 12:12:12", "2014-05-05", "2014-05-05T12:12:12.123Z"}
	datesThatShouldNotWork := []string{
		"5-05-05", "2014-5-05", "2014-05-5",
		"2014-05-05T1:12:12.123Z", "2014-05-05T12:1:12.123Z", "2014-05-05T12:12:1.123Z",
		"4/10/10", "2014/1/10", "2014/10/1",
		"2014/10/10 1:12:12", "2014/10/10 12:1:12", "2014/10/10 12:12:1",
	}

	d := Default()
	for _, date := range datesThatWork {
		if !d.IsDate(date) {
			t.Errorf("IsDate(%q) = false, want true", date)
		}
	}
	for _, date := range datesThatShouldNotWork {
		for _, f := range d.Formatters() {
			if _, err := f.Parse(date); err == nil {
				t.Errorf("%s parsed %q, want error", f.Pattern(), date)
			}
		}
	}
}

func TestDetect(t *testing.T) {
	d := Default()

	tests := []struct {
		text      string
		wantIndex int
		want      time.Time
	}{
		{"2014-05-05T12:12:12.123Z", 0, time.Date(2014, 5, 5, 12, 12, 12, 123_000_000, time.UTC)},
		{"2014/10/10 12:12:12", 1, time.Date(2014, 10, 10, 12, 12, 12, 0, time.UTC)},
		{"2014/10/10", 1, time.Date(2014, 10, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			m, ok := d.Detect(tt.text)
			if !ok {
				t.Fatalf("Detect(%q) found no match", tt.text)
			}
			if m.Index != tt.wantIndex || m.Formatter != d.Formatters()[tt.wantIndex] {
				t.Errorf("Index = %d, want %d", m.Index, tt.wantIndex)
			}
			if !m.Time.Equal(tt.want) {
				t.Errorf("Time = %v, want %v", m.Time, tt.want)
			}
		})
	}

	if m, ok := d.Detect("hello"); ok {
		t.Errorf("Detect(hello) = %+v, want no match", m)
	}
}

func TestDefaultFormatsComeFromRegistry(t *testing.T) {
	patterns := Default().Patterns()
	if len(patterns) != len(DefaultDynamicDateFormats) {
		t.Fatalf("Patterns() = %v", patterns)
	}
	for i, p := range patterns {
		if p != DefaultDynamicDateFormats[i] {
			t.Errorf("Patterns()[%d] = %q, want %q", i, p, DefaultDynamicDateFormats[i])
		}
		if Default().Formatters()[i] != dateformat.MustForPattern(p) {
			t.Errorf("formatter %q should be the cached instance", p)
		}
	}
}

func TestNewWithConfig(t *testing.T) {
	berlin := timex.MustLoadZone("Europe/Berlin")
	d, err := New(Config{
		Formats:  []string{"dd. MMMM yyyy", "epoch_millis"},
		Locale:   i18n.German,
		Registry: dateformat.NewRegistry(),
	})
	if err == nil {
		t.Fatalf("epoch formats must reject a non-root locale, got %v", d.Patterns())
	}

	d, err = New(Config{
		Formats: []string{"dd. MMMM yyyy"},
		Locale:  i18n.German,
		Zone:    berlin,
	})
	if err != nil {
		t.Fatal(err)
	}
	m, ok := d.Detect("10. März 2014")
	if !ok {
		t.Fatal("expected German month names to be detected")
	}
	if want := time.Date(2014, 3, 10, 0, 0, 0, 0, berlin); !m.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", m.Time, want)
	}

	if _, err := New(Config{Formats: []string{"yyyy||"}}); err == nil {
		t.Error("expected invalid format error")
	} else if !dateformat.IsPatternError(err) {
		t.Errorf("expected pattern error, got %v", err)
	}
}

func TestNewFromFormatters(t *testing.T) {
	d := NewFromFormatters(nil, dateformat.MustForPattern("epoch_second"))
	if len(d.Formatters()) != 1 {
		t.Fatalf("nil formatters should be skipped")
	}
	m, ok := d.Detect("1234.5")
	if !ok || m.Time.UnixMilli() != 1234500 {
		t.Errorf("Detect() = %+v, %v", m, ok)
	}
	if NewFromFormatters().IsDate("2014-05-05") {
		t.Error("an empty detector never detects dates")
	}
}
