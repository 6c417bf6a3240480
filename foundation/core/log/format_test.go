// File: format_test.go
// Title: Log Format Tests
// Description: Tests for level and format parsing and the formatters.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-19 v0.2.0: Sorted field output, text marshaling of levels

package log

import (
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" WARNING ", LevelWarn, false},
		{"err", LevelError, false},
		{"trc", LevelTrace, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"TEXT", FormatText, false},
		{"console", FormatText, false},
		{"logfmt", FormatLogfmt, false},
		{"xml", FormatJSON, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelText(t *testing.T) {
	var l Level
	if err := l.UnmarshalText([]byte("Warning")); err != nil || l != LevelWarn {
		t.Fatalf("UnmarshalText() = %v, %v", l, err)
	}
	if err := l.UnmarshalText([]byte("loud")); err == nil {
		t.Error("UnmarshalText() should reject unknown names")
	}
	if l != LevelWarn {
		t.Error("failed UnmarshalText() must not modify the level")
	}
	b, _ := LevelFatal.MarshalText()
	if string(b) != "fatal" {
		t.Errorf("MarshalText() = %s", b)
	}
	if Level(42).String() != "unknown" || Level(-1).ShortString() != "unk" {
		t.Error("out of range levels should render as unknown")
	}
}

func testEntry() *Entry {
	entry := NewEntry(LevelWarn, "parse failed")
	entry.Timestamp = time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC)
	entry.Logger = "detector"
	entry.Fields = Fields{"zeta": 1, "alpha": "x"}
	return entry
}

func TestTextFormatter(t *testing.T) {
	out, err := NewTextFormatter().Format(testEntry())
	if err != nil {
		t.Fatal(err)
	}
	want := "12:30:00 [WRN] {detector} parse failed [alpha=x zeta=1]\n"
	if string(out) != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}
}

func TestLogfmtFormatter(t *testing.T) {
	out, err := NewLogfmtFormatter().Format(testEntry())
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.HasPrefix(s, "timestamp=2026-10-19T12:30:00Z level=warn message=\"parse failed\"") {
		t.Errorf("unexpected prefix: %q", s)
	}
	if !strings.Contains(s, `alpha="x" zeta=1`) {
		t.Errorf("fields not sorted: %q", s)
	}
}

func TestJSONFormatterReservedKeysWin(t *testing.T) {
	entry := testEntry()
	entry.Fields["message"] = "shadow"
	entry.RequestID = "r1"

	out, err := NewJSONFormatter().Format(entry)
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.Contains(s, `"message":"parse failed"`) || !strings.Contains(s, `"request_id":"r1"`) {
		t.Errorf("Format() = %s", s)
	}
	if !strings.HasSuffix(s, "\n") {
		t.Error("entries must end with a newline")
	}
	if entry.Fields["message"] != "shadow" {
		t.Error("Format() must not modify entry fields")
	}
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc(func(e *Entry) ([]byte, error) { return []byte(e.Message), nil })
	out, _ := f.Format(testEntry())
	if string(out) != "parse failed" {
		t.Errorf("Format() = %q", out)
	}
	if _, ok := GetFormatter(Format(9)).(*JSONFormatter); !ok {
		t.Error("unknown formats should fall back to JSON")
	}
}
