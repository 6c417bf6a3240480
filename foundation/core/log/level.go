// File: level.go
// Title: Log Level Definitions
// Description: Log levels with their long, short and alias spellings. Levels
//              implement encoding.TextMarshaler so they decode straight from
//              TOML and YAML configuration.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with standard log levels
// - 2026-10-19 v0.2.0: Table driven names, text marshaling, dropped audit level

package log

import (
	"strings"
)

// Level represents the importance level of a log message
type Level int

// Levels in ascending severity
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]struct {
	long, short string
	aliases     []string
}{
	LevelTrace: {"trace", "trc", nil},
	LevelDebug: {"debug", "dbg", nil},
	LevelInfo:  {"info", "inf", []string{"information"}},
	LevelWarn:  {"warn", "wrn", []string{"warning"}},
	LevelError: {"error", "err", nil},
	LevelFatal: {"fatal", "ftl", nil},
}

func (l Level) valid() bool {
	return l >= LevelTrace && l <= LevelFatal
}

// String returns the lower case level name
func (l Level) String() string {
	if !l.valid() {
		return "unknown"
	}
	return levelNames[l].long
}

// ShortString returns the three letter level name
func (l Level) ShortString() string {
	if !l.valid() {
		return "unk"
	}
	return levelNames[l].short
}

// ShouldLog reports whether a message at this level passes minLevel
func (l Level) ShouldLog(minLevel Level) bool {
	return l >= minLevel
}

// MarshalText implements encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel parses a level name case-insensitively. Unknown names return
// LevelInfo together with a *ParseError.
func ParseLevel(level string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	for l, names := range levelNames {
		if name == names.long || name == names.short {
			return Level(l), nil
		}
		for _, alias := range names.aliases {
			if name == alias {
				return Level(l), nil
			}
		}
	}
	return LevelInfo, &ParseError{Input: level, Type: "level"}
}

// ParseError reports an unknown level or format name
type ParseError struct {
	Input string
	Type  string
}

func (e *ParseError) Error() string {
	return "invalid " + e.Type + ": " + e.Input
}

// DefaultLevel returns the default log level
func DefaultLevel() Level {
	return LevelInfo
}
