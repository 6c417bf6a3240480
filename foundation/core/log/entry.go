// File: entry.go
// Title: Log Entry Structure
// Description: A single log record and the field map helpers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive log entry structure
// - 2026-10-19 v0.2.0: Removed user/correlation ids and duration

package log

import (
	"time"
)

// Entry is one log record handed to a Formatter
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string
	RequestID string
	Fields    Fields
	Error     error
}

// NewEntry creates an entry stamped with the current time
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    Fields{},
	}
}

// Fields are key/value pairs attached to an entry
type Fields map[string]interface{}

// Field creates a single field set
func Field(key string, value interface{}) Fields {
	return Fields{key: value}
}

// Merge combines field sets into a new map; later sets win on collisions
func Merge(sets ...Fields) Fields {
	n := 0
	for _, set := range sets {
		n += len(set)
	}
	result := make(Fields, n)
	for _, set := range sets {
		for k, v := range set {
			result[k] = v
		}
	}
	return result
}

// Clone returns a shallow copy; nil stays nil
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	return Merge(f)
}
