// ============================================================================
// kairos - Date Formatting Service
// ============================================================================
//
// Package:     logging
// Description: Key/value logger used by the service, server and CLI
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"

	klog "github.com/msto63/kairos/foundation/core/log"
)

// Logger wraps the Foundation logger with key/value methods:
//
//	log.Info("parsed", "pattern", p, "kind", k)
type Logger struct {
	*klog.Logger
}

// New creates a JSON logger at info level writing to stdout
func New(name string) *Logger {
	return &Logger{Logger: NewSimpleLogger(name)}
}

// Wrap adapts a Foundation logger
func Wrap(logger *klog.Logger) *Logger {
	return &Logger{Logger: logger}
}

// WithLevel returns a logger at the named level. Unknown names leave the
// level unchanged.
func (l *Logger) WithLevel(level string) *Logger {
	parsed, err := klog.ParseLevel(level)
	if err != nil {
		return l
	}
	return &Logger{Logger: l.Logger.WithLevel(parsed)}
}

// WithRequestID returns a logger tagging entries with requestID
func (l *Logger) WithRequestID(requestID string) *Logger {
	if requestID == "" {
		return l
	}
	return &Logger{Logger: l.Logger.WithRequestID(requestID)}
}

// With returns a logger carrying the key/value pairs on every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.WithFields(toFields(keysAndValues...))}
}

// Debug logs a debug message with key/value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key/value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning with key/value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key/value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields pairs up keys and values. Non-string keys are rendered with %v; a
// trailing key without value is logged under "!BADKEY".
func toFields(keysAndValues ...interface{}) klog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(klog.Fields, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		if i+1 == len(keysAndValues) {
			fields["!BADKEY"] = key
			break
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
