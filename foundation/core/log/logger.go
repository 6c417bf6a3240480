// File: logger.go
// Title: Core Logger Implementation
// Description: Implements the Logger type: an immutable set of context
//              fields, a name and a request id bound to a shared sink.
//              Errors from the kairos error package are expanded into
//              code, operation and detail fields.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2026-10-19 v0.2.0: Copy-on-derive loggers over a locked sink, atomic
//                      level, error code based levels in LogError

package log

import (
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"

	kerror "github.com/msto63/kairos/foundation/core/error"
)

// sink serializes writes of all loggers derived from one root
type sink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *sink) write(p []byte) {
	s.mu.Lock()
	_, _ = s.w.Write(p)
	s.mu.Unlock()
}

// Logger writes structured entries. Derivation methods (With*) return new
// loggers and never modify the receiver; only SetLevel mutates in place.
type Logger struct {
	level     atomic.Int32
	formatter Formatter
	out       *sink
	name      string
	requestID string
	fields    Fields
}

// Config represents logger configuration
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
	Name   string
}

// New creates a JSON logger at the default level writing to stdout
func New() *Logger {
	return NewWithConfig(Config{Level: DefaultLevel()})
}

// NewWithConfig creates a logger from config. A nil Output means stdout.
func NewWithConfig(config Config) *Logger {
	w := config.Output
	if w == nil {
		w = os.Stdout
	}
	l := &Logger{
		formatter: GetFormatter(config.Format),
		out:       &sink{w: w},
		name:      config.Name,
	}
	l.level.Store(int32(config.Level))
	return l
}

func (l *Logger) derive(change func(*Logger)) *Logger {
	d := &Logger{
		formatter: l.formatter,
		out:       l.out,
		name:      l.name,
		requestID: l.requestID,
		fields:    l.fields,
	}
	d.level.Store(l.level.Load())
	change(d)
	return d
}

// WithLevel returns a logger with the minimum level set
func (l *Logger) WithLevel(level Level) *Logger {
	return l.derive(func(d *Logger) { d.level.Store(int32(level)) })
}

// WithFormat returns a logger writing the given format
func (l *Logger) WithFormat(format Format) *Logger {
	return l.WithFormatter(GetFormatter(format))
}

// WithFormatter returns a logger using a custom formatter
func (l *Logger) WithFormatter(formatter Formatter) *Logger {
	return l.derive(func(d *Logger) { d.formatter = formatter })
}

// WithOutput returns a logger writing to output under its own lock
func (l *Logger) WithOutput(output io.Writer) *Logger {
	return l.derive(func(d *Logger) { d.out = &sink{w: output} })
}

// WithName returns a logger with the name set
func (l *Logger) WithName(name string) *Logger {
	return l.derive(func(d *Logger) { d.name = name })
}

// WithField returns a logger carrying an extra persistent field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(Fields{key: value})
}

// WithFields returns a logger carrying extra persistent fields
func (l *Logger) WithFields(fields Fields) *Logger {
	if len(fields) == 0 {
		return l
	}
	return l.derive(func(d *Logger) { d.fields = Merge(l.fields, fields) })
}

// WithRequestID returns a logger bound to a request id
func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.derive(func(d *Logger) { d.requestID = requestID })
}

func (l *Logger) Trace(message string, fields ...Fields) { l.log(LevelTrace, message, nil, fields) }
func (l *Logger) Debug(message string, fields ...Fields) { l.log(LevelDebug, message, nil, fields) }
func (l *Logger) Info(message string, fields ...Fields)  { l.log(LevelInfo, message, nil, fields) }
func (l *Logger) Warn(message string, fields ...Fields)  { l.log(LevelWarn, message, nil, fields) }
func (l *Logger) Error(message string, fields ...Fields) { l.log(LevelError, message, nil, fields) }

// Fatal logs at fatal level and exits with status 1
func (l *Logger) Fatal(message string, fields ...Fields) {
	l.log(LevelFatal, message, nil, fields)
	os.Exit(1)
}

// ErrorWithErr logs message at error level with err attached
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields)
}

// LogError logs err with its code, operation and details. Client errors
// (bad patterns, unparseable input) are logged at warn, everything else at
// error.
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	var kerr *kerror.Error
	if !errors.As(err, &kerr) {
		l.log(LevelError, err.Error(), err, nil)
		return
	}

	fields := Fields{"error_code": kerr.Code().String()}
	if op := kerr.Operation(); op != "" {
		fields["error_operation"] = op
	}
	for k, v := range kerr.Details() {
		fields["error_"+k] = v
	}

	level := LevelError
	if kerr.Code().IsClientError() {
		level = LevelWarn
	}
	l.log(level, kerr.Message(), err, []Fields{fields})
}

// IsLevelEnabled reports whether messages at level are written
func (l *Logger) IsLevelEnabled(level Level) bool {
	return level.ShouldLog(l.GetLevel())
}

// GetLevel returns the minimum level
func (l *Logger) GetLevel() Level {
	return Level(l.level.Load())
}

// SetLevel changes the minimum level of this logger in place
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

func (l *Logger) log(level Level, message string, err error, extra []Fields) {
	if !l.IsLevelEnabled(level) {
		return
	}

	entry := NewEntry(level, message)
	entry.Logger = l.name
	entry.RequestID = l.requestID
	entry.Error = err
	entry.Fields = Merge(append([]Fields{l.fields}, extra...)...)

	if b, ferr := l.formatter.Format(entry); ferr == nil {
		l.out.write(b)
	}
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(New())
}

// GetDefault returns the package level logger
func GetDefault() *Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the package level logger; nil is ignored
func SetDefault(logger *Logger) {
	if logger != nil {
		defaultLogger.Store(logger)
	}
}

// Debug logs through the package level logger
func Debug(message string, fields ...Fields) { GetDefault().Debug(message, fields...) }

// Info logs through the package level logger
func Info(message string, fields ...Fields) { GetDefault().Info(message, fields...) }

// Warn logs through the package level logger
func Warn(message string, fields ...Fields) { GetDefault().Warn(message, fields...) }

// Error logs through the package level logger
func Error(message string, fields ...Fields) { GetDefault().Error(message, fields...) }
