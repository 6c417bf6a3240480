// File: format.go
// Title: Log Format Definitions
// Description: JSON, text and logfmt encoders for log entries. All encoders
//              write context fields in key order.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with multiple output formats
// - 2026-10-19 v0.2.0: Buffer based encoders, dropped console colors

package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Format selects an output encoding
type Format int

const (
	FormatJSON Format = iota
	FormatText
	FormatLogfmt
)

var formatNames = map[string]Format{
	"json":    FormatJSON,
	"text":    FormatText,
	"console": FormatText,
	"logfmt":  FormatLogfmt,
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	case FormatLogfmt:
		return "logfmt"
	}
	return "unknown"
}

// ParseFormat parses a format name. Unknown names return FormatJSON together
// with a *ParseError.
func ParseFormat(format string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(strings.TrimSpace(format))]; ok {
		return f, nil
	}
	return FormatJSON, &ParseError{Input: format, Type: "format"}
}

// Formatter encodes a single entry, including the trailing newline
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// FormatterFunc adapts a function to Formatter
type FormatterFunc func(entry *Entry) ([]byte, error)

// Format calls f(entry)
func (f FormatterFunc) Format(entry *Entry) ([]byte, error) {
	return f(entry)
}

// JSONFormatter writes one JSON object per entry
type JSONFormatter struct {
	TimestampFormat string
}

// NewJSONFormatter creates a JSON formatter with RFC 3339 timestamps
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{TimestampFormat: time.RFC3339}
}

// Format encodes entry as JSON. Reserved keys win over fields of the same
// name. Errors implementing json.Marshaler are also embedded as
// error_details.
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := entry.Fields.Clone()
	if data == nil {
		data = make(Fields, 6)
	}
	data["timestamp"] = entry.Timestamp.Format(f.TimestampFormat)
	data["level"] = entry.Level.String()
	data["message"] = entry.Message
	if entry.Logger != "" {
		data["logger"] = entry.Logger
	}
	if entry.RequestID != "" {
		data["request_id"] = entry.RequestID
	}
	if entry.Error != nil {
		data["error"] = entry.Error.Error()
		if m, ok := entry.Error.(json.Marshaler); ok {
			if raw, err := m.MarshalJSON(); err == nil {
				data["error_details"] = json.RawMessage(raw)
			}
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]interface{}(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TextFormatter writes a compact line for terminals:
//
//	12:30:00 [WRN] {detector} (req=abc) parse failed [alpha=x zeta=1]
type TextFormatter struct {
	TimestampFormat  string
	DisableTimestamp bool
}

// NewTextFormatter creates a text formatter with clock timestamps
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{TimestampFormat: "15:04:05"}
}

func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var buf bytes.Buffer
	if !f.DisableTimestamp {
		buf.WriteString(entry.Timestamp.Format(f.TimestampFormat))
		buf.WriteByte(' ')
	}
	buf.WriteString("[" + strings.ToUpper(entry.Level.ShortString()) + "] ")
	if entry.Logger != "" {
		buf.WriteString("{" + entry.Logger + "} ")
	}
	if entry.RequestID != "" {
		buf.WriteString("(req=" + entry.RequestID + ") ")
	}
	buf.WriteString(entry.Message)

	if keys := sortedKeys(entry.Fields); len(keys) > 0 {
		buf.WriteString(" [")
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(&buf, "%s=%v", k, entry.Fields[k])
		}
		buf.WriteByte(']')
	}
	if entry.Error != nil {
		buf.WriteString(" error=" + strconv.Quote(entry.Error.Error()))
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// LogfmtFormatter writes key=value pairs. String values are quoted.
type LogfmtFormatter struct {
	TimestampFormat string
}

// NewLogfmtFormatter creates a logfmt formatter with RFC 3339 timestamps
func NewLogfmtFormatter() *LogfmtFormatter {
	return &LogfmtFormatter{TimestampFormat: time.RFC3339}
}

func (f *LogfmtFormatter) Format(entry *Entry) ([]byte, error) {
	var buf bytes.Buffer
	pair := func(key, value string) {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(value)
	}

	pair("timestamp", entry.Timestamp.Format(f.TimestampFormat))
	pair("level", entry.Level.String())
	pair("message", strconv.Quote(entry.Message))
	if entry.Logger != "" {
		pair("logger", entry.Logger)
	}
	if entry.RequestID != "" {
		pair("request_id", entry.RequestID)
	}
	for _, k := range sortedKeys(entry.Fields) {
		if s, ok := entry.Fields[k].(string); ok {
			pair(k, strconv.Quote(s))
		} else {
			pair(k, fmt.Sprint(entry.Fields[k]))
		}
	}
	if entry.Error != nil {
		pair("error", strconv.Quote(entry.Error.Error()))
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// GetFormatter returns the formatter for format, JSON for unknown values
func GetFormatter(format Format) Formatter {
	switch format {
	case FormatText:
		return NewTextFormatter()
	case FormatLogfmt:
		return NewLogfmtFormatter()
	}
	return NewJSONFormatter()
}

func sortedKeys(fields Fields) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
