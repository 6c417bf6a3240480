// ============================================================================
// kairos - Date Formatting Service
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating service loggers
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	klog "github.com/msto63/kairos/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format: "json", "text" or "logfmt" (default: json)
	Format string

	// Output defaults to stdout
	Output io.Writer

	// Additional outputs (besides Output)
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

// NewLogger creates a new Foundation logger
func NewLogger(cfg LoggerConfig) *klog.Logger {
	// Unknown levels fall back to info
	level, err := klog.ParseLevel(cfg.Level)
	if err != nil {
		level = klog.LevelInfo
	}

	// Build output writer
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	format, err := klog.ParseFormat(cfg.Format)
	if err != nil {
		format = klog.FormatJSON
	}

	return klog.NewWithConfig(klog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	})
}

// NewServiceLogger creates a service logger with the given level and format
func NewServiceLogger(serviceName, level, format string) *klog.Logger {
	cfg := DefaultLoggerConfig(serviceName)
	if level != "" {
		cfg.Level = level
	}
	if format != "" {
		cfg.Format = format
	}
	return NewLogger(cfg)
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *klog.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}
