// Package log provides structured logging for kairos.
//
// Package: log
// Title: kairos Structured Logging
// Description: Structured logger with levels, persistent context fields and
//              JSON or text output. Errors from the kairos error package are
//              expanded into code and operation fields.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-19 v0.2.0: Trimmed to the synchronous logger, dropped timers and async buffer
//
// Usage:
//
//	logger := log.New().
//		WithLevel(log.LevelDebug).
//		WithFormat(log.FormatText).
//		WithField("component", "registry")
//
//	logger.Info("pattern compiled", log.Field("pattern", "yyyy-MM-dd"))
//	logger.LogError(err)
package log
