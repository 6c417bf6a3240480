// Package mapping detects dates in string fields of dynamic documents.
//
// Package: mapping
// Title: Dynamic Date Detection
// Description: A DateDetector tries an ordered list of strict formatters
//              against a string. DefaultDynamicDateFormats accept ISO dates
//              and slash separated dates with an optional time.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
//
// Usage
//
//	if m, ok := mapping.Default().Detect("2014/10/10 12:12:12"); ok {
//		fmt.Println(m.Formatter.Pattern(), m.Time)
//	}
package mapping
