// Package dateformat turns date patterns into immutable, shareable
// formatters.
//
// Package: dateformat
// Title: Date Formatters
// Description: Resolves a pattern string to a DateFormatter that parses and
//              prints dates. Supported patterns are the named ISO formats,
//              letter patterns such as "yyyy/MM/dd", the epoch grammars
//              "epoch_millis" and "epoch_second", and composites joined by
//              "||" that try each format in turn.
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
//	f, err := dateformat.ForPattern("strict_date_optional_time||epoch_millis")
//	if err != nil {
//		return err
//	}
//	t, err := f.ParseTime("2014-05-05T12:12:12.123Z")
//
//	berlin, _ := timex.LoadZone("Europe/Berlin")
//	local, err := f.WithZone(berlin)
//
// ForPattern returns the same instance for the same pattern. WithLocale and
// WithZone derive new formatters; the epoch formatters accept only the root
// locale and UTC and return themselves for those.
//
// Errors
//
// All failures are *kerror.Error values. The epoch grammars report
// "invalid number [<text>]" (CodeInvalidNumber) and
// "too much granularity after dot [<text>]" (CodeTooMuchGranularity). Use
// IsNumberFormatError, IsGranularityError, IsParseMismatch, IsPatternError
// and IsConfigurationError to classify them.
package dateformat
