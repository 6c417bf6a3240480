// File: errors.go
// Title: Error Predicates
// Description: Classifies formatter errors by their kerror code.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package dateformat

import kerror "github.com/msto63/kairos/foundation/core/error"

// IsPatternError reports a malformed pattern
func IsPatternError(err error) bool {
	return kerror.HasCode(err, kerror.CodeInvalidPattern)
}

// IsNumberFormatError reports non-numeric epoch input
func IsNumberFormatError(err error) bool {
	return kerror.HasCode(err, kerror.CodeInvalidNumber)
}

// IsGranularityError reports an epoch fraction with too many digits
func IsGranularityError(err error) bool {
	return kerror.HasCode(err, kerror.CodeTooMuchGranularity)
}

// IsParseMismatch reports input that does not match a textual format
func IsParseMismatch(err error) bool {
	return kerror.HasCode(err, kerror.CodeParseMismatch)
}

// IsConfigurationError reports a locale or zone an epoch formatter refuses
func IsConfigurationError(err error) bool {
	return kerror.HasCode(err, kerror.CodeIllegalSetting)
}
