// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across kairos. The date formatting
//              codes mirror the failure taxonomy of the formatter core: pattern,
//              number, granularity, mismatch and illegal setting failures.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-19 v0.2.0: Replaced platform codes with date formatting codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Date formatting
	CodeInvalidPattern     Code = "INVALID_PATTERN"
	CodeInvalidNumber      Code = "INVALID_NUMBER"
	CodeTooMuchGranularity Code = "TOO_MUCH_GRANULARITY"
	CodeParseMismatch      Code = "PARSE_MISMATCH"
	CodeIllegalSetting     Code = "ILLEGAL_SETTING"
	CodeInvalidLocale      Code = "INVALID_LOCALE"
	CodeUnknownZone        Code = "UNKNOWN_ZONE"

	// Configuration and service lifecycle
	CodeConfigError           Code = "CONFIG_ERROR"
	CodeMissingConfig         Code = "MISSING_CONFIG"
	CodeInvalidConfig         Code = "INVALID_CONFIG"
	CodeServiceInitialization Code = "SERVICE_INITIALIZATION"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeInvalidPattern, CodeInvalidNumber, CodeTooMuchGranularity, CodeParseMismatch,
		CodeIllegalSetting, CodeInvalidLocale, CodeUnknownZone,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig, CodeServiceInitialization:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeInvalidPattern:
		return "pattern"
	case CodeInvalidNumber, CodeTooMuchGranularity, CodeParseMismatch:
		return "parse"
	case CodeIllegalSetting, CodeInvalidLocale, CodeUnknownZone:
		return "setting"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	case CodeServiceInitialization:
		return "service"
	default:
		return "generic"
	}
}

// IsClientError reports whether the code describes bad caller input rather
// than a failure of the service itself.
func (c Code) IsClientError() bool {
	switch c {
	case CodeInvalidInput, CodeInvalidPattern, CodeInvalidNumber, CodeTooMuchGranularity,
		CodeParseMismatch, CodeIllegalSetting, CodeInvalidLocale, CodeUnknownZone:
		return true
	default:
		return false
	}
}
