// File: codes_test.go
// Title: Error Code Tests
// Description: Tests for code validity, categories and client error
//              classification.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-19 v0.2.0: Date formatting codes

package error

import "testing"

func TestCodeIsValid(t *testing.T) {
	valid := []Code{
		CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeInvalidPattern, CodeInvalidNumber, CodeTooMuchGranularity, CodeParseMismatch,
		CodeIllegalSetting, CodeInvalidLocale, CodeUnknownZone,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig, CodeServiceInitialization,
	}
	for _, c := range valid {
		if !c.IsValid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if Code("NOPE").IsValid() {
		t.Error("unknown code reported as valid")
	}
}

func TestCodeCategory(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeInvalidPattern, "pattern"},
		{CodeInvalidNumber, "parse"},
		{CodeTooMuchGranularity, "parse"},
		{CodeParseMismatch, "parse"},
		{CodeIllegalSetting, "setting"},
		{CodeUnknownZone, "setting"},
		{CodeMissingConfig, "configuration"},
		{CodeServiceInitialization, "service"},
		{CodeInternal, "generic"},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if got := tt.code.Category(); got != tt.want {
				t.Errorf("Category() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodeIsClientError(t *testing.T) {
	if !CodeParseMismatch.IsClientError() {
		t.Error("parse mismatch is caused by the caller")
	}
	if CodeInternal.IsClientError() {
		t.Error("internal is not a client error")
	}
}
