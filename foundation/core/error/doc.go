// Package error provides the structured error type used across kairos.
//
// Package: error
// Title: kairos Error Handling
// Description: Errors carry a code, the operation that produced them and a
//              small details map. Error() returns the message verbatim so
//              callers can rely on exact texts such as
//              "invalid number [abc]".
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-19 v0.2.0: Dropped stack capture and severities; errors are created
//                       on the parse hot path
//
// Usage:
//
//	import kerror "github.com/msto63/kairos/foundation/core/error"
//
//	err := kerror.New("invalid number [abc]").
//		WithCode(kerror.CodeInvalidNumber).
//		WithOperation("dateformat.Parse").
//		WithDetail("input", "abc")
//
//	if kerror.HasCode(err, kerror.CodeInvalidNumber) {
//		// not a number
//	}
package error
