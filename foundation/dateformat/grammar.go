// File: grammar.go
// Title: Pattern Grammar
// Description: Classifies a pattern as epoch millis, epoch second, composite
//              or textual and builds the matching formatter.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: IsBuiltin

package dateformat

import (
	"strings"
	"time"

	"github.com/msto63/kairos/foundation/calendar"
	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/foundation/core/i18n"
)

// CompositeSeparator joins the formats of a composite pattern
const CompositeSeparator = "||"

// Classify returns the kind a pattern resolves to without building it
func Classify(pattern string) Kind {
	switch {
	case pattern == EpochMillis:
		return KindEpochMillis
	case pattern == EpochSecond:
		return KindEpochSecond
	case strings.Contains(pattern, CompositeSeparator):
		return KindComposite
	default:
		return KindTextual
	}
}

// IsBuiltin reports whether pattern is an epoch or named pattern. The set
// of built-in patterns is fixed.
func IsBuiltin(pattern string) bool {
	switch Classify(pattern) {
	case KindEpochMillis, KindEpochSecond:
		return true
	case KindTextual:
		_, ok := calendar.Lookup(pattern)
		return ok
	default:
		return false
	}
}

// resolver returns the formatter for a single composite segment
type resolver func(pattern string) (*DateFormatter, error)

// build constructs the formatter for pattern. Composite segments are
// resolved through resolve so they share the cached instances.
func build(pattern string, resolve resolver) (*DateFormatter, error) {
	switch kind := Classify(pattern); kind {
	case KindEpochMillis, KindEpochSecond:
		return newEpoch(pattern, kind), nil
	case KindComposite:
		return buildComposite(pattern, resolve)
	default:
		return buildTextual(pattern)
	}
}

func newEpoch(pattern string, kind Kind) *DateFormatter {
	return &DateFormatter{pattern: pattern, locale: i18n.Root, zone: time.UTC, kind: kind}
}

func buildTextual(pattern string) (*DateFormatter, error) {
	layout, ok := calendar.Lookup(pattern)
	if !ok {
		var err error
		if layout, err = calendar.Compile(pattern); err != nil {
			return nil, err
		}
	}
	return &DateFormatter{pattern: pattern, locale: i18n.Root, kind: KindTextual, layout: layout}, nil
}

func buildComposite(pattern string, resolve resolver) (*DateFormatter, error) {
	segments := strings.Split(pattern, CompositeSeparator)
	parts := make([]*DateFormatter, 0, len(segments))
	for i, segment := range segments {
		if segment == "" {
			return nil, kerror.Newf("composite pattern [%s] has an empty format at position %d", pattern, i).
				WithCode(kerror.CodeInvalidPattern).
				WithOperation("dateformat.ForPattern").
				WithDetail("pattern", pattern)
		}
		part, err := resolve(segment)
		if err != nil {
			return nil, kerror.Wrap(err, "invalid format in composite pattern ["+pattern+"]").
				WithOperation("dateformat.ForPattern")
		}
		parts = append(parts, part)
	}
	return &DateFormatter{pattern: pattern, locale: i18n.Root, kind: KindComposite, parts: parts}, nil
}
