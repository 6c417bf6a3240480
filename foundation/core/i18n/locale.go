// File: locale.go
// Title: Locale Type
// Description: Implements the Locale value used by date formatters. A locale
//              wraps a BCP 47 language tag; the zero value is the invariant
//              ROOT locale.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of locale detection
// - 2026-10-19 v0.2.0: Locale value type on golang.org/x/text/language

package i18n

import (
	"strings"

	"golang.org/x/text/language"

	kerror "github.com/msto63/kairos/foundation/core/error"
)

// RootName is the display name of the invariant locale
const RootName = "ROOT"

// Locale identifies the language and region used to interpret textual date
// fields. Locales are comparable values; use Equal rather than ==.
type Locale struct {
	tag language.Tag
}

// Predefined locales
var (
	Root         = Locale{tag: language.Und}
	English      = Locale{tag: language.English}
	US           = Locale{tag: language.AmericanEnglish}
	UK           = Locale{tag: language.BritishEnglish}
	Canada       = Locale{tag: language.MustParse("en-CA")}
	CanadaFrench = Locale{tag: language.CanadianFrench}
	French       = Locale{tag: language.French}
	France       = Locale{tag: language.MustParse("fr-FR")}
	German       = Locale{tag: language.German}
	Germany      = Locale{tag: language.MustParse("de-DE")}
)

// NewLocale wraps a language tag
func NewLocale(tag language.Tag) Locale {
	return Locale{tag: tag}
}

// ParseLocale parses a locale identifier. "", "root" and "und" (any case)
// yield Root; "_" is accepted as separator ("en_CA").
func ParseLocale(s string) (Locale, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "root", "und":
		return Root, nil
	}

	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return Root, kerror.Wrap(err, "invalid locale ["+s+"]").
			WithCode(kerror.CodeInvalidLocale).
			WithOperation("i18n.ParseLocale").
			WithDetail("locale", s)
	}
	return Locale{tag: tag}, nil
}

// MustParseLocale is like ParseLocale but panics on error
func MustParseLocale(s string) Locale {
	l, err := ParseLocale(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Tag returns the underlying language tag
func (l Locale) Tag() language.Tag {
	return l.tag
}

// IsRoot reports whether l is the invariant locale
func (l Locale) IsRoot() bool {
	return l.tag == language.Und
}

// Equal reports whether two locales denote the same tag
func (l Locale) Equal(other Locale) bool {
	return l.tag == other.tag || l.tag.String() == other.tag.String()
}

// String returns the BCP 47 form, or ROOT for the invariant locale
func (l Locale) String() string {
	if l.IsRoot() {
		return RootName
	}
	return l.tag.String()
}

// Language returns the base language subtag ("fr" for fr-CA), or "" for Root
func (l Locale) Language() string {
	if l.IsRoot() {
		return ""
	}
	base, _ := l.tag.Base()
	return base.String()
}
