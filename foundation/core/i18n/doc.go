// File: doc.go
// Title: Internationalization (i18n) Package Documentation
// Description: Package i18n provides the Locale type and the localized
//              calendar symbols used to parse and print textual date fields.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-19 v0.2.0: Locale value type and date symbol tables

/*
Package i18n provides locales and localized calendar symbols.

# Locales

A Locale wraps a BCP 47 tag from golang.org/x/text/language. The zero value
is Root, the invariant locale, printed as "ROOT". Locales compare with Equal.

	fr, err := i18n.ParseLocale("fr_CA")
	if err != nil {
		return err // code INVALID_LOCALE
	}
	fmt.Println(fr)          // fr-CA
	fmt.Println(i18n.Root)   // ROOT

# Symbol tables

Month, weekday and am/pm names come from TOML or YAML files:

	months = ["January", "February", ...]
	short_months = ["Jan", "Feb", ...]
	weekdays = ["Sunday", "Monday", ...]
	short_weekdays = ["Sun", "Mon", ...]
	am_pm = ["AM", "PM"]

English, German and French tables are embedded as TOML, Spanish and Dutch as
YAML. More tables can be installed with RegisterSymbols, LoadSymbolsFile or
LoadSymbolsDir; the file name names the locale ("pt_BR.yaml").

SymbolsFor resolves the exact tag first, then the base language, then
English. Root uses English. Name matching is case-insensitive through
Unicode case folding (golang.org/x/text/cases) and prefers the longest name.
*/
package i18n
