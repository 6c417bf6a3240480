// Package calendar compiles and executes letter based date patterns.
//
// Package: calendar
// Title: Date Pattern Engine
// Description: Compiles patterns such as "yyyy-MM-dd'T'HH:mm:ss.SSSXXX" into
//              immutable layouts that parse strictly and print with locale
//              aware month and weekday names. Provides the catalog of named
//              ISO formats.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
//
// Pattern letters
//
//	y u Y   year (yy: two digit year, base 2000)
//	M L     month (M, MM numeric; MMM short name; MMMM full name)
//	d       day of month
//	D       day of year
//	E       weekday (E..EEE short name, EEEE full name)
//	a       am/pm marker
//	H k     hour of day 0-23 and 1-24
//	h K     hour of am/pm 1-12 and 0-11
//	m s     minute and second
//	S..S    fraction of second, exactly as many digits as letters
//	X x Z   offset (X prints Z for zero)
//	VV      zone id such as Europe/Paris
//
// 'text' is a literal, '' a single quote and [ ... ] an optional section.
//
// Parsing is strict: a field written with two letters needs exactly two
// digits, the whole input must be consumed and values are range checked.
// A variable width field followed directly by fixed width fields leaves
// room for them, so "yyyyMMdd" parses "20141010".
//
//	layout, err := calendar.Compile("yyyy/MM/dd HH:mm:ss")
//	if err != nil {
//		return err
//	}
//	parsed, err := layout.Parse("2014/10/10 12:12:12", calendar.ParseOptions{})
//	if err != nil {
//		return err
//	}
//	t := parsed.Time(nil)
//
// Named formats are available through Lookup:
//
//	layout, _ := calendar.Lookup("strict_date_optional_time")
package calendar
