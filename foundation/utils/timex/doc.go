// Package timex implements zone and calendar arithmetic helpers for kairos.
//
// Package: timex
// Title: Zone and Calendar Arithmetic
// Description: Zone resolution (region ids and fixed offsets) backed by a
//              shared cache, offset parsing and printing, floor division and
//              month length helpers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with comprehensive time operations
// - 2026-10-19 v0.2.0: Reduced to the helpers needed by date formatting
//
// # Zones
//
// LoadZone accepts "Z" and "UTC" (both time.UTC), "GMT" and "UT" (zero
// offset zones of their own), fixed offsets such as "+01:00" or "-0530" and
// IANA region ids such as "Europe/Berlin". Loaded locations are
// cached, so repeated lookups return the same *time.Location. Failures carry
// the CodeUnknownZone error code.
//
//	loc, err := timex.LoadZone("CET")
//	if err != nil {
//		return err
//	}
//
// # Arithmetic
//
// FloorDiv and FloorMod round toward negative infinity, which is what epoch
// arithmetic on pre-1970 instants needs:
//
//	timex.FloorDiv(-1, 1000) // -1
//	timex.FloorMod(-1, 1000) // 999
package timex
