// File: registry.go
// Title: Formatter Registry
// Description: Process-wide cache mapping a pattern to its formatter.
//              Repeated lookups of a pattern return the same instance.
//              Compile builds a formatter without caching it, for
//              patterns that arrive with requests.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Lookup and Compile

package dateformat

import (
	"sync"
	"sync/atomic"
)

// Registry caches formatters by pattern. Concurrent first lookups of the
// same pattern may both build a formatter; only the first stored one is
// ever returned.
type Registry struct {
	formatters sync.Map // pattern -> *DateFormatter
	size       atomic.Int64
	hits       atomic.Uint64
	misses     atomic.Uint64
}

// RegistryStats is a snapshot of registry counters
type RegistryStats struct {
	Size   int
	Hits   uint64
	Misses uint64
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// ForPattern returns the formatter for pattern, building and caching it on
// first use. Invalid patterns are not cached.
func (r *Registry) ForPattern(pattern string) (*DateFormatter, error) {
	if f, ok := r.formatters.Load(pattern); ok {
		r.hits.Add(1)
		return f.(*DateFormatter), nil
	}
	r.misses.Add(1)

	f, err := build(pattern, r.ForPattern)
	if err != nil {
		return nil, err
	}
	actual, loaded := r.formatters.LoadOrStore(pattern, f)
	if !loaded {
		r.size.Add(1)
	}
	return actual.(*DateFormatter), nil
}

// Lookup returns the cached formatter for pattern without building it
func (r *Registry) Lookup(pattern string) (*DateFormatter, bool) {
	f, ok := r.formatters.Load(pattern)
	if !ok {
		return nil, false
	}
	r.hits.Add(1)
	return f.(*DateFormatter), true
}

// Compile builds the formatter for pattern without storing it. Built-in
// segments of a composite pattern still resolve through the registry, so
// the registry grows only by built-in patterns.
func (r *Registry) Compile(pattern string) (*DateFormatter, error) {
	if f, ok := r.Lookup(pattern); ok {
		return f, nil
	}
	return build(pattern, r.compileSegment)
}

func (r *Registry) compileSegment(segment string) (*DateFormatter, error) {
	if IsBuiltin(segment) {
		return r.ForPattern(segment)
	}
	return build(segment, r.compileSegment)
}

// MustForPattern is like ForPattern but panics on an invalid pattern
func (r *Registry) MustForPattern(pattern string) *DateFormatter {
	f, err := r.ForPattern(pattern)
	if err != nil {
		panic("dateformat: " + err.Error())
	}
	return f
}

// Len returns the number of cached formatters
func (r *Registry) Len() int {
	return int(r.size.Load())
}

// Patterns returns the cached patterns in no particular order
func (r *Registry) Patterns() []string {
	var patterns []string
	r.formatters.Range(func(key, _ any) bool {
		patterns = append(patterns, key.(string))
		return true
	})
	return patterns
}

// Stats returns the current counters
func (r *Registry) Stats() RegistryStats {
	return RegistryStats{
		Size:   r.Len(),
		Hits:   r.hits.Load(),
		Misses: r.misses.Load(),
	}
}

// Default returns the process-wide registry
var Default = sync.OnceValue(NewRegistry)

// ForPattern resolves pattern through the process-wide registry
func ForPattern(pattern string) (*DateFormatter, error) {
	return Default().ForPattern(pattern)
}

// MustForPattern resolves pattern through the process-wide registry and
// panics on an invalid pattern
func MustForPattern(pattern string) *DateFormatter {
	return Default().MustForPattern(pattern)
}
