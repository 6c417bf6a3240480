package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// DetectionCache caches dynamic date detection outcomes. Keys combine the
// detector formats with the text, so detectors with different format lists
// never share entries.
type DetectionCache struct {
	cache *Cache[string, DetectionEntry]
}

// DetectionEntry is a cached detection outcome
type DetectionEntry struct {
	Matched bool
	// Index of the matching format in the detector list
	Index int
	// Pattern of the matching format
	Pattern string
	// Instant of the match
	Time time.Time
}

// NewDetectionCache creates a detection cache
func NewDetectionCache(cfg Config) *DetectionCache {
	return &DetectionCache{cache: New[string, DetectionEntry](cfg)}
}

// DetectionKey generates a cache key for text under a format list
func DetectionKey(formats []string, text string) string {
	hash := sha256.Sum256([]byte(strings.Join(formats, "\x00") + "\x01" + text))
	return "detect:" + hex.EncodeToString(hash[:16]) // Use first 16 bytes
}

// Get retrieves a cached detection outcome
func (c *DetectionCache) Get(formats []string, text string) (DetectionEntry, bool) {
	return c.cache.Get(DetectionKey(formats, text))
}

// Set caches a detection outcome
func (c *DetectionCache) Set(formats []string, text string, entry DetectionEntry) {
	c.cache.Set(DetectionKey(formats, text), entry)
}

// Stats returns cache statistics
func (c *DetectionCache) Stats() map[string]interface{} {
	st := c.cache.Stats()
	return map[string]interface{}{
		"detection_cache_size": st.Size,
		"detection_hits":       st.Hits,
		"detection_misses":     st.Misses,
		"detection_evictions":  st.Evictions,
		"detection_hit_rate":   st.HitRate(),
	}
}

// Size returns the number of cached outcomes
func (c *DetectionCache) Size() int {
	return c.cache.Size()
}

// Clear removes all cached outcomes
func (c *DetectionCache) Clear() {
	c.cache.Clear()
}

// Close stops the cleanup goroutine
func (c *DetectionCache) Close() {
	c.cache.Close()
}
