package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
	"time"
)

// Config holds cache configuration
type Config struct {
	// MaxItems bounds the number of entries; the least recently used entry
	// is evicted beyond it
	MaxItems int
	// TTL applies to Set; zero or negative uses the default
	TTL time.Duration
	// CleanupInterval between sweeps of expired entries
	CleanupInterval time.Duration
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{
		MaxItems:        10000,
		TTL:             5 * time.Minute,
		CleanupInterval: time.Minute,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxItems <= 0 {
		c.MaxItems = d.MaxItems
	}
	if c.TTL <= 0 {
		c.TTL = d.TTL
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = d.CleanupInterval
	}
	return c
}

// Stats is a snapshot of cache counters
type Stats struct {
	Size      int
	Hits      int64
	Misses    int64
	Evictions int64
}

// HitRate returns hits as a percentage of lookups
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

type item[K comparable, V any] struct {
	key     K
	value   V
	expires time.Time
}

func (it *item[K, V]) expired(now time.Time) bool {
	return !it.expires.IsZero() && now.After(it.expires)
}

// Cache is a concurrency-safe LRU cache with per-entry expiry.
// Close stops the background sweeper; the cache stays usable afterwards.
type Cache[K comparable, V any] struct {
	mu    sync.Mutex
	order *list.List // front is most recently used
	index map[K]*list.Element
	cfg   Config
	now   func() time.Time

	hits, misses, evictions atomic.Int64

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a cache and starts its sweeper
func New[K comparable, V any](cfg Config) *Cache[K, V] {
	c := &Cache[K, V]{
		order: list.New(),
		index: make(map[K]*list.Element),
		cfg:   cfg.withDefaults(),
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Get returns the value for key and marks it recently used
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if ok && el.Value.(*item[K, V]).expired(c.now()) {
		c.removeElement(el)
		ok = false
	}
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	c.hits.Add(1)
	return el.Value.(*item[K, V]).value, true
}

// Set stores value under key with the configured TTL
func (c *Cache[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, c.cfg.TTL)
}

// SetWithTTL stores value under key. A ttl <= 0 never expires.
func (c *Cache[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	var expires time.Time
	if ttl > 0 {
		expires = c.now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		it := el.Value.(*item[K, V])
		it.value, it.expires = value, expires
		c.order.MoveToFront(el)
		return
	}
	c.index[key] = c.order.PushFront(&item[K, V]{key: key, value: value, expires: expires})
	for c.order.Len() > c.cfg.MaxItems {
		c.removeElement(c.order.Back())
		c.evictions.Add(1)
	}
}

// GetOrSet returns the cached value or stores the result of fn. Errors from
// fn are returned and not cached.
func (c *Cache[K, V]) GetOrSet(key K, fn func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := fn()
	if err != nil {
		return v, err
	}
	c.Set(key, v)
	return v, nil
}

// Delete removes key
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.index[key]; ok {
		c.removeElement(el)
	}
}

// Clear removes all entries. Counters are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.index = make(map[K]*list.Element)
}

// Size returns the number of entries, including expired ones not yet swept
func (c *Cache[K, V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a snapshot of the counters
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Size:      c.Size(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// Close stops the sweeper. It is safe to call more than once.
func (c *Cache[K, V]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// removeElement must be called with mu held
func (c *Cache[K, V]) removeElement(el *list.Element) {
	c.order.Remove(el)
	delete(c.index, el.Value.(*item[K, V]).key)
}

func (c *Cache[K, V]) sweep() {
	ticker := time.NewTicker(c.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache[K, V]) removeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if el.Value.(*item[K, V]).expired(now) {
			c.removeElement(el)
			removed++
		}
		el = prev
	}
	return removed
}
