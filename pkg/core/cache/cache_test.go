package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func newTestCache(t *testing.T, cfg Config) (*Cache[string, int], *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[string, int](cfg)
	c.now = clock.now
	t.Cleanup(c.Close)
	return c, clock
}

func TestConfig_WithDefaults(t *testing.T) {
	got := Config{MaxItems: -1}.withDefaults()
	if got != DefaultConfig() {
		t.Errorf("withDefaults() = %+v, want %+v", got, DefaultConfig())
	}
	custom := Config{MaxItems: 3, TTL: time.Second, CleanupInterval: time.Hour}
	if custom.withDefaults() != custom {
		t.Errorf("explicit values should be kept")
	}
}

func TestCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t, DefaultConfig())

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v; want 1, true", v, ok)
	}
	if v, ok := c.Get("missing"); ok || v != 0 {
		t.Errorf("Get(missing) = %v, %v", v, ok)
	}

	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 || st.HitRate() != 50 {
		t.Errorf("Stats() = %+v, rate %v", st, st.HitRate())
	}

	c.Delete("a")
	if c.Size() != 0 {
		t.Errorf("Size() = %d after Delete, want 0", c.Size())
	}
}

func TestCache_Expiration(t *testing.T) {
	c, clock := newTestCache(t, DefaultConfig())

	c.SetWithTTL("short", 1, time.Second)
	c.SetWithTTL("forever", 2, 0)
	c.SetWithTTL("swept", 3, time.Second)
	clock.t = clock.t.Add(2 * time.Second)

	if _, ok := c.Get("short"); ok {
		t.Error("expired entry should not be returned")
	}
	if _, ok := c.Get("forever"); !ok {
		t.Error("entry without TTL should not expire")
	}
	if n := c.removeExpired(); n != 1 {
		t.Errorf("removeExpired() = %d, want 1", n)
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestCache(t, Config{MaxItems: 2, TTL: time.Hour})

	c.Set("first", 1)
	c.Set("second", 2)
	c.Get("first")
	c.Set("second", 22)
	c.Get("first")
	c.Set("third", 3)

	if _, ok := c.Get("second"); ok {
		t.Error("least recently used entry should have been evicted")
	}
	if v, _ := c.Get("first"); v != 1 {
		t.Errorf("Get(first) = %v, want 1", v)
	}
	if st := c.Stats(); st.Evictions != 1 || st.Size != 2 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestCache_GetOrSet(t *testing.T) {
	c, _ := newTestCache(t, DefaultConfig())

	calls := 0
	fn := func() (int, error) {
		calls++
		return 7, nil
	}
	for i := 0; i < 3; i++ {
		v, err := c.GetOrSet("k", fn)
		if err != nil || v != 7 {
			t.Fatalf("GetOrSet() = %v, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}

	wantErr := errors.New("boom")
	if _, err := c.GetOrSet("bad", func() (int, error) { return 0, wantErr }); err != wantErr {
		t.Errorf("GetOrSet() error = %v, want %v", err, wantErr)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("errors must not be cached")
	}
}

func TestCache_Clear(t *testing.T) {
	c, _ := newTestCache(t, DefaultConfig())
	c.Set("a", 1)
	c.Get("a")
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() = %d after Clear", c.Size())
	}
	if c.Stats().Hits != 1 {
		t.Error("Clear() should keep counters")
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[string, int](Config{MaxItems: 50, TTL: time.Minute})

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (w*31+i)%120)
				c.Set(key, i)
				c.Get(key)
			}
		}(w)
	}
	wg.Wait()

	if c.Size() > 50 {
		t.Errorf("Size() = %d exceeds MaxItems", c.Size())
	}
	c.Close()
	c.Close()
}

func TestDetectionCache(t *testing.T) {
	c := NewDetectionCache(DefaultConfig())
	defer c.Close()

	formats := []string{"strict_date_optional_time", "yyyy/MM/dd"}
	entry := DetectionEntry{Matched: true, Index: 1, Pattern: "yyyy/MM/dd", Time: time.Date(2014, 10, 10, 0, 0, 0, 0, time.UTC)}
	c.Set(formats, "2014/10/10", entry)

	got, ok := c.Get(formats, "2014/10/10")
	if !ok || got != entry {
		t.Errorf("Get() = %+v, %v", got, ok)
	}
	if _, ok := c.Get([]string{"yyyy/MM/dd"}, "2014/10/10"); ok {
		t.Error("a different format list must not share entries")
	}
	if DetectionKey([]string{"a", "b"}, "c") == DetectionKey([]string{"a"}, "b\x01c") {
		t.Error("keys should separate formats and text")
	}

	stats := c.Stats()
	if stats["detection_cache_size"] != 1 || stats["detection_hits"] != int64(1) || stats["detection_misses"] != int64(1) {
		t.Errorf("Stats() = %v", stats)
	}
	c.Clear()
	if c.Size() != 0 {
		t.Error("Clear() should empty the cache")
	}
}
