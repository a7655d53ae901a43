package sdk

import (
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move cache time by hand.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testCache(t *testing.T, build func(*CacheSpecBuilder) *CacheSpecBuilder) (*responseCache, *fakeClock) {
	t.Helper()
	spec, err := build(NewCacheSpec()).Build()
	require.NoError(t, err)

	cache := newResponseCache(spec)
	clock := newFakeClock()
	cache.now = clock.Now
	return cache, clock
}

func TestResponseCache_PutGet(t *testing.T) {
	cache, _ := testCache(t, func(b *CacheSpecBuilder) *CacheSpecBuilder { return b })

	body, ok := cache.get("k1")
	assert.False(t, ok)
	assert.Nil(t, body)

	cache.put("k1", []byte(`{"id":"1"}`))
	body, ok = cache.get("k1")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"id":"1"}`), body)
}

func TestResponseCache_OverwriteSameKey(t *testing.T) {
	cache, _ := testCache(t, func(b *CacheSpecBuilder) *CacheSpecBuilder { return b })

	cache.put("k1", []byte("old"))
	cache.put("k1", []byte("new"))

	body, ok := cache.get("k1")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), body)
	assert.Equal(t, 1, cache.len())
}

func TestResponseCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache, _ := testCache(t, func(b *CacheSpecBuilder) *CacheSpecBuilder {
		return b.MaxElements(3)
	})

	cache.put("a", []byte("a"))
	cache.put("b", []byte("b"))
	cache.put("c", []byte("c"))

	// Touch "a" so "b" becomes the least recently used entry.
	_, ok := cache.get("a")
	require.True(t, ok)

	cache.put("d", []byte("d"))
	assert.Equal(t, 3, cache.len())

	_, ok = cache.get("b")
	assert.False(t, ok, "least recently used entry should have been evicted")
	for _, key := range []string{"a", "c", "d"} {
		_, ok := cache.get(key)
		assert.True(t, ok, "entry %q should survive eviction", key)
	}
}

func TestResponseCache_CapacityOne(t *testing.T) {
	cache, _ := testCache(t, func(b *CacheSpecBuilder) *CacheSpecBuilder {
		return b.MaxElements(1)
	})

	cache.put("a", []byte("a"))
	cache.put("b", []byte("b"))

	_, ok := cache.get("a")
	assert.False(t, ok)
	_, ok = cache.get("b")
	assert.True(t, ok)
}

func TestResponseCache_ExpireAfterWrite(t *testing.T) {
	cache, clock := testCache(t, func(b *CacheSpecBuilder) *CacheSpecBuilder {
		return b.Expiration(time.Minute, ExpireAfterWrite)
	})

	cache.put("k", []byte("v"))

	clock.Advance(59 * time.Second)
	_, ok := cache.get("k")
	require.True(t, ok)

	// Reads do not extend life under after-write expiry.
	clock.Advance(time.Second)
	_, ok = cache.get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.len(), "expired entry should be purged on read")
}

func TestResponseCache_ExpireAfterAccess(t *testing.T) {
	cache, clock := testCache(t, func(b *CacheSpecBuilder) *CacheSpecBuilder {
		return b.Expiration(time.Minute, ExpireAfterAccess)
	})

	cache.put("k", []byte("v"))

	// Each hit resets the expiry clock.
	for i := 0; i < 3; i++ {
		clock.Advance(45 * time.Second)
		_, ok := cache.get("k")
		require.True(t, ok, "hit %d should reset the clock", i)
	}

	clock.Advance(61 * time.Second)
	_, ok := cache.get("k")
	assert.False(t, ok)
}

func TestResponseCache_ConcurrentAccess(t *testing.T) {
	cache, _ := testCache(t, func(b *CacheSpecBuilder) *CacheSpecBuilder {
		return b.MaxElements(16)
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d", (n+j)%32)
				cache.put(key, []byte(key))
				cache.get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.len(), 16)
}

func TestFingerprint(t *testing.T) {
	a := url.Values{}
	a.Add("page", "1")
	a.Add("sortBy", "-creation")

	b := url.Values{}
	b.Add("sortBy", "-creation")
	b.Add("page", "1")

	assert.Equal(t, fingerprint("GET", "/persons", a), fingerprint("GET", "/persons", b),
		"fingerprint must not depend on parameter insertion order")
	assert.NotEqual(t, fingerprint("GET", "/persons", a), fingerprint("DELETE", "/persons", a))
	assert.Equal(t, "GET /persons", fingerprint("GET", "/persons", nil))
}
