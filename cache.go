package sdk

import (
	"container/list"
	"net/url"
	"sync"
	"time"
)

// cacheEntry is a single cached response body. Entries are owned exclusively
// by the responseCache and only mutated under its lock.
type cacheEntry struct {
	key        string
	body       []byte
	writeTime  time.Time
	accessTime time.Time
}

// responseCache maps request fingerprints to response bodies under the policy
// of a CacheSpec. One cache belongs to exactly one client instance.
//
// All operations are linearizable: a single mutex guards the map and the
// recency list, so a read never observes a partially written entry.
type responseCache struct {
	mu      sync.Mutex
	spec    *CacheSpec
	entries map[string]*list.Element
	// lru orders elements most-recently-used first; values are *cacheEntry.
	lru *list.List

	// now is swappable for expiry tests.
	now func() time.Time
}

func newResponseCache(spec *CacheSpec) *responseCache {
	return &responseCache{
		spec:    spec,
		entries: make(map[string]*list.Element),
		lru:     list.New(),
		now:     time.Now,
	}
}

// get returns the cached body for key, or false on a miss. Expired entries
// are purged on the spot and reported as misses. Under ExpireAfterAccess a
// hit resets the entry's expiry clock.
func (c *responseCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*cacheEntry)

	if c.expired(entry) {
		c.remove(elem)
		return nil, false
	}

	entry.accessTime = c.now()
	c.lru.MoveToFront(elem)
	return entry.body, true
}

// put stores body under key, evicting the least recently used entry when the
// cache is at capacity. Storing an existing key overwrites it in place.
func (c *responseCache) put(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*cacheEntry)
		entry.body = body
		entry.writeTime = now
		entry.accessTime = now
		c.lru.MoveToFront(elem)
		return
	}

	for c.lru.Len() >= c.spec.maxElements {
		c.remove(c.lru.Back())
	}

	entry := &cacheEntry{key: key, body: body, writeTime: now, accessTime: now}
	c.entries[key] = c.lru.PushFront(entry)
}

// len reports the number of live entries, counting ones that have expired but
// not yet been purged.
func (c *responseCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *responseCache) expired(entry *cacheEntry) bool {
	if c.spec.expiration <= 0 {
		return false
	}
	var since time.Duration
	switch c.spec.mode {
	case ExpireAfterAccess:
		since = c.now().Sub(entry.accessTime)
	default:
		since = c.now().Sub(entry.writeTime)
	}
	return since >= c.spec.expiration
}

// remove must be called with the lock held.
func (c *responseCache) remove(elem *list.Element) {
	if elem == nil {
		return
	}
	entry := elem.Value.(*cacheEntry)
	delete(c.entries, entry.key)
	c.lru.Remove(elem)
}

// fingerprint derives the cache key for a request from its method, path and
// query parameters. url.Values.Encode sorts by key, so the fingerprint is
// stable regardless of parameter insertion order.
func fingerprint(method, path string, query url.Values) string {
	if len(query) == 0 {
		return method + " " + path
	}
	return method + " " + path + "?" + query.Encode()
}
