package sdk

import (
	"fmt"
	"time"
)

// ExpirationMode selects when a cached response becomes stale.
type ExpirationMode int

const (
	// ExpireAfterWrite expires an entry a fixed duration after it was put
	// into the cache, regardless of how often it is read.
	ExpireAfterWrite ExpirationMode = iota

	// ExpireAfterAccess expires an entry a fixed duration after it was last
	// returned from a cache hit; every hit resets the clock.
	ExpireAfterAccess
)

// String returns the string representation of the expiration mode.
func (m ExpirationMode) String() string {
	switch m {
	case ExpireAfterWrite:
		return "after-write"
	case ExpireAfterAccess:
		return "after-access"
	default:
		return "unknown"
	}
}

// CacheSpec is the immutable description of how a client caches response
// bodies. Build one through NewCacheSpec and attach it to a PersonSDK; a
// client built without a spec performs no caching.
//
// Example:
//
//	spec, err := sdk.NewCacheSpec().
//	    Expiration(5*time.Minute, sdk.ExpireAfterWrite).
//	    MaxElements(1000).
//	    Build()
type CacheSpec struct {
	expiration  time.Duration
	mode        ExpirationMode
	maxElements int
}

// Expiration returns the configured expiration duration. Zero means entries
// never expire by age.
func (s *CacheSpec) Expiration() time.Duration { return s.expiration }

// Mode returns the configured expiration mode.
func (s *CacheSpec) Mode() ExpirationMode { return s.mode }

// MaxElements returns the upper bound on cached entries.
func (s *CacheSpec) MaxElements() int { return s.maxElements }

// CacheSpecBuilder collects cache settings incrementally; Build validates
// them and produces the immutable spec.
type CacheSpecBuilder struct {
	expiration  time.Duration
	mode        ExpirationMode
	maxElements int
}

// NewCacheSpec starts a cache spec builder with the defaults: no age-based
// expiration and room for 1024 entries.
func NewCacheSpec() *CacheSpecBuilder {
	return &CacheSpecBuilder{maxElements: 1024}
}

// Expiration sets the expiration duration and mode. A zero duration disables
// age-based expiration; entries are then only removed by eviction.
func (b *CacheSpecBuilder) Expiration(d time.Duration, mode ExpirationMode) *CacheSpecBuilder {
	b.expiration = d
	b.mode = mode
	return b
}

// MaxElements caps the number of entries held in the cache. When an insertion
// would exceed the cap, the least recently used entry is evicted. The eviction
// policy is deterministic for this implementation but callers must not depend
// on more than "least valuable entry removed first".
func (b *CacheSpecBuilder) MaxElements(n int) *CacheSpecBuilder {
	b.maxElements = n
	return b
}

// Build validates the collected settings and returns the spec. It fails with
// a ServiceException carrying StatusInvalidCacheSpec when the expiration
// duration is negative or the element cap is below one.
func (b *CacheSpecBuilder) Build() (*CacheSpec, error) {
	if b.expiration < 0 {
		return nil, &ServiceException{
			Message:    fmt.Sprintf("expiration duration must not be negative, got %s", b.expiration),
			StatusCode: StatusInvalidCacheSpec,
			wrapped:    ErrInvalidCacheSpec,
		}
	}
	if b.maxElements < 1 {
		return nil, &ServiceException{
			Message:    fmt.Sprintf("max elements must be at least 1, got %d", b.maxElements),
			StatusCode: StatusInvalidCacheSpec,
			wrapped:    ErrInvalidCacheSpec,
		}
	}
	return &CacheSpec{
		expiration:  b.expiration,
		mode:        b.mode,
		maxElements: b.maxElements,
	}, nil
}
