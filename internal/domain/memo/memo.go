// Package memo provides a bounded, time-limited memoization cache for query
// results. It is the only state shared across requests; everything else is
// rebuilt per search.
package memo

import (
	"sync"
	"time"
)

// Default cache configuration constants.
const (
	defaultTTL        = 5 * time.Minute
	defaultMaxEntries = 256
)

type entry[V any] struct {
	value   V
	expires time.Time
}

// Cache memoizes values by string key with a fixed time-to-live. Reads and
// writes are safe for concurrent use.
type Cache[V any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[V]
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// New creates a cache with configuration options.
func New[V any](opts ...Option) *Cache[V] {
	s := settings{
		ttl:        defaultTTL,
		maxEntries: defaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}

	return &Cache[V]{
		entries:    make(map[string]entry[V]),
		ttl:        s.ttl,
		maxEntries: s.maxEntries,
		now:        s.now,
	}
}

// Get returns the cached value for key if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expires) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with the configured TTL. When the cache is at
// capacity, expired entries are purged first; if it is still full, the entry
// closest to expiry is evicted.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.purgeLocked(now)
		if len(c.entries) >= c.maxEntries {
			c.evictSoonestLocked()
		}
	}

	c.entries[key] = entry[V]{value: value, expires: now.Add(c.ttl)}
}

// Len returns the number of entries currently held, including any that have
// expired but not yet been purged.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// purgeLocked drops every expired entry. Caller holds the write lock.
func (c *Cache[V]) purgeLocked(now time.Time) {
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
		}
	}
}

// evictSoonestLocked removes the entry with the earliest expiry.
// Caller holds the write lock.
func (c *Cache[V]) evictSoonestLocked() {
	var victim string
	var soonest time.Time
	first := true
	for k, e := range c.entries {
		if first || e.expires.Before(soonest) {
			victim, soonest = k, e.expires
			first = false
		}
	}
	if !first {
		delete(c.entries, victim)
	}
}
