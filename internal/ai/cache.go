package ai

import (
	"sync"
	"time"
)

type cacheEntry struct {
	value    string
	storedAt time.Time
}

// Cache is an explicit TTL response cache for generated copy. It is passed
// into the client rather than living at package level, so cache behavior
// stays testable through the injectable clock.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCache creates a cache with the given TTL. now is optional; nil means
// time.Now.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{ttl: ttl, now: now, entries: map[string]cacheEntry{}}
}

// Get returns the cached value for key if it has not expired.
func (c *Cache) Get(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		return "", false
	}
	return e.value, true
}

// Set stores a value for key, stamped with the current time.
func (c *Cache) Set(key, value string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, storedAt: c.now()}
}
