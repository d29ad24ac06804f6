package render

import (
	"sync"
	"time"
)

// OutputCache stores rendered output blocks. Implementations must treat an
// empty string as a valid cached value: "nothing renders here" is a result
// worth remembering.
type OutputCache interface {
	// Get returns the cached block and whether it was present.
	Get(key string) (string, bool)

	// Set stores a block under the key.
	Set(key, value string)

	// Clear drops every entry.
	Clear()
}

// cacheEntry is one cached output block with its expiry deadline.
type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is a mutex-guarded TTL map. It is the default backend: output
// blocks are small and read-heavy, and the generation scheme in the
// pipeline handles invalidation, so nothing fancier is needed.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

// NewMemoryCache creates a memory cache. A zero ttl means entries never
// expire.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Get returns the cached block, treating expired entries as absent.
func (c *MemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}
	if c.ttl > 0 && time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.value, true
}

// Set stores a block with the cache's TTL.
func (c *MemoryCache) Set(key, value string) {
	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = time.Now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Len reports the current entry count, expired entries included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Sweep removes expired entries and reports how many it dropped. The
// cron-scheduled sweeper calls this; Get already ignores expired entries,
// so sweeping only reclaims memory.
func (c *MemoryCache) Sweep() int {
	if c.ttl <= 0 {
		return 0
	}

	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}
