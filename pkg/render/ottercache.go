package render

import (
	"time"

	"github.com/maypok86/otter"
)

// OtterCache is an OutputCache backed by an otter S3-FIFO cache. It bounds
// memory on high-cardinality sites (many roles and entity IDs multiply the
// key space) where the plain map would grow without limit between sweeps.
type OtterCache struct {
	cache otter.Cache[string, string]
}

var _ OutputCache = (*OtterCache)(nil)

// NewOtterCache creates a bounded output cache. Entries expire after ttl
// and are evicted under capacity pressure.
func NewOtterCache(maxEntries int, ttl time.Duration) (*OtterCache, error) {
	builder := otter.MustBuilder[string, string](maxEntries).
		Cost(func(_ string, _ string) uint32 { return 1 })

	var cache otter.Cache[string, string]
	var err error
	if ttl > 0 {
		cache, err = builder.WithTTL(ttl).Build()
	} else {
		cache, err = builder.Build()
	}
	if err != nil {
		return nil, err
	}
	return &OtterCache{cache: cache}, nil
}

// Get returns the cached block and whether it was present.
func (c *OtterCache) Get(key string) (string, bool) {
	return c.cache.Get(key)
}

// Set stores a block under the key.
func (c *OtterCache) Set(key, value string) {
	c.cache.Set(key, value)
}

// Clear drops every entry.
func (c *OtterCache) Clear() {
	c.cache.Clear()
}

// Close releases the cache's background resources.
func (c *OtterCache) Close() {
	c.cache.Close()
}
