package dao

import (
	"sync"
	"time"
)

// DefaultCacheTTL is the default time-to-live for cached list results.
const DefaultCacheTTL = 5 * time.Second

// cacheEntry holds cached records with their timestamp.
type cacheEntry struct {
	records   []Record
	timestamp time.Time
}

// ResourceCache provides TTL-based caching of list results so rapid view
// switches don't hammer the backend. Create/update/delete invalidate the
// owning resource's entry.
type ResourceCache struct {
	data map[string]cacheEntry
	ttl  time.Duration
	mx   sync.RWMutex
}

// NewResourceCache creates a new ResourceCache with the specified TTL.
func NewResourceCache(ttl time.Duration) *ResourceCache {
	return &ResourceCache{
		data: make(map[string]cacheEntry),
		ttl:  ttl,
	}
}

// Get retrieves cached records for the given key.
// Returns nil if the key is not found or the entry has expired.
func (c *ResourceCache) Get(key string) []Record {
	c.mx.RLock()
	defer c.mx.RUnlock()

	entry, exists := c.data[key]
	if !exists {
		return nil
	}

	if time.Since(entry.timestamp) > c.ttl {
		return nil
	}

	return entry.records
}

// Set stores records in the cache with the given key.
func (c *ResourceCache) Set(key string, records []Record) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.data[key] = cacheEntry{
		records:   records,
		timestamp: time.Now(),
	}
}

// Invalidate removes a specific key from the cache.
func (c *ResourceCache) Invalidate(key string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	delete(c.data, key)
}

// Clear drops every cached entry.
func (c *ResourceCache) Clear() {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.data = make(map[string]cacheEntry)
}
