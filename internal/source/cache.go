package source

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache stores fetched document bytes by location.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

// MemoryCache is an in-process Cache with per-entry expiry.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a cache whose entries expire after ttl.
func NewMemoryCache(ttl, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{cache: gocache.New(ttl, cleanupInterval)}
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

func (c *MemoryCache) Set(key string, value []byte) {
	c.cache.Set(key, value, gocache.DefaultExpiration)
}

func (c *MemoryCache) Delete(key string) {
	c.cache.Delete(key)
}

// Len reports the number of unexpired entries.
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}
