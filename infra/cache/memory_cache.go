package cache

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/invest/pkg/cache"
)

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache implements cache.Store using in-memory storage.
type MemoryCache struct {
	entries map[string]cacheEntry
	mu      sync.RWMutex
	now     func() time.Time
}

// NewMemoryCache creates a new in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()
	if !exists {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set stores value with ttl. A zero ttl never expires.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := cacheEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweep()
	c.entries[key] = entry
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// sweep drops expired entries. Caller holds the write lock.
func (c *MemoryCache) sweep() {
	now := c.now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

var _ cache.Store = (*MemoryCache)(nil)
