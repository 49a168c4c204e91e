package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry[V any] struct {
	value V
	built time.Time
}

// Cache holds values built on demand and kept for a fixed TTL.
// Concurrent misses for one key share a single build.
type Cache[V any] struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cacheEntry[V]
	sf      singleflight.Group
	now     func() time.Time
}

// NewCache creates a cache. A zero TTL disables caching.
func NewCache[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl:     ttl,
		entries: make(map[string]cacheEntry[V]),
		now:     time.Now,
	}
}

func (c *Cache[V]) fresh(key string) (V, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.ttl == 0 || c.now().Sub(entry.built) > c.ttl {
		var zero V
		return zero, false
	}
	return entry.value, true
}

// Get returns the cached value for key or builds and stores a new one.
func (c *Cache[V]) Get(ctx context.Context, key string, build func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := c.fresh(key); ok {
		return v, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		if v, ok := c.fresh(key); ok {
			return v, nil
		}

		v, err := build(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = cacheEntry[V]{value: v, built: c.now()}
		c.mu.Unlock()

		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return result.(V), nil
}

// Invalidate drops the entry for key.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
