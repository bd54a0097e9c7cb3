// Package querycache is the in-memory read cache for remote queries.
// Consistency after mutations is invalidate-and-refetch: entries are
// dropped, never patched, so every view re-derives its state from fresh
// server data.
package querycache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns the cached value for key if it is still fresh. An entry
// found expired is removed on the spot instead of lingering until an
// invalidation happens to touch its key.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		// Recheck under the write lock; a Set may have refreshed the key.
		if cur, ok := c.entries[key]; ok && time.Now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Drop removes a single key.
func (c *Cache) Drop(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// DropPrefix removes every key under a prefix, e.g. all cached event
// list variants regardless of their filter parameters.
func (c *Cache) DropPrefix(prefix string) {
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

// Through reads key from the cache or runs fetch and stores the result.
// A fetch failure is returned to the caller and caches nothing.
func Through[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error)) (T, error) {
	if cached, ok := c.Get(key); ok {
		if typed, ok := cached.(T); ok {
			return typed, nil
		}
	}

	value, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.Set(key, value)
	return value, nil
}
