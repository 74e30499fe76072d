package cache

import (
	"context"
	"sync"
)

// MemoryCache is an in-process cache driver used in tests and local runs.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

func (c *MemoryCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	c.entries[key] = value
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	val, ok := c.entries[key]
	c.mu.RUnlock()
	return val, ok, nil
}

func (c *MemoryCache) Close() error { return nil }
