// Package cache provides the string key/value read-model cache. Cache
// writes are best-effort overwrites; a missing or corrupt entry only
// means falling back to the relational store.
package cache

import (
	"context"
	"fmt"
	"strings"
)

// Cache is the read-model cache contract.
type Cache interface {
	// Set unconditionally overwrites the value for key.
	Set(ctx context.Context, key, value string) error
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Close() error
}

// Config selects and configures a cache driver.
type Config struct {
	Driver   string // redis, memory
	Addr     string
	Password string
	DB       int
}

// New creates a Cache for the configured driver.
func New(cfg *Config) (Cache, error) {
	switch strings.ToLower(cfg.Driver) {
	case "redis":
		return NewRedisCache(cfg.Addr, cfg.Password, cfg.DB)
	case "memory", "":
		return NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache driver: %q", cfg.Driver)
	}
}
