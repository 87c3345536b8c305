// ABOUTME: In-process cache implementation backed by patrickmn/go-cache
// ABOUTME: Default when no Redis is configured; values are copied on both paths

package gocache

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const cleanupInterval = 5 * time.Minute

// GoCache implements the Cache interface with an in-process store.
type GoCache struct {
	store *gocache.Cache
}

// NewGoCache creates an in-process cache. Expired entries are purged on
// a fixed cleanup interval.
func NewGoCache(defaultExpiration time.Duration) *GoCache {
	return &GoCache{
		store: gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get retrieves a value from the cache
func (c *GoCache) Get(ctx context.Context, key string) ([]byte, error) {
	v, found := c.store.Get(key)
	if !found {
		return nil, errors.New("key not found")
	}
	data, ok := v.([]byte)
	if !ok {
		return nil, errors.New("cached value has unexpected type")
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Set stores a value in the cache with the given TTL. A zero TTL stores
// the entry without expiration.
func (c *GoCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	if ttl == 0 {
		ttl = gocache.NoExpiration
	}
	c.store.Set(key, stored, ttl)
	return nil
}

// Delete removes a key from the cache
func (c *GoCache) Delete(ctx context.Context, key string) error {
	c.store.Delete(key)
	return nil
}
