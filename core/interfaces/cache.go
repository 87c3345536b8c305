// Package interfaces defines the contracts the core services depend on.
// Implementations live under infrastructure/ and are injected through the
// Dependencies container, which keeps the core testable with fakes.
package interfaces

import (
	"context"
	"time"
)

// Cache is the session-scoped key-value store used for response caching.
// The cache is an optimization, never a correctness dependency: callers
// must tolerate misses, write failures and an absent backend.
type Cache interface {
	// Get retrieves the value stored under key, or an error on miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for ttl. A ttl of 0 stores indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
