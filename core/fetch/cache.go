// ABOUTME: Read-through TTL caching over the session cache contract
// ABOUTME: Cache failures are logged and swallowed, never surfaced to callers

package fetch

import (
	"context"
	"time"

	"vodsearch-api/core/interfaces"
)

// DefaultCacheTTL is how long a cached upstream response stays fresh.
const DefaultCacheTTL = 10 * time.Minute

// FetchFunc produces a payload on a cache miss. The cacheable flag lets
// fail-soft results (empty fallbacks, rate-limit leftovers) pass through
// to the caller without poisoning the cache, so a later call retries
// fresh.
type FetchFunc func(ctx context.Context) (payload []byte, cacheable bool, err error)

// GetOrFetch returns the cached payload under key when present and fresh,
// otherwise invokes fetch and stores a cacheable, non-empty result for
// ttl. Cache read/write errors degrade to a fetch; they are never fatal.
func GetOrFetch(ctx context.Context, cache interfaces.Cache, logger interfaces.Logger, key string, ttl time.Duration, fetch FetchFunc) ([]byte, error) {
	if cache != nil {
		if data, err := cache.Get(ctx, key); err == nil && len(data) > 0 {
			if logger != nil {
				logger.Debug("cache hit", map[string]interface{}{"key": key})
			}
			return data, nil
		}
	}

	payload, cacheable, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if cache != nil && cacheable && len(payload) > 0 {
		if serr := cache.Set(ctx, key, payload, ttl); serr != nil && logger != nil {
			logger.Warn("cache write failed", map[string]interface{}{
				"key":   key,
				"error": serr.Error(),
			})
		}
	}
	return payload, nil
}
