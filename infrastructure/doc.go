// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, HTTP communication, and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/gocache: In-process cache implementation using patrickmn/go-cache
// - cache/redis: Redis-based cache implementation
// - http/standard: Standard library HTTP client
// - logger/logrus: Structured JSON logger implementation
//
// # Design Philosophy
//
// Infrastructure components are designed to be:
// - Pluggable: Easy to swap implementations
// - Configurable: Accept configuration objects
// - Testable: Include both unit and integration tests
// - Production-ready: Include timeouts and error handling
//
// The HTTP client deliberately carries no retry logic; retry policy lives
// in core/fetch where it can differ per call site.
//
// # Cache Implementations
//
// In-process cache example:
//
//	cache := gocache.NewGoCache(10 * time.Minute)
//	err := cache.Set(ctx, "key", []byte("value"), 10*time.Minute)
//	value, err := cache.Get(ctx, "key")
//
// Redis cache example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address:  "localhost:6379",
//	    Password: "",
//	    DB:       0,
//	})
//
// # HTTP Client
//
//	client := standard.NewStandardHTTPClient(30 * time.Second)
//	resp, err := client.Get(ctx, "https://example.com")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := logrus.New("info")
//	logger.Info("Processing request", map[string]interface{}{
//	    "source": "heimuer",
//	    "action": "search",
//	})
package infrastructure
