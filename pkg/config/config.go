// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, search and douban settings

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Search contains aggregation tuning
	Search SearchConfig

	// Douban contains recommendation feed tuning
	Douban DoubanConfig

	// API contains inbound rate limiting configuration
	API APIConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// LogLevel controls logger verbosity (debug/info/warn/error)
	LogLevel string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// SearchConfig holds aggregation tuning
type SearchConfig struct {
	// AggregatedTimeoutSeconds bounds each source during a fan-out search
	AggregatedTimeoutSeconds int

	// SingleTimeoutSeconds bounds a single-source interactive search
	SingleTimeoutSeconds int

	// MaxCustomSources caps ad hoc URLs in a multi-custom search
	MaxCustomSources int

	// IncludeAdult controls whether adult-flagged sources are listed
	IncludeAdult bool
}

// DoubanConfig holds recommendation feed tuning
type DoubanConfig struct {
	// RequestsPerSecond throttles outbound Douban calls; 0 disables
	RequestsPerSecond float64
}

// APIConfig holds inbound rate limiting configuration
type APIConfig struct {
	// RateLimit is the maximum requests per client per window; 0 disables
	RateLimit int

	// RateWindowSeconds is the limiter window length
	RateWindowSeconds int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:     getEnvOrDefault("PORT", "8080"),
			LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 600),
			},
		},
		Search: SearchConfig{
			AggregatedTimeoutSeconds: getEnvAsIntOrDefault("SEARCH_AGGREGATED_TIMEOUT", 8),
			SingleTimeoutSeconds:     getEnvAsIntOrDefault("SEARCH_SINGLE_TIMEOUT", 20),
			MaxCustomSources:         getEnvAsIntOrDefault("SEARCH_MAX_CUSTOM_SOURCES", 5),
			IncludeAdult:             getEnvAsBoolOrDefault("SEARCH_INCLUDE_ADULT", false),
		},
		Douban: DoubanConfig{
			RequestsPerSecond: getEnvAsFloatOrDefault("DOUBAN_REQUESTS_PER_SECOND", 2),
		},
		API: APIConfig{
			RateLimit:         getEnvAsIntOrDefault("API_RATE_LIMIT", 0),
			RateWindowSeconds: getEnvAsIntOrDefault("API_RATE_WINDOW", 60),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault returns the environment variable as bool or a default
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Search.AggregatedTimeoutSeconds < 1 {
		return errors.New("aggregated search timeout must be at least 1 second")
	}

	if c.Search.SingleTimeoutSeconds < 1 {
		return errors.New("single search timeout must be at least 1 second")
	}

	if c.Search.MaxCustomSources < 1 {
		return errors.New("max custom sources must be at least 1")
	}

	if c.Douban.RequestsPerSecond < 0 {
		return errors.New("douban requests per second cannot be negative")
	}

	return nil
}
