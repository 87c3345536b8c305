package config

import (
	"testing"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q", cfg.Server.Port)
	}
	if cfg.Cache.Type != "memory" {
		t.Errorf("Cache.Type = %q", cfg.Cache.Type)
	}
	if cfg.Search.AggregatedTimeoutSeconds != 8 {
		t.Errorf("AggregatedTimeoutSeconds = %d", cfg.Search.AggregatedTimeoutSeconds)
	}
	if cfg.Search.SingleTimeoutSeconds != 20 {
		t.Errorf("SingleTimeoutSeconds = %d", cfg.Search.SingleTimeoutSeconds)
	}
	if cfg.Search.MaxCustomSources != 5 {
		t.Errorf("MaxCustomSources = %d", cfg.Search.MaxCustomSources)
	}
	if cfg.Search.IncludeAdult {
		t.Error("IncludeAdult should default to false")
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("REDIS_ADDRESS", "redis.internal:6379")
	t.Setenv("SEARCH_AGGREGATED_TIMEOUT", "12")
	t.Setenv("SEARCH_INCLUDE_ADULT", "true")
	t.Setenv("DOUBAN_REQUESTS_PER_SECOND", "0.5")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.Server.Port != "9000" {
		t.Errorf("Port = %q", cfg.Server.Port)
	}
	if cfg.Cache.Type != "redis" || cfg.Cache.Redis.Address != "redis.internal:6379" {
		t.Errorf("cache config = %+v", cfg.Cache)
	}
	if cfg.Search.AggregatedTimeoutSeconds != 12 {
		t.Errorf("AggregatedTimeoutSeconds = %d", cfg.Search.AggregatedTimeoutSeconds)
	}
	if !cfg.Search.IncludeAdult {
		t.Error("IncludeAdult override not applied")
	}
	if cfg.Douban.RequestsPerSecond != 0.5 {
		t.Errorf("RequestsPerSecond = %v", cfg.Douban.RequestsPerSecond)
	}
}

func TestLoadFromEnv_BadIntFallsBack(t *testing.T) {
	t.Setenv("SEARCH_SINGLE_TIMEOUT", "not-a-number")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.Search.SingleTimeoutSeconds != 20 {
		t.Errorf("SingleTimeoutSeconds = %d, want the default", cfg.Search.SingleTimeoutSeconds)
	}
}

func TestValidate(t *testing.T) {
	valid, _ := LoadFromEnv()
	if err := valid.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Server.Port = "" }},
		{"bad cache type", func(c *Config) { c.Cache.Type = "memcached" }},
		{"redis without address", func(c *Config) { c.Cache.Type = "redis"; c.Cache.Redis.Address = "" }},
		{"zero aggregated timeout", func(c *Config) { c.Search.AggregatedTimeoutSeconds = 0 }},
		{"zero single timeout", func(c *Config) { c.Search.SingleTimeoutSeconds = 0 }},
		{"zero custom cap", func(c *Config) { c.Search.MaxCustomSources = 0 }},
		{"negative douban rate", func(c *Config) { c.Douban.RequestsPerSecond = -1 }},
	}
	for _, tc := range cases {
		cfg, _ := LoadFromEnv()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate accepted invalid config", tc.name)
		}
	}
}
