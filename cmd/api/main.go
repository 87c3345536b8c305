// ABOUTME: Main entry point for the VOD Search API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vodsearch-api/api"
	"vodsearch-api/api/handlers"
	"vodsearch-api/core/detail"
	"vodsearch-api/core/douban"
	"vodsearch-api/core/fetch"
	"vodsearch-api/core/interfaces"
	"vodsearch-api/core/search"
	"vodsearch-api/core/sources"
	"vodsearch-api/infrastructure/cache/gocache"
	"vodsearch-api/infrastructure/cache/redis"
	stdhttp "vodsearch-api/infrastructure/http/standard"
	logruslogger "vodsearch-api/infrastructure/logger/logrus"
	"vodsearch-api/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logruslogger.New(cfg.Server.LogLevel)
	logger.Info("Starting VOD Search API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
	})

	// Create cache
	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = gocache.NewGoCache(fetch.DefaultCacheTTL)
		} else {
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = gocache.NewGoCache(time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second)
		logger.Info("Using memory cache", nil)
	}

	// Create HTTP client
	httpClient := stdhttp.NewStandardHTTPClient(30 * time.Second)

	// Create dependencies container
	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	// Create registry and services
	registry := sources.NewRegistry()

	searchCfg := search.DefaultConfig()
	searchCfg.AggregatedTimeout = time.Duration(cfg.Search.AggregatedTimeoutSeconds) * time.Second
	searchCfg.SingleTimeout = time.Duration(cfg.Search.SingleTimeoutSeconds) * time.Second
	searchCfg.MaxCustomSources = cfg.Search.MaxCustomSources
	searchService := search.NewService(deps, registry, searchCfg)

	detailService := detail.NewService(deps, registry)
	doubanService := douban.NewService(deps, douban.Config{
		RequestsPerSecond: cfg.Douban.RequestsPerSecond,
	})

	// Create API with middleware
	apiConfig := api.APIConfig{
		Logger:     logger,
		RateLimit:  cfg.API.RateLimit,
		RateWindow: time.Duration(cfg.API.RateWindowSeconds) * time.Second,
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	// Create and register handlers
	searchHandler := handlers.NewSearchHandler(searchService, registry, cfg.Search.IncludeAdult)
	searchHandler.RegisterRoutes(humaAPI)

	detailHandler := handlers.NewDetailHandler(detailService)
	detailHandler.RegisterRoutes(humaAPI)

	doubanHandler := handlers.NewDoubanHandler(doubanService)
	doubanHandler.RegisterRoutes(humaAPI)

	proxyHandler := handlers.NewProxyHandler(httpClient, logger)
	proxyHandler.RegisterRoutes(router)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if closer, ok := cache.(interface{ Close() error }); ok {
		closer.Close()
	}

	logger.Info("Server stopped", nil)
}
