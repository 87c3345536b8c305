// Package core contains the business logic for the VOD Search API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Contains pure domain models (Source, VideoItem, VideoDetail, etc.)
// - sources: Registry of built-in and custom upstream sources
// - fetch: Retried JSON fetching and read-through caching
// - search: Single-source, aggregated and custom-source search
// - detail: Episode list resolution, JSON and scraped HTML paths
// - douban: Douban recommendation feed client
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "vodsearch-api/core/interfaces"
//	    "vodsearch-api/core/search"
//	    "vodsearch-api/core/sources"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	// Create service
//	registry := sources.NewRegistry()
//	searchService := search.NewService(deps, registry, search.DefaultConfig())
//
//	// Search every source
//	result, err := searchService.SearchAggregated(ctx, "关键词", registry.IDs(false))
package core
