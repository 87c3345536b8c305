// Package api provides the HTTP API layer for the VOD Search application.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Key Features
//
// 1. Automatic OpenAPI Generation
//
// The API automatically generates OpenAPI 3.0 documentation:
// - JSON spec available at /openapi.json
// - Interactive Swagger UI at /docs
//
// 2. Request/Response Validation
//
// Huma provides automatic validation based on struct tags:
//
//	type SearchInput struct {
//	    Query  string `query:"wd" doc:"Search keyword"`
//	    Source string `query:"source" doc:"Source id"`
//	}
//
// 3. Middleware Support
//
// The API includes middleware for:
// - Request logging with unique request IDs
// - Rate limiting per IP address
// - CORS handling
//
// The media proxy endpoint is registered directly on the chi router, not
// through Huma, because it streams arbitrary upstream bodies.
//
// # Error Handling
//
// The API uses a consistent error format based on RFC 7807:
//
//	{
//	    "status": 503,
//	    "title": "Service Unavailable",
//	    "detail": "all sources failed: ..."
//	}
//
// Domain errors are automatically mapped to appropriate HTTP status codes.
package api
