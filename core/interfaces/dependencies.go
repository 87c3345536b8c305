// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Every core service receives its collaborators through this struct

package interfaces

// Dependencies holds the external collaborators required by the core
// business logic.
type Dependencies struct {
	// Cache provides session-scoped response caching.
	Cache Cache

	// HTTPClient provides the transport for upstream requests.
	HTTPClient HTTPClient

	// Logger provides structured logging.
	Logger Logger
}
