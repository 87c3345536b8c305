package interfaces

import (
	"context"
	"io"
)

// RequestOptions carries per-request transport settings. Timeouts are
// expressed through the context deadline so the transport stays free of
// retry or scheduling policy.
type RequestOptions struct {
	// Headers are sent verbatim with the request.
	Headers map[string]string
}

// HTTPClient is the transport adapter contract. Implementations perform a
// single request and report the outcome; retries are the caller's job.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	Get(ctx context.Context, url string) (Response, error)

	// GetWithOptions performs an HTTP GET with extra request settings.
	GetWithOptions(ctx context.Context, url string, opts RequestOptions) (Response, error)
}

// Response abstracts an HTTP response so fakes can stand in for the real
// transport in tests. Non-2xx statuses are returned, not raised, so
// callers can branch on them.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body. The caller closes it.
	Body() io.ReadCloser

	// Header returns the value of the named header, case-insensitively.
	// Missing headers return an empty string.
	Header(key string) string
}
