package search

import (
	"context"
	"io"
	"strings"
	"time"

	"vodsearch-api/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string, opts interfaces.RequestOptions) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return m.GetWithOptions(ctx, url, interfaces.RequestOptions{})
}

func (m *mockHTTPClient) GetWithOptions(ctx context.Context, url string, opts interfaces.RequestOptions) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url, opts)
	}
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	return ""
}

// mockLogger is a no-op logger capturing nothing
type mockLogger struct{}

func (mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (mockLogger) Info(msg string, fields map[string]interface{})  {}
func (mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (mockLogger) Error(msg string, fields map[string]interface{}) {}

// fastConfig is the default tuning with retries collapsed to one attempt
// so failing-source tests settle immediately.
func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.Retry.MaxAttempts = 1
	cfg.Retry.InitialDelay = time.Millisecond
	return cfg
}
