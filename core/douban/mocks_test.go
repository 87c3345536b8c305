package douban

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

// memCache is a tiny in-process cache for read-through tests
type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return nil, errNotFound
}

func (c *memCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

type cacheError string

func (e cacheError) Error() string { return string(e) }

const errNotFound = cacheError("key not found")
