package detail

import (
	"context"
	"io"
	"strings"

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
