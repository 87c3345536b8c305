// ABOUTME: JSON fetch built on the transport adapter and the retry engine
// ABOUTME: Classifies transport, status, rate-limit and parse failures for the retrier

package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	coreerrors "vodsearch-api/core/errors"
	"vodsearch-api/core/interfaces"
)

// RateLimitMarker is the application-level signal some upstreams embed in
// an otherwise-successful body when the caller should back off.
const RateLimitMarker = "检测到有异常请求"

// maxErrorSnippet bounds how much of an upstream body lands in an error.
const maxErrorSnippet = 200

// StatusError is a non-2xx HTTP response. It is retryable: the upstream
// may recover.
type StatusError struct {
	StatusCode int
	Snippet    string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Snippet)
}

// RateLimitError is the parsed-body rate-limit marker. Retryable with
// backoff, kept distinct from generic status failures.
type RateLimitError struct {
	Msg string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return "upstream rate limit detected: " + e.Msg
}

// ParseError is a malformed body on a successful fetch. Terminal: retrying
// reproduces the same bytes.
type ParseError struct {
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string { return "response body is not valid JSON: " + e.Err.Error() }

// Unwrap exposes the decode failure.
func (e *ParseError) Unwrap() error { return e.Err }

// Client fetches JSON payloads through the transport with bounded retry.
type Client struct {
	http    interfaces.HTTPClient
	retrier *Retrier
	logger  interfaces.Logger
}

// NewClient creates a fetch client over the given transport.
func NewClient(http interfaces.HTTPClient, cfg RetryConfig, logger interfaces.Logger) *Client {
	return &Client{
		http:    http,
		retrier: NewRetrier(cfg, logger),
		logger:  logger,
	}
}

// rateLimitProbe looks only at the upstream message field to detect the
// rate-limit marker without committing to a full shape.
type rateLimitProbe struct {
	Msg string `json:"msg"`
}

// GetJSON performs a GET with retry and returns the raw JSON body. The
// attempt fails retryably on transport errors, non-2xx statuses and the
// rate-limit marker; a body that does not parse as JSON is terminal and
// returned as a *ParseError.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string) (json.RawMessage, error) {
	var payload json.RawMessage
	err := c.retrier.Do(ctx, url, func() error {
		body, err := c.getBody(ctx, url, headers)
		if err != nil {
			return err
		}

		if !json.Valid(body) {
			return Permanent(&ParseError{Err: fmt.Errorf("invalid JSON near %q", snippet(body))})
		}
		var probe rateLimitProbe
		if json.Unmarshal(body, &probe) == nil && strings.Contains(probe.Msg, RateLimitMarker) {
			return &RateLimitError{Msg: probe.Msg}
		}

		payload = json.RawMessage(body)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// GetText performs a single GET (no retry) and returns the body as text.
// Used for scraped HTML detail pages, where a failed page is terminal.
func (c *Client) GetText(ctx context.Context, url string, headers map[string]string) (string, error) {
	body, err := c.getBody(ctx, url, headers)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) getBody(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	resp, err := c.http.GetWithOptions(ctx, url, interfaces.RequestOptions{Headers: headers})
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode(), Snippet: snippet(body)}
	}
	return body, nil
}

func snippet(body []byte) string {
	s := string(body)
	if len(s) > maxErrorSnippet {
		s = s[:maxErrorSnippet]
	}
	return s
}

// InferStatusCode maps a per-source failure onto an HTTP-like status for
// reporting: upstream statuses pass through, timeouts become 408.
func InferStatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	var apiErr *coreerrors.ExternalAPIError
	if errors.As(err, &apiErr) && apiErr.StatusCode != 0 {
		return apiErr.StatusCode
	}
	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "timeout") {
		return 408
	}
	return 0
}
