// ABOUTME: Streaming proxy for playlist and segment URLs the browser cannot fetch directly
// ABOUTME: Plain chi route outside Huma; validates the target before fetching it

package handlers

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vodsearch-api/core/interfaces"
)

const proxyTimeout = 15 * time.Second

// ProxyHandler re-serves remote media resources through this origin.
type ProxyHandler struct {
	httpClient interfaces.HTTPClient
	logger     interfaces.Logger
}

// NewProxyHandler creates a new proxy handler
func NewProxyHandler(httpClient interfaces.HTTPClient, logger interfaces.Logger) *ProxyHandler {
	return &ProxyHandler{
		httpClient: httpClient,
		logger:     logger,
	}
}

// RegisterRoutes registers the proxy route on the raw router. The target
// URL arrives percent-encoded as the trailing path segment.
func (h *ProxyHandler) RegisterRoutes(router chi.Router) {
	router.Get("/proxy/{encodedUrl}", h.Proxy)
}

// Proxy handles GET /proxy/{encodedUrl}
func (h *ProxyHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	encoded := chi.URLParam(r, "encodedUrl")
	target, err := url.PathUnescape(encoded)
	if err != nil {
		http.Error(w, `{"error":"malformed encoded url"}`, http.StatusBadRequest)
		return
	}

	if err := validateProxyTarget(target); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), proxyTimeout)
	defer cancel()

	headers := map[string]string{
		"Accept": r.Header.Get("Accept"),
	}
	if ua := r.Header.Get("User-Agent"); ua != "" {
		headers["User-Agent"] = ua
	}

	resp, err := h.httpClient.GetWithOptions(ctx, target, interfaces.RequestOptions{Headers: headers})
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("proxy fetch failed", map[string]interface{}{
				"url":   target,
				"error": err.Error(),
			})
		}
		http.Error(w, `{"error":"upstream fetch failed"}`, http.StatusBadGateway)
		return
	}
	defer resp.Body().Close()

	if ct := resp.Header("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(resp.StatusCode())
	io.Copy(w, resp.Body())
}

// validateProxyTarget rejects non-http targets and loopback hosts so the
// proxy cannot be pointed at the service itself or its neighbors.
func validateProxyTarget(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return errInvalidTarget
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errInvalidTarget
	}
	host := u.Hostname()
	if host == "" {
		return errInvalidTarget
	}
	if strings.EqualFold(host, "localhost") {
		return errForbiddenTarget
	}
	if ip := net.ParseIP(host); ip != nil && (ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified()) {
		return errForbiddenTarget
	}
	return nil
}

type proxyError string

func (e proxyError) Error() string { return string(e) }

const (
	errInvalidTarget   = proxyError("target must be an absolute http or https url")
	errForbiddenTarget = proxyError("target host is not allowed")
)
