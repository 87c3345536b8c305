package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d denied under the limit", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("request over the limit allowed")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	if !rl.Allow("1.2.3.4") {
		t.Fatal("first key denied")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("second key shares the first key's budget")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)

	rl.Allow("1.2.3.4")
	if rl.Allow("1.2.3.4") {
		t.Fatal("limit not enforced")
	}

	time.Sleep(30 * time.Millisecond)
	if !rl.Allow("1.2.3.4") {
		t.Error("budget not restored after the window")
	}
}

func TestRateLimitMiddleware_Returns429(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	handler := RateLimitMiddleware(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest("GET", "/api/search", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest("GET", "/api/search", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("429 response missing Retry-After")
	}
}

func TestExtractIP_ForwardedFor(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 70.41.3.18, 150.172.238.178")

	if ip := extractIP(r); ip != "203.0.113.9" {
		t.Errorf("extractIP = %q, want first chain entry", ip)
	}
}

func TestExtractIP_RealIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Real-IP", "203.0.113.9")

	if ip := extractIP(r); ip != "203.0.113.9" {
		t.Errorf("extractIP = %q", ip)
	}
}

func TestExtractIP_FallsBackToRemoteAddr(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	if ip := extractIP(r); ip == "" {
		t.Error("extractIP returned empty string")
	}
}
