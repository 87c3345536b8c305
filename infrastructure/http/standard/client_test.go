package standard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vodsearch-api/core/interfaces"
)

func TestGet_ReturnsStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"ok":false}`))
	}))
	defer srv.Close()

	client := NewStandardHTTPClient(5 * time.Second)
	resp, err := client.Get(context.Background(), srv.URL)

	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusTeapot {
		t.Errorf("status = %d", resp.StatusCode())
	}
	body, _ := io.ReadAll(resp.Body())
	if string(body) != `{"ok":false}` {
		t.Errorf("body = %q", body)
	}
	if resp.Header("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", resp.Header("Content-Type"))
	}
}

func TestGet_SetsDefaultUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
	}))
	defer srv.Close()

	client := NewStandardHTTPClient(5 * time.Second)
	resp, err := client.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	resp.Body().Close()

	if gotUA == "" || gotUA == "Go-http-client/1.1" {
		t.Errorf("User-Agent = %q, want a browser identity", gotUA)
	}
}

func TestGetWithOptions_OverridesHeaders(t *testing.T) {
	var gotUA, gotReferer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		gotReferer = r.Referer()
	}))
	defer srv.Close()

	client := NewStandardHTTPClient(5 * time.Second)
	resp, err := client.GetWithOptions(context.Background(), srv.URL, interfaces.RequestOptions{
		Headers: map[string]string{
			"User-Agent": "custom-agent",
			"Referer":    "https://movie.douban.com/",
		},
	})
	if err != nil {
		t.Fatalf("GetWithOptions: %v", err)
	}
	resp.Body().Close()

	if gotUA != "custom-agent" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotReferer != "https://movie.douban.com/" {
		t.Errorf("Referer = %q", gotReferer)
	}
}

func TestGet_HonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewStandardHTTPClient(5 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := client.Get(ctx, srv.URL); err == nil {
		t.Error("Get should fail when the context expires")
	}
}
