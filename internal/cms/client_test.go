package cms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_Normalizes(t *testing.T) {
	u, err := parseBaseURL("cms.example.com:1337")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "cms.example.com:1337" {
		t.Fatalf("parseBaseURL = %q, want http://cms.example.com:1337", u.String())
	}

	u, err = parseBaseURL("https://example.com/cms/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/cms" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("   "); err == nil {
		t.Fatalf("parseBaseURL blank returned nil error, want error")
	}
}

func TestNewClient_RequiresToken(t *testing.T) {
	if _, err := NewClient("http://example.com", " "); err == nil {
		t.Fatalf("NewClient returned nil error, want error for empty token")
	}
}

func TestClient_PingAndListFiles(t *testing.T) {
	t.Parallel()

	var gotAuth, gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/ping":
			_ = json.NewEncoder(w).Encode(PingResponse{
				Message:   "pong",
				Timestamp: "2025-06-01T12:00:00.000Z",
				Status:    200,
			})
		case "/upload/files":
			_, _ = w.Write([]byte(`[
				{"id": 7, "name": "hero.jpg", "url": "/uploads/hero.jpg",
				 "formats": {"large": {"url": "/uploads/large_hero.jpg", "width": 1000}}}
			]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "secret")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	res, err := c.Ping(ctx)
	if err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
	if !res.OK() || res.Message != "pong" {
		t.Fatalf("Ping = %#v, want status 200 pong", res)
	}
	if res.Timestamp.Year() != 2025 {
		t.Fatalf("Ping timestamp = %v, want parsed 2025 timestamp", res.Timestamp)
	}

	files, err := c.ListFiles(ctx)
	if err != nil {
		t.Fatalf("ListFiles returned error: %v", err)
	}
	if len(files) != 1 || files[0].ID != 7 {
		t.Fatalf("ListFiles = %#v, want 1 file id=7", files)
	}
	large, ok := files[0].LargeURL()
	if !ok || large != "/uploads/large_hero.jpg" {
		t.Fatalf("LargeURL = %q, %v", large, ok)
	}
	if got := c.ResolveURL(large); got != server.URL+"/uploads/large_hero.jpg" {
		t.Fatalf("ResolveURL = %q, want absolute url on test server", got)
	}

	if gotAuth != "Bearer secret" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}
	if !strings.HasPrefix(gotUserAgent, "lantern/") {
		t.Fatalf("User-Agent = %q, want lantern/*", gotUserAgent)
	}
}

func TestClient_PingReportsBodyStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(PingResponse{Message: "warming", Status: 503})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "t")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	res, err := c.Ping(context.Background())
	if err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
	if res.OK() || res.StatusCode != 503 {
		t.Fatalf("Ping = %#v, want body status 503", res)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/ping":
			http.Error(w, "nope", http.StatusInternalServerError)
		case "/upload/files":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "t")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	res, err := c.Ping(context.Background())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("Ping error = %v, want StatusError 500", err)
	}
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("Ping StatusCode = %d, want 500", res.StatusCode)
	}

	_, err = c.ListFiles(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("ListFiles error = %v, want decode response error", err)
	}
}

func TestClient_ResolveURLKeepsAbsolute(t *testing.T) {
	c, err := NewClient("http://cms.local", "t")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	abs := "https://cdn.example.com/large_hero.jpg"
	if got := c.ResolveURL(abs); got != abs {
		t.Fatalf("ResolveURL = %q, want %q", got, abs)
	}
	if got := c.ResolveURL(""); got != "" {
		t.Fatalf("ResolveURL empty = %q, want empty", got)
	}
}

func TestFile_LargeURLMissing(t *testing.T) {
	if _, ok := (File{}).LargeURL(); ok {
		t.Fatalf("LargeURL on file without formats should report false")
	}
	f := File{Formats: FileFormats{Large: &ImageFormat{URL: "  "}}}
	if _, ok := f.LargeURL(); ok {
		t.Fatalf("LargeURL with blank url should report false")
	}
}
