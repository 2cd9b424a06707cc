package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Pinger issues a single health check against the CMS.
type Pinger interface {
	Ping(ctx context.Context) (PingResult, error)
}

// FileLister fetches the CMS media library listing.
type FileLister interface {
	ListFiles(ctx context.Context) ([]File, error)
}

// Ensure Client implements both interfaces at compile time.
var (
	_ Pinger     = (*Client)(nil)
	_ FileLister = (*Client)(nil)
)

// StatusError reports a non-success HTTP status from the CMS.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}

// Client talks to the CMS HTTP API.
type Client struct {
	baseURL   *url.URL
	token     string
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "lantern/0.1"
	requestTimeout   = 30 * time.Second

	pingPath  = "/api/ping"
	filesPath = "/upload/files"
)

// NewClient builds a Client for the CMS at baseURL, authenticating every
// request with the bearer token.
func NewClient(baseURL, token string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("api token is empty")
	}
	return &Client{
		baseURL: base,
		token:   strings.TrimSpace(token),
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Ping performs one health check. Transport failures and HTTP error statuses
// are returned as errors; the caller still has to check PingResult.OK since
// the backend reports its own status in the body.
func (c *Client) Ping(ctx context.Context) (PingResult, error) {
	if c == nil {
		return PingResult{}, fmt.Errorf("client is nil")
	}
	var payload PingResponse
	code, err := c.do(ctx, http.MethodGet, pingPath, &payload)
	if err != nil {
		return PingResult{StatusCode: code}, err
	}
	result := PingResult{
		StatusCode: payload.Status,
		Message:    payload.Message,
		Timestamp:  parseTime(payload.Timestamp),
	}
	if result.StatusCode == 0 {
		result.StatusCode = code
	}
	return result, nil
}

// ListFiles retrieves the media library listing.
func (c *Client) ListFiles(ctx context.Context) ([]File, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var files []File
	if _, err := c.do(ctx, http.MethodGet, filesPath, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// ResolveURL turns a media URL from the CMS into an absolute URL. Local
// uploads are reported relative to the CMS host.
func (c *Client) ResolveURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if c == nil || trimmed == "" {
		return trimmed
	}
	ref, err := url.Parse(trimmed)
	if err != nil || ref.IsAbs() {
		return trimmed
	}
	return c.baseURL.ResolveReference(ref).String()
}

func (c *Client) do(ctx context.Context, method, path string, dest any) (int, error) {
	reqURL := *c.baseURL
	reqURL.Path = strings.TrimRight(c.baseURL.Path, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return resp.StatusCode, &StatusError{Path: path, Code: resp.StatusCode}
	}
	if dest == nil {
		return resp.StatusCode, nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, errors.New("api url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
