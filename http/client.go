// Package http provides HTTP-based implementations of the canvasdex
// boundary interfaces: an authenticated Canvas REST API client and a
// fetcher for rendered (non-API) course pages.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/notioc/canvasdex"
)

// DefaultTimeout is the default timeout for a single API request.
const DefaultTimeout = 15 * time.Second

// DefaultRetryDelays returns the backoff delays applied to transient
// failures (429 and 5xx): 500ms, 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{500 * time.Millisecond, 1 * time.Second, 2 * time.Second}
}

// Ensure Client implements canvasdex.APIClient at compile time.
var _ canvasdex.APIClient = (*Client)(nil)

// Client issues authenticated calls against a Canvas instance's REST API.
// Transient failures are retried with bounded backoff; non-2xx statuses
// are returned to the caller, not converted to errors, so restricted
// endpoints can be classified.
type Client struct {
	baseURL     string
	token       string
	client      *http.Client
	timeout     time.Duration
	retryDelays []time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithRetryDelays sets the backoff delays for transient failures.
// Pass an empty slice to disable retries. Useful for tests.
func WithRetryDelays(delays []time.Duration) ClientOption {
	return func(c *Client) { c.retryDelays = delays }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a Canvas API client for the given instance base URL
// (e.g. "https://school.instructure.com") and bearer token.
func NewClient(baseURL, token string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, canvasdex.Errorf(canvasdex.EINVALID, "base URL required")
	}
	if token == "" {
		return nil, canvasdex.Errorf(canvasdex.EINVALID, "access token required")
	}

	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		token:       token,
		timeout:     DefaultTimeout,
		retryDelays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	return c, nil
}

// Call issues a request against an API path such as "/courses/123/pages",
// resolved under the client's base URL and API root.
func (c *Client) Call(ctx context.Context, method, path string, query url.Values) (*canvasdex.APIResponse, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + "/api/v1" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return c.do(ctx, method, u)
}

// Follow issues a GET against an absolute URL, typically a pagination
// URL from a Link header.
func (c *Client) Follow(ctx context.Context, rawURL string) (*canvasdex.APIResponse, error) {
	if rawURL == "" {
		return nil, canvasdex.Errorf(canvasdex.EINVALID, "pagination URL required")
	}
	return c.do(ctx, http.MethodGet, rawURL)
}

// maxRetryAfter caps how long a server-supplied Retry-After hint is honored.
const maxRetryAfter = 30 * time.Second

func (c *Client) do(ctx context.Context, method, rawURL string) (*canvasdex.APIResponse, error) {
	maxAttempts := len(c.retryDelays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, hint, err := c.once(ctx, method, rawURL)
		if err == nil && !retryableStatus(resp.StatusCode) {
			return resp, nil
		}

		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
		}

		// Last attempt: hand a throttled/5xx response back to the caller
		// so it can classify the status itself.
		if attempt == maxAttempts-1 {
			if err == nil {
				return resp, nil
			}
			break
		}

		delay := c.retryDelays[attempt]
		if hint > 0 && hint <= maxRetryAfter {
			delay = hint
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, lastErr
}

// once performs a single request attempt. The returned duration is the
// server's Retry-After hint, zero when absent.
func (c *Client) once(ctx context.Context, method, rawURL string) (*canvasdex.APIResponse, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	out := &canvasdex.APIResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
		NextPage:   parseNextLink(resp.Header.Get("Link")),
	}
	return out, parseRetryAfter(resp.Header.Get("Retry-After")), nil
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || (code >= 500 && code <= 599)
}

// parseNextLink extracts the rel="next" URL from a Canvas pagination
// Link header, e.g. `<https://x/api/v1/...?page=2>; rel="next"`.
func parseNextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start >= 0 && end > start {
			return part[start+1 : end]
		}
	}
	return ""
}

// parseRetryAfter parses a Retry-After header given in seconds.
// Returns 0 when missing or unparseable.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
