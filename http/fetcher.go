package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/notioc/canvasdex"
)

// DefaultFetchTimeout is the default timeout for web page requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements canvasdex.Fetcher at compile time.
var _ canvasdex.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from Canvas course web pages. Canvas
// serves course surfaces server-rendered, so plain HTTP with the bearer
// credential is sufficient; no JavaScript execution is needed.
type Fetcher struct {
	token   string
	client  *http.Client
	timeout time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout sets the timeout for page requests.
// Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) { f.timeout = d }
}

// NewFetcher creates a new web page fetcher authenticated with the
// given bearer token.
func NewFetcher(token string, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		token:   token,
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{Timeout: f.timeout}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. A no-op for the HTTP fetcher since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
