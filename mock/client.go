// Package mock provides function-field mock implementations of the
// canvasdex domain interfaces for tests.
package mock

import (
	"context"
	"net/url"

	"github.com/notioc/canvasdex"
)

var _ canvasdex.APIClient = (*APIClient)(nil)

// APIClient is a mock implementation of canvasdex.APIClient.
type APIClient struct {
	CallFn   func(ctx context.Context, method, path string, query url.Values) (*canvasdex.APIResponse, error)
	FollowFn func(ctx context.Context, rawURL string) (*canvasdex.APIResponse, error)
}

func (c *APIClient) Call(ctx context.Context, method, path string, query url.Values) (*canvasdex.APIResponse, error) {
	return c.CallFn(ctx, method, path, query)
}

func (c *APIClient) Follow(ctx context.Context, rawURL string) (*canvasdex.APIResponse, error) {
	return c.FollowFn(ctx, rawURL)
}
