package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/notioc/canvasdex"
)

// Pagination bounds.
const (
	DefaultPerPage  = 50
	DefaultMaxPages = 20
)

// PageRequest describes a paginated Canvas list endpoint.
type PageRequest struct {
	// Path is the API path, e.g. "/courses/123/files".
	Path string

	// Query holds extra query parameters; per_page is managed by the
	// paginator.
	Query url.Values

	// PerPage overrides DefaultPerPage when positive.
	PerPage int
}

// Paginator aggregates multi-page Canvas list responses into one ordered
// sequence. Aggregation ends when the API stops supplying a rel="next"
// link, when a page comes back shorter than the requested size, or when
// the page ceiling is reached; hitting the ceiling is not an error, the
// caller simply receives a possibly-incomplete sequence.
type Paginator struct {
	Client canvasdex.APIClient

	// MaxPages bounds worst-case cost. Defaults to DefaultMaxPages.
	MaxPages int
}

// FetchAll returns the concatenation of all pages as raw JSON items.
// Transient failures (429/5xx) on an individual page are retried with
// bounded backoff by the underlying client; when retries are exhausted
// the items collected so far are returned alongside the error.
func (p *Paginator) FetchAll(ctx context.Context, req PageRequest) ([]json.RawMessage, error) {
	if p.Client == nil {
		return nil, canvasdex.Errorf(canvasdex.EINTERNAL, "paginator requires an API client")
	}
	if req.Path == "" {
		return nil, canvasdex.Errorf(canvasdex.EINVALID, "pagination path required")
	}

	perPage := req.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	maxPages := p.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	query := url.Values{}
	for k, vs := range req.Query {
		query[k] = vs
	}
	query.Set("per_page", strconv.Itoa(perPage))

	var items []json.RawMessage
	next := ""

	for page := 0; page < maxPages; page++ {
		var resp *canvasdex.APIResponse
		var err error
		if page == 0 {
			resp, err = p.Client.Call(ctx, http.MethodGet, req.Path, query)
		} else {
			resp, err = p.Client.Follow(ctx, next)
		}
		if err != nil {
			return items, err
		}
		if !resp.OK() {
			return items, canvasdex.Errorf(canvasdex.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, req.Path)
		}

		var pageItems []json.RawMessage
		if err := json.Unmarshal(resp.Body, &pageItems); err != nil {
			return items, canvasdex.Errorf(canvasdex.EINTERNAL, "malformed page payload for %s: %v", req.Path, err)
		}
		items = append(items, pageItems...)

		// Either end-of-pagination signal suffices: no next link, or a
		// short page.
		if resp.NextPage == "" || len(pageItems) < perPage {
			return items, nil
		}
		next = resp.NextPage
	}

	// Page ceiling reached: stop without error.
	return items, nil
}
