package canvasdex

import (
	"context"
	"net/url"
)

// APIResponse is the outcome of a single Canvas REST API call.
type APIResponse struct {
	StatusCode int
	Body       []byte

	// NextPage is the absolute URL from the rel="next" Link header,
	// empty on the last page.
	NextPage string
}

// OK reports whether the response carries a 2xx status.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// APIClient issues authenticated calls against the Canvas REST API.
// Non-2xx statuses are returned in the response, not as errors, so callers
// can classify restricted endpoints.
type APIClient interface {
	// Call issues a request against an API path such as
	// "/courses/123/pages". The path is resolved under the client's base URL.
	Call(ctx context.Context, method, path string, query url.Values) (*APIResponse, error)

	// Follow issues a GET against an absolute URL, typically one taken
	// from a pagination Link header.
	Follow(ctx context.Context, rawURL string) (*APIResponse, error)
}

// Fetcher retrieves rendered HTML from course web (non-API) pages.
type Fetcher interface {
	// Fetch returns the HTML served at the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any underlying resources.
	Close() error
}

// PageContent holds the main content extracted from an HTML page.
type PageContent struct {
	// Title is the page title extracted from metadata.
	Title string

	// BodyHTML is the main content with boilerplate removed.
	BodyHTML string
}

// PageExtractor extracts main content from HTML pages, removing boilerplate.
type PageExtractor interface {
	Extract(html string) (*PageContent, error)
}

// Converter transforms HTML into Markdown for searchable text.
type Converter interface {
	Convert(html string) (string, error)
}

// ExtractedRefs holds file and link references pulled from one HTML surface.
type ExtractedRefs struct {
	Title string

	// Files referenced from the page, deduplicated by Canvas file ID.
	Files []File

	// Links found on the page, deduplicated by URL.
	Links []Link

	// PageURLs are same-course page detail URLs worth visiting next.
	PageURLs []string
}

// LinkExtractor pulls file and link references out of course HTML.
type LinkExtractor interface {
	ExtractRefs(html, baseURL string) (*ExtractedRefs, error)
}

// DomainLimiter provides per-domain rate limiting for web discovery.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// Discovery holds the content gathered by one discovery avenue. Per-item
// failures are recorded in Errors without aborting the rest of the run.
type Discovery struct {
	Pages  []Page
	Files  []File
	Links  []Link
	Errors []string
}

// Empty reports whether the avenue contributed no usable data.
func (d *Discovery) Empty() bool {
	return d == nil || (len(d.Pages) == 0 && len(d.Files) == 0 && len(d.Links) == 0)
}

// Discoverer gathers course content for the given endpoint categories.
// Implementations return an error only when the avenue failed before
// producing any data; partial results carry their failures in
// Discovery.Errors.
type Discoverer interface {
	Discover(ctx context.Context, courseID string, categories []EndpointCategory) (*Discovery, error)
}
