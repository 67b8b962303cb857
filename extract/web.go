package extract

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/notioc/canvasdex"
	"github.com/notioc/canvasdex/bloom"
)

// Web discovery bounds.
const (
	// DefaultWebMaxPages limits how many surfaces one discovery run fetches.
	DefaultWebMaxPages = 25

	// webExpectedURLs sizes the visited-URL Bloom filter.
	webExpectedURLs = 1000
	// webFalsePositiveRate is the acceptable dedup false positive rate.
	webFalsePositiveRate = 0.01
)

// coursePagePattern matches course page detail URLs.
var coursePagePattern = regexp.MustCompile(`/courses/\d+/pages/([^/?#]+)$`)

// Ensure WebDiscoverer implements canvasdex.Discoverer at compile time.
var _ canvasdex.Discoverer = (*WebDiscoverer)(nil)

// WebDiscoverer reconstructs a course's content index from rendered HTML
// when the API path is restricted. It walks the course surfaces reachable
// from the course home (pages, modules, files listings and the page detail
// URLs they reference), extracting titles, bodies, file references, and
// outbound links. Strictly slower and less complete than the API path.
type WebDiscoverer struct {
	// BaseURL is the Canvas instance root, e.g. "https://school.instructure.com".
	BaseURL string

	Fetcher   canvasdex.Fetcher
	Refs      canvasdex.LinkExtractor
	Pages     canvasdex.PageExtractor
	Converter canvasdex.Converter
	Limiter   canvasdex.DomainLimiter

	// MaxPages bounds fetched surfaces. Defaults to DefaultWebMaxPages.
	MaxPages int

	// RetryDelays configures fetch retries. Defaults to DefaultRetryDelays.
	RetryDelays []time.Duration

	// Logger records retry attempts. May be nil.
	Logger *slog.Logger
}

// Discover walks the course's web surfaces for the given categories.
// Individual fetch or parse failures are recorded in the result's Errors
// and do not abort discovery of the remaining surfaces. An error is
// returned only when no surface could be fetched at all.
func (d *WebDiscoverer) Discover(ctx context.Context, courseID string, categories []canvasdex.EndpointCategory) (*canvasdex.Discovery, error) {
	if courseID == "" {
		return nil, canvasdex.Errorf(canvasdex.EINVALID, "course ID required")
	}
	if d.BaseURL == "" {
		return nil, canvasdex.Errorf(canvasdex.EINVALID, "base URL required")
	}

	courseRoot := strings.TrimRight(d.BaseURL, "/") + "/courses/" + courseID
	queue := surfaceURLs(courseRoot, categories)

	maxPages := d.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultWebMaxPages
	}
	delays := d.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	visited := bloom.NewVisited(webExpectedURLs, webFalsePositiveRate)
	disc := &canvasdex.Discovery{}
	seenFiles := make(map[string]bool)
	seenLinks := make(map[string]bool)
	seenPages := make(map[string]bool)
	fetched := 0
	attempted := 0

	for len(queue) > 0 && attempted < maxPages {
		if ctx.Err() != nil {
			disc.Errors = append(disc.Errors, fmt.Sprintf("web discovery interrupted: %v", ctx.Err()))
			break
		}

		surface := queue[0]
		queue = queue[1:]
		if visited.Visit(surface) {
			continue
		}
		attempted++

		if d.Limiter != nil {
			if err := d.Limiter.Wait(ctx, hostOf(surface)); err != nil {
				disc.Errors = append(disc.Errors, fmt.Sprintf("rate limit wait for %s: %v", surface, err))
				continue
			}
		}

		html, err := FetchWithRetryDelays(ctx, surface, d.Fetcher.Fetch, d.Logger, delays)
		if err != nil {
			disc.Errors = append(disc.Errors, fmt.Sprintf("fetch %s: %v", surface, err))
			continue
		}
		fetched++

		refs, err := d.Refs.ExtractRefs(html, surface)
		if err != nil {
			disc.Errors = append(disc.Errors, fmt.Sprintf("parse %s: %v", surface, err))
			continue
		}

		for _, f := range refs.Files {
			if !seenFiles[f.ID] {
				seenFiles[f.ID] = true
				disc.Files = append(disc.Files, f)
			}
		}
		for _, l := range refs.Links {
			if !seenLinks[l.URL] {
				seenLinks[l.URL] = true
				disc.Links = append(disc.Links, l)
			}
		}
		for _, pageURL := range refs.PageURLs {
			if !visited.Seen(pageURL) {
				queue = append(queue, pageURL)
			}
		}

		// Page detail surfaces (and the course home) carry content worth
		// indexing, not just references.
		slug := pageSlug(surface)
		if slug == "" && surface != courseRoot {
			continue
		}
		if slug == "" {
			slug = "home"
		}
		if seenPages[slug] {
			continue
		}
		if page, ok := d.extractPage(surface, slug, html, refs.Title, disc); ok {
			seenPages[slug] = true
			disc.Pages = append(disc.Pages, page)
		}
	}

	if fetched == 0 {
		return nil, canvasdex.Errorf(canvasdex.EUNAVAILABLE,
			"web discovery reached no surfaces for course %s: %s", courseID, strings.Join(disc.Errors, "; "))
	}
	return disc, nil
}

// extractPage pulls the main content out of a fetched surface. Extraction
// failures are recorded but do not discard the surface's references.
func (d *WebDiscoverer) extractPage(surface, slug, html, fallbackTitle string, disc *canvasdex.Discovery) (canvasdex.Page, bool) {
	content, err := d.Pages.Extract(html)
	if err != nil {
		disc.Errors = append(disc.Errors, fmt.Sprintf("extract %s: %v", surface, err))
		return canvasdex.Page{}, false
	}

	body := ""
	if d.Converter != nil {
		body, err = d.Converter.Convert(content.BodyHTML)
		if err != nil {
			disc.Errors = append(disc.Errors, fmt.Sprintf("convert %s: %v", surface, err))
			body = ""
		}
	}

	title := content.Title
	if title == "" {
		title = fallbackTitle
	}

	return canvasdex.Page{
		ID:     slug,
		URL:    surface,
		Title:  title,
		Body:   body,
		Source: canvasdex.MethodWeb,
	}, true
}

// surfaceURLs seeds the walk with the course home plus the listing surface
// for each requested category.
func surfaceURLs(courseRoot string, categories []canvasdex.EndpointCategory) []string {
	urls := []string{courseRoot}
	for _, cat := range categories {
		switch cat {
		case canvasdex.CategoryPages:
			urls = append(urls, courseRoot+"/pages")
		case canvasdex.CategoryFiles:
			urls = append(urls, courseRoot+"/files")
		case canvasdex.CategoryModules:
			urls = append(urls, courseRoot+"/modules")
		case canvasdex.CategoryDiscussions:
			urls = append(urls, courseRoot+"/discussion_topics")
		case canvasdex.CategoryAnnouncements:
			urls = append(urls, courseRoot+"/announcements")
		case canvasdex.CategoryAssignments:
			urls = append(urls, courseRoot+"/assignments")
		}
	}
	return urls
}

func pageSlug(rawURL string) string {
	m := coursePagePattern.FindStringSubmatch(pathOf(rawURL))
	if m == nil {
		return ""
	}
	return m[1]
}

func pathOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Path
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
