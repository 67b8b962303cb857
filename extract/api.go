package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/notioc/canvasdex"
	"golang.org/x/sync/errgroup"
)

// DefaultListConcurrency is the number of categories listed in parallel.
const DefaultListConcurrency = 4

// Ensure APIDiscoverer implements canvasdex.Discoverer at compile time.
var _ canvasdex.Discoverer = (*APIDiscoverer)(nil)

// APIDiscoverer lists course content categories through the REST API.
// Each category is aggregated across pages by the Paginator; a failure in
// one category is recorded and does not abort the others.
type APIDiscoverer struct {
	Paginator *Paginator
	Converter canvasdex.Converter

	// Concurrency bounds parallel category listings.
	// Defaults to DefaultListConcurrency.
	Concurrency int
}

// Discover gathers the given categories for a course. It returns an error
// only when every requested category failed before producing data.
func (d *APIDiscoverer) Discover(ctx context.Context, courseID string, categories []canvasdex.EndpointCategory) (*canvasdex.Discovery, error) {
	if courseID == "" {
		return nil, canvasdex.Errorf(canvasdex.EINVALID, "course ID required")
	}
	if len(categories) == 0 {
		return &canvasdex.Discovery{}, nil
	}

	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultListConcurrency
	}

	disc := &canvasdex.Discovery{}
	failures := 0

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(concurrency)

	for _, cat := range categories {
		g.Go(func() error {
			part, err := d.listCategory(ctx, courseID, cat)
			mu.Lock()
			defer mu.Unlock()
			if part != nil {
				disc.Pages = append(disc.Pages, part.Pages...)
				disc.Files = append(disc.Files, part.Files...)
				disc.Links = append(disc.Links, part.Links...)
				disc.Errors = append(disc.Errors, part.Errors...)
			}
			if err != nil {
				failures++
				disc.Errors = append(disc.Errors, fmt.Sprintf("api listing %s: %v", cat, err))
			}
			return nil
		})
	}
	_ = g.Wait()

	if disc.Empty() && failures == len(categories) {
		return nil, canvasdex.Errorf(canvasdex.EUNAVAILABLE, "API discovery produced no data for course %s", courseID)
	}
	return disc, nil
}

// listCategory fetches one category and maps its payload onto domain
// entities. Partial pages collected before a pagination failure are still
// mapped; the error is reported alongside them.
func (d *APIDiscoverer) listCategory(ctx context.Context, courseID string, cat canvasdex.EndpointCategory) (*canvasdex.Discovery, error) {
	path, query := categoryProbe(courseID, cat)
	switch cat {
	case canvasdex.CategoryPages:
		// Page bodies are omitted from list responses unless asked for.
		query.Add("include[]", "body")
	case canvasdex.CategoryModules:
		query.Add("include[]", "items")
	}

	items, err := d.Paginator.FetchAll(ctx, PageRequest{Path: path, Query: query})

	part := &canvasdex.Discovery{}
	for _, item := range items {
		switch cat {
		case canvasdex.CategoryPages:
			d.mapPage(part, item)
		case canvasdex.CategoryFiles:
			mapFile(part, item)
		default:
			mapLink(part, item, linkSource(cat))
		}
	}
	return part, err
}

// apiPage mirrors the fields used from the Canvas pages payload.
type apiPage struct {
	URL     string `json:"url"` // slug
	Title   string `json:"title"`
	Body    string `json:"body"` // HTML
	HTMLURL string `json:"html_url"`
}

func (d *APIDiscoverer) mapPage(disc *canvasdex.Discovery, raw json.RawMessage) {
	var p apiPage
	if err := json.Unmarshal(raw, &p); err != nil {
		disc.Errors = append(disc.Errors, fmt.Sprintf("malformed page record: %v", err))
		return
	}

	body := p.Body
	if d.Converter != nil {
		if md, err := d.Converter.Convert(p.Body); err == nil {
			body = md
		} else {
			disc.Errors = append(disc.Errors, fmt.Sprintf("convert page %s: %v", p.URL, err))
		}
	}

	disc.Pages = append(disc.Pages, canvasdex.Page{
		ID:     p.URL,
		URL:    p.HTMLURL,
		Title:  p.Title,
		Body:   body,
		Source: canvasdex.MethodAPI,
	})
}

// apiFile mirrors the fields used from the Canvas files payload.
type apiFile struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	URL         string `json:"url"`
	ContentType string `json:"content-type"`
	Size        int64  `json:"size"`
}

func mapFile(disc *canvasdex.Discovery, raw json.RawMessage) {
	var f apiFile
	if err := json.Unmarshal(raw, &f); err != nil {
		disc.Errors = append(disc.Errors, fmt.Sprintf("malformed file record: %v", err))
		return
	}
	disc.Files = append(disc.Files, canvasdex.File{
		ID:          strconv.FormatInt(f.ID, 10),
		Name:        f.DisplayName,
		URL:         f.URL,
		ContentType: f.ContentType,
		Size:        f.Size,
		Source:      canvasdex.MethodAPI,
	})
}

// apiLinked mirrors the title/html_url shape shared by discussions,
// announcements, and assignments. Modules additionally nest items.
type apiLinked struct {
	Title   string `json:"title"`
	Name    string `json:"name"` // assignments use name instead of title
	HTMLURL string `json:"html_url"`
	Items   []struct {
		Title   string `json:"title"`
		HTMLURL string `json:"html_url"`
	} `json:"items"`
}

func mapLink(disc *canvasdex.Discovery, raw json.RawMessage, source string) {
	var l apiLinked
	if err := json.Unmarshal(raw, &l); err != nil {
		disc.Errors = append(disc.Errors, fmt.Sprintf("malformed %s record: %v", source, err))
		return
	}

	title := l.Title
	if title == "" {
		title = l.Name
	}
	if l.HTMLURL != "" {
		disc.Links = append(disc.Links, canvasdex.Link{
			URL:    l.HTMLURL,
			Text:   title,
			Source: source,
		})
	}
	for _, item := range l.Items {
		if item.HTMLURL == "" {
			continue
		}
		disc.Links = append(disc.Links, canvasdex.Link{
			URL:    item.HTMLURL,
			Text:   item.Title,
			Source: source,
		})
	}
}

func linkSource(cat canvasdex.EndpointCategory) string {
	switch cat {
	case canvasdex.CategoryModules:
		return "module"
	case canvasdex.CategoryDiscussions:
		return "discussion"
	case canvasdex.CategoryAssignments:
		return "assignment"
	case canvasdex.CategoryAnnouncements:
		return "announcement"
	}
	return string(cat)
}
