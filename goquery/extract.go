// Package goquery extracts file and link references from rendered Canvas
// course HTML. It is the parsing half of web discovery: given one fetched
// surface it finds embedded file identifiers, same-course page URLs worth
// visiting next, and outbound links.
package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/notioc/canvasdex"
)

// Ensure Extractor implements canvasdex.LinkExtractor at compile time.
var _ canvasdex.LinkExtractor = (*Extractor)(nil)

// filePattern matches Canvas file URLs such as /courses/123/files/456
// and /files/456/download.
var filePattern = regexp.MustCompile(`/files/(\d+)`)

// pagePattern matches course page detail URLs such as /courses/123/pages/syllabus.
var pagePattern = regexp.MustCompile(`/courses/\d+/pages/[^/?#]+$`)

// Extractor pulls file and link references out of course HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractRefs parses HTML and returns the file references, outbound links,
// and same-course page URLs found in it. Files are deduplicated by Canvas
// file ID, links and page URLs by resolved URL. Relative URLs are resolved
// against baseURL.
func (e *Extractor) ExtractRefs(html, baseURL string) (*canvasdex.ExtractedRefs, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, canvasdex.Errorf(canvasdex.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, canvasdex.Errorf(canvasdex.EINVALID, "failed to parse HTML: %v", err)
	}

	refs := &canvasdex.ExtractedRefs{
		Title: pageTitle(doc),
	}

	seenFiles := make(map[string]int) // file ID -> index into refs.Files
	seenLinks := make(map[string]bool)
	seenPages := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		text := strings.TrimSpace(sel.Text())

		if id := fileID(resolved); id != "" {
			addFile(refs, seenFiles, canvasdex.File{
				ID:     id,
				Name:   fileName(sel, text),
				URL:    resolved,
				Source: canvasdex.MethodWeb,
			})
			return
		}

		if isSameHost(base, resolved) && pagePattern.MatchString(urlPath(resolved)) {
			if !seenPages[resolved] {
				seenPages[resolved] = true
				refs.PageURLs = append(refs.PageURLs, resolved)
			}
			return
		}

		if !seenLinks[resolved] {
			seenLinks[resolved] = true
			refs.Links = append(refs.Links, canvasdex.Link{
				URL:    resolved,
				Text:   text,
				Source: "page",
			})
		}
	})

	// Embedded images and iframes also reference course files.
	doc.Find("img[src], iframe[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if src == "" || isNonHTTPLink(src) {
			return
		}
		resolved := resolveURL(base, src)
		if resolved == "" {
			return
		}
		if id := fileID(resolved); id != "" {
			alt, _ := sel.Attr("alt")
			addFile(refs, seenFiles, canvasdex.File{
				ID:     id,
				Name:   strings.TrimSpace(alt),
				URL:    resolved,
				Source: canvasdex.MethodWeb,
			})
		}
	})

	return refs, nil
}

// addFile records a file reference, keeping the first occurrence but
// backfilling a name discovered later. A file linked from two pages
// appears once.
func addFile(refs *canvasdex.ExtractedRefs, seen map[string]int, f canvasdex.File) {
	if idx, ok := seen[f.ID]; ok {
		if refs.Files[idx].Name == "" && f.Name != "" {
			refs.Files[idx].Name = f.Name
		}
		return
	}
	seen[f.ID] = len(refs.Files)
	refs.Files = append(refs.Files, f)
}

// fileName prefers Canvas's title attribute (the original filename) over
// the anchor text, which is often "Download" or truncated.
func fileName(sel *goquery.Selection, text string) string {
	if title, ok := sel.Attr("title"); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}
	return text
}

// pageTitle extracts the page title, preferring the first h1 over the
// document title, which Canvas suffixes with the course name.
func pageTitle(doc *goquery.Document) string {
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if idx := strings.Index(title, ":"); idx > 0 {
		title = strings.TrimSpace(title[:idx])
	}
	return title
}

func fileID(rawURL string) string {
	m := filePattern.FindStringSubmatch(urlPath(rawURL))
	if m == nil {
		return ""
	}
	return m[1]
}

func urlPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Path
}

// isNonHTTPLink returns true for hrefs that can't be fetched (javascript:,
// mailto:, tel:, fragments).
func isNonHTTPLink(href string) bool {
	if strings.HasPrefix(href, "#") {
		return true
	}
	lower := strings.ToLower(href)
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// resolveURL resolves href against base and strips fragments.
// Returns "" for unparseable URLs.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}

// isSameHost reports whether rawURL points at the same host as base.
// Subdomains are treated as different hosts.
func isSameHost(base *url.URL, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, base.Host)
}
