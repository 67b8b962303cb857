// Package trafilatura extracts main content from Canvas course HTML,
// stripping the surrounding navigation, sidebar, and footer chrome.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/notioc/canvasdex"
	"golang.org/x/net/html"
)

// Ensure Extractor implements canvasdex.PageExtractor at compile time.
var _ canvasdex.PageExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the main content region of a
// rendered course page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page's main content.
func (e *Extractor) Extract(rawHTML string) (*canvasdex.PageContent, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, canvasdex.Errorf(canvasdex.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var bodyHTML string
	if result.ContentNode != nil {
		bodyHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &canvasdex.PageContent{
		Title:    result.Metadata.Title,
		BodyHTML: bodyHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
