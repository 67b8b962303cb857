package mock

import (
	"context"

	"github.com/notioc/canvasdex"
)

var _ canvasdex.Discoverer = (*Discoverer)(nil)

// Discoverer is a mock implementation of canvasdex.Discoverer.
type Discoverer struct {
	DiscoverFn func(ctx context.Context, courseID string, categories []canvasdex.EndpointCategory) (*canvasdex.Discovery, error)
}

func (d *Discoverer) Discover(ctx context.Context, courseID string, categories []canvasdex.EndpointCategory) (*canvasdex.Discovery, error) {
	return d.DiscoverFn(ctx, courseID, categories)
}

var _ canvasdex.AvailabilityDetector = (*AvailabilityDetector)(nil)

// AvailabilityDetector is a mock implementation of canvasdex.AvailabilityDetector.
type AvailabilityDetector struct {
	ProbeFn func(ctx context.Context, courseID string) (*canvasdex.AvailabilityReport, error)
}

func (d *AvailabilityDetector) Probe(ctx context.Context, courseID string) (*canvasdex.AvailabilityReport, error) {
	return d.ProbeFn(ctx, courseID)
}

var _ canvasdex.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of canvasdex.LinkExtractor.
type LinkExtractor struct {
	ExtractRefsFn func(html, baseURL string) (*canvasdex.ExtractedRefs, error)
}

func (e *LinkExtractor) ExtractRefs(html, baseURL string) (*canvasdex.ExtractedRefs, error) {
	return e.ExtractRefsFn(html, baseURL)
}

var _ canvasdex.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of canvasdex.PageExtractor.
type PageExtractor struct {
	ExtractFn func(html string) (*canvasdex.PageContent, error)
}

func (e *PageExtractor) Extract(html string) (*canvasdex.PageContent, error) {
	return e.ExtractFn(html)
}

var _ canvasdex.Converter = (*Converter)(nil)

// Converter is a mock implementation of canvasdex.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ canvasdex.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of canvasdex.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
