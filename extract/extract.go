// Package extract orchestrates resilient course content discovery.
// It combines the availability detector, API listing, and web-scraping
// fallback into one extraction operation with partial-failure semantics,
// caching the merged index per course.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/notioc/canvasdex"
	"golang.org/x/sync/singleflight"
)

// errPrefix labels failures accumulated in the result envelope.
const errPrefix = "Content extraction failed: "

// maxSearchHits bounds SmartSearch output.
const maxSearchHits = 20

// extractState drives the strategy state machine. Transitions are guarded
// by the availability report and the caller's preferred method, keeping the
// merge and partial-failure rules auditable.
type extractState int

const (
	stateCheckCache extractState = iota
	stateProbeAPI
	stateDiscoverAPI
	stateDiscoverWeb
	stateMerge
)

// Ensure Engine implements canvasdex.ContentExtractor at compile time.
var _ canvasdex.ContentExtractor = (*Engine)(nil)

// Engine is the content extraction orchestrator. At most one extraction
// per course ID is in flight at a time: overlapping callers for the same
// course share the computation in progress instead of duplicating it.
// Extractions for different courses proceed in parallel.
type Engine struct {
	cache    canvasdex.DiscoveryCache
	detector canvasdex.AvailabilityDetector
	api      canvasdex.Discoverer
	web      canvasdex.Discoverer
	logger   *slog.Logger
	now      func() time.Time

	group singleflight.Group
}

// NewEngine creates an extraction engine. A nil logger discards output.
func NewEngine(cache canvasdex.DiscoveryCache, detector canvasdex.AvailabilityDetector, api, web canvasdex.Discoverer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		cache:    cache,
		detector: detector,
		api:      api,
		web:      web,
		logger:   logger,
		now:      time.Now,
	}
}

// ExtractCourseContent builds (or returns a cached) content index for the
// course. Discovery failures are reported inside the envelope; the only
// errors returned are caller-input errors.
func (e *Engine) ExtractCourseContent(ctx context.Context, courseID string, opts canvasdex.ExtractOptions) (*canvasdex.ExtractionResult, error) {
	if courseID == "" {
		return nil, canvasdex.Errorf(canvasdex.EINVALID, "course ID required")
	}
	switch opts.PreferredMethod {
	case "", canvasdex.MethodAPI, canvasdex.MethodWeb:
	default:
		return nil, canvasdex.Errorf(canvasdex.EINVALID,
			"preferred method must be %q or %q", canvasdex.MethodAPI, canvasdex.MethodWeb)
	}

	v, _, shared := e.group.Do(courseID, func() (any, error) {
		return e.extract(ctx, courseID, opts), nil
	})
	if shared {
		e.logger.Debug("joined in-flight extraction", "course", courseID)
	}
	return v.(*canvasdex.ExtractionResult), nil
}

// extract runs the strategy state machine for one course.
func (e *Engine) extract(ctx context.Context, courseID string, opts canvasdex.ExtractOptions) *canvasdex.ExtractionResult {
	scanID := uuid.NewString()
	logger := e.logger.With("course", courseID, "scan", scanID)
	logger.Info("extraction started",
		"force_refresh", opts.ForceRefresh,
		"preferred", string(opts.PreferredMethod),
	)

	var (
		report  *canvasdex.AvailabilityReport
		apiData *canvasdex.Discovery
		webData *canvasdex.Discovery
		errs    []string
	)

	state := stateCheckCache
	if opts.ForceRefresh {
		state = stateProbeAPI
	}

	for {
		switch state {
		case stateCheckCache:
			if idx, ok := e.cache.Get(courseID); ok {
				logger.Info("cache hit", "age", e.now().Sub(idx.LastScanned))
				return &canvasdex.ExtractionResult{
					Success: true,
					Method:  canvasdex.MethodCached,
					Index:   idx,
				}
			}
			state = stateProbeAPI

		case stateProbeAPI:
			var err error
			report, err = e.detector.Probe(ctx, courseID)
			if err != nil {
				errs = append(errs, errPrefix+"availability probe: "+err.Error())
				state = stateDiscoverWeb
				break
			}
			if opts.PreferredMethod == canvasdex.MethodWeb {
				state = stateDiscoverWeb
				break
			}
			state = stateDiscoverAPI

		case stateDiscoverAPI:
			cats := availableCategories(report)
			if len(cats) == 0 {
				state = stateDiscoverWeb
				break
			}
			var err error
			apiData, err = e.api.Discover(ctx, courseID, cats)
			if err != nil {
				errs = append(errs, errPrefix+"api discovery: "+err.Error())
			}
			if opts.PreferredMethod != canvasdex.MethodAPI && (report.WebFallbackRecommended() || apiData.Empty()) {
				state = stateDiscoverWeb
			} else {
				state = stateMerge
			}

		case stateDiscoverWeb:
			if opts.PreferredMethod == canvasdex.MethodAPI {
				state = stateMerge
				break
			}
			cats := webCategories(report, apiData, opts)
			logger.Info("web fallback invoked", "categories", len(cats))
			var err error
			webData, err = e.web.Discover(ctx, courseID, cats)
			if err != nil {
				errs = append(errs, errPrefix+"web discovery: "+err.Error())
			}
			state = stateMerge

		case stateMerge:
			// Total failure: every avenue failed before producing data.
			if apiData == nil && webData == nil {
				if len(errs) == 0 {
					errs = append(errs, errPrefix+"no discovery avenue produced data")
				}
				logger.Error("extraction failed", "errors", len(errs))
				return &canvasdex.ExtractionResult{Success: false, Errors: errs}
			}

			errs = append(errs, collectErrors(apiData)...)
			errs = append(errs, collectErrors(webData)...)

			idx, method := e.buildIndex(courseID, scanID, report, apiData, webData)
			e.cache.Set(courseID, idx)

			logger.Info("extraction finished",
				"method", string(method),
				"pages", len(idx.Pages),
				"files", len(idx.Files),
				"links", len(idx.Links),
				"errors", len(errs),
			)
			return &canvasdex.ExtractionResult{
				Success: true,
				Method:  method,
				Index:   idx,
				Errors:  errs,
			}
		}
	}
}

// availableCategories returns the categories whose API endpoints are usable.
func availableCategories(report *canvasdex.AvailabilityReport) []canvasdex.EndpointCategory {
	var out []canvasdex.EndpointCategory
	for _, cat := range canvasdex.Categories() {
		if report.Available(cat) {
			out = append(out, cat)
		}
	}
	return out
}

// webCategories returns the categories web discovery should cover: the
// restricted ones, or everything when the API contributed nothing (or was
// skipped by preference).
func webCategories(report *canvasdex.AvailabilityReport, apiData *canvasdex.Discovery, opts canvasdex.ExtractOptions) []canvasdex.EndpointCategory {
	if report == nil || opts.PreferredMethod == canvasdex.MethodWeb || apiData.Empty() {
		return canvasdex.Categories()
	}
	return report.Restricted()
}

func collectErrors(d *canvasdex.Discovery) []string {
	if d == nil {
		return nil
	}
	return d.Errors
}

// buildIndex merges the avenues into one CourseIndex. On duplicates the
// API record wins over the web record.
func (e *Engine) buildIndex(courseID, scanID string, report *canvasdex.AvailabilityReport, apiData, webData *canvasdex.Discovery) (*canvasdex.CourseIndex, canvasdex.DiscoveryMethod) {
	idx := &canvasdex.CourseIndex{
		CourseID:     courseID,
		ScanID:       scanID,
		LastScanned:  e.now(),
		Availability: report,
	}

	seenPages := make(map[string]bool)
	seenFiles := make(map[string]bool)
	seenLinks := make(map[string]bool)
	for _, d := range []*canvasdex.Discovery{apiData, webData} {
		if d == nil {
			continue
		}
		for _, p := range d.Pages {
			if !seenPages[p.ID] {
				seenPages[p.ID] = true
				idx.Pages = append(idx.Pages, p)
			}
		}
		for _, f := range d.Files {
			if !seenFiles[f.ID] {
				seenFiles[f.ID] = true
				idx.Files = append(idx.Files, f)
			}
		}
		for _, l := range d.Links {
			if !seenLinks[l.URL] {
				seenLinks[l.URL] = true
				idx.Links = append(idx.Links, l)
			}
		}
	}

	idx.SearchableContent = buildSearchableContent(idx)
	idx.ContentHash = fmt.Sprintf("%016x", xxhash.Sum64String(idx.SearchableContent))

	method := canvasdex.MethodAPI
	switch {
	case !apiData.Empty() && !webData.Empty():
		method = canvasdex.MethodHybrid
	case !webData.Empty():
		method = canvasdex.MethodWeb
	case apiData == nil:
		// Only the web avenue ran; it found a genuinely empty course.
		method = canvasdex.MethodWeb
	}

	idx.Metadata = canvasdex.IndexMetadata{
		TotalPages:        len(idx.Pages),
		TotalFiles:        len(idx.Files),
		TotalLinks:        len(idx.Links),
		HasRestrictedAPIs: report == nil || report.WebFallbackRecommended(),
		DiscoveryMethod:   method,
	}
	return idx, method
}

// buildSearchableContent flattens titles, bodies, and names into one
// normalized text blob.
func buildSearchableContent(idx *canvasdex.CourseIndex) string {
	var b strings.Builder
	for _, p := range idx.Pages {
		b.WriteString(p.Title)
		b.WriteByte('\n')
		b.WriteString(p.Body)
		b.WriteByte('\n')
	}
	for _, f := range idx.Files {
		b.WriteString(f.Name)
		b.WriteByte('\n')
	}
	for _, l := range idx.Links {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return strings.ToLower(strings.TrimSpace(b.String()))
}

// SmartSearch ranks the course's discovered content against a free-text
// query, extracting the course first if no fresh index is cached.
func (e *Engine) SmartSearch(ctx context.Context, courseID, query string) ([]canvasdex.SearchHit, error) {
	if courseID == "" {
		return nil, canvasdex.Errorf(canvasdex.EINVALID, "course ID required")
	}
	if strings.TrimSpace(query) == "" {
		return nil, canvasdex.Errorf(canvasdex.EINVALID, "search query required")
	}

	idx, err := e.indexFor(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var hits []canvasdex.SearchHit
	for _, p := range idx.Pages {
		score := canvasdex.Score(query, p.Title)
		if s := canvasdex.Score(query, p.Body); s > score {
			score = s
		}
		if score >= canvasdex.MatchThreshold {
			hits = append(hits, canvasdex.SearchHit{Kind: "page", ID: p.ID, Title: p.Title, URL: p.URL, Score: score})
		}
	}
	for _, f := range idx.Files {
		if score := canvasdex.Score(query, f.Name); score >= canvasdex.MatchThreshold {
			hits = append(hits, canvasdex.SearchHit{Kind: "file", ID: f.ID, Title: f.Name, URL: f.URL, Score: score})
		}
	}
	for _, l := range idx.Links {
		if score := canvasdex.Score(query, l.Text); score >= canvasdex.MatchThreshold {
			hits = append(hits, canvasdex.SearchHit{Kind: "link", Title: l.Text, URL: l.URL, Score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > maxSearchHits {
		hits = hits[:maxSearchHits]
	}
	return hits, nil
}

// ContentByFileID looks up a discovered file record by identifier,
// extracting the course first if no fresh index is cached.
// Returns ENOTFOUND when the file is not in the course's index.
func (e *Engine) ContentByFileID(ctx context.Context, courseID, fileID string) (*canvasdex.File, error) {
	if courseID == "" {
		return nil, canvasdex.Errorf(canvasdex.EINVALID, "course ID required")
	}
	if fileID == "" {
		return nil, canvasdex.Errorf(canvasdex.EINVALID, "file ID required")
	}

	idx, err := e.indexFor(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return idx.FileByID(fileID)
}

// ClearCourseCache drops the cached index for one course.
func (e *Engine) ClearCourseCache(courseID string) {
	e.cache.Clear(courseID)
	e.logger.Info("course cache cleared", "course", courseID)
}

// Stats reports aggregate extraction counters across cached courses.
func (e *Engine) Stats() canvasdex.ExtractionStats {
	stats := canvasdex.ExtractionStats{}
	for _, idx := range e.cache.Indexes() {
		stats.CachedCourses++
		stats.TotalPages += len(idx.Pages)
		stats.TotalFiles += len(idx.Files)
		stats.TotalLinks += len(idx.Links)
	}
	return stats
}

// indexFor returns the cached index or runs a fresh extraction.
func (e *Engine) indexFor(ctx context.Context, courseID string) (*canvasdex.CourseIndex, error) {
	if idx, ok := e.cache.Get(courseID); ok {
		return idx, nil
	}
	res, err := e.ExtractCourseContent(ctx, courseID, canvasdex.ExtractOptions{})
	if err != nil {
		return nil, err
	}
	if !res.Success || res.Index == nil {
		return nil, canvasdex.Errorf(canvasdex.EUNAVAILABLE,
			"course %s content unavailable: %s", courseID, strings.Join(res.Errors, "; "))
	}
	return res.Index, nil
}
