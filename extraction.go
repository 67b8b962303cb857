package canvasdex

import "context"

// ExtractOptions controls a content extraction run.
type ExtractOptions struct {
	// ForceRefresh bypasses the discovery cache and re-probes availability.
	ForceRefresh bool

	// PreferredMethod forces a single discovery avenue: MethodAPI or
	// MethodWeb. Empty selects the strategy automatically.
	PreferredMethod DiscoveryMethod
}

// ExtractionResult is the envelope returned to callers of content
// extraction. Degraded-service conditions are carried in Errors, never
// raised as faults.
type ExtractionResult struct {
	Success bool            `json:"success"`
	Method  DiscoveryMethod `json:"method,omitempty"`
	Index   *CourseIndex    `json:"index,omitempty"`
	Errors  []string        `json:"errors,omitempty"`
}

// SearchHit is one ranked result from SmartSearch.
type SearchHit struct {
	Kind  string  `json:"kind"` // "page", "file", "link"
	ID    string  `json:"id,omitempty"`
	Title string  `json:"title"`
	URL   string  `json:"url,omitempty"`
	Score float64 `json:"score"`
}

// ExtractionStats reports aggregate counters for observability.
type ExtractionStats struct {
	CachedCourses int `json:"cachedCourses"`
	TotalPages    int `json:"totalPages"`
	TotalFiles    int `json:"totalFiles"`
	TotalLinks    int `json:"totalLinks"`
}

// ContentExtractor is the discovery engine surface consumed by the
// per-entity tool wrappers.
type ContentExtractor interface {
	// ExtractCourseContent builds (or returns a cached) content index for
	// the course. It returns an error only for caller-input problems;
	// discovery failures are reported inside the result envelope.
	ExtractCourseContent(ctx context.Context, courseID string, opts ExtractOptions) (*ExtractionResult, error)

	// SmartSearch ranks the course's discovered content against a free-text
	// query, extracting the course first if no index is cached.
	SmartSearch(ctx context.Context, courseID, query string) ([]SearchHit, error)

	// ContentByFileID looks up a discovered file record by identifier.
	// Returns ENOTFOUND when the file is not in the course's index.
	ContentByFileID(ctx context.Context, courseID, fileID string) (*File, error)

	// ClearCourseCache drops the cached index for one course.
	ClearCourseCache(courseID string)

	// Stats reports aggregate extraction counters.
	Stats() ExtractionStats
}
