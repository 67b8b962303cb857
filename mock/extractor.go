package mock

import (
	"context"

	"github.com/notioc/canvasdex"
)

var _ canvasdex.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of canvasdex.ContentExtractor.
type ContentExtractor struct {
	ExtractCourseContentFn func(ctx context.Context, courseID string, opts canvasdex.ExtractOptions) (*canvasdex.ExtractionResult, error)
	SmartSearchFn          func(ctx context.Context, courseID, query string) ([]canvasdex.SearchHit, error)
	ContentByFileIDFn      func(ctx context.Context, courseID, fileID string) (*canvasdex.File, error)
	ClearCourseCacheFn     func(courseID string)
	StatsFn                func() canvasdex.ExtractionStats
}

func (e *ContentExtractor) ExtractCourseContent(ctx context.Context, courseID string, opts canvasdex.ExtractOptions) (*canvasdex.ExtractionResult, error) {
	return e.ExtractCourseContentFn(ctx, courseID, opts)
}

func (e *ContentExtractor) SmartSearch(ctx context.Context, courseID, query string) ([]canvasdex.SearchHit, error) {
	return e.SmartSearchFn(ctx, courseID, query)
}

func (e *ContentExtractor) ContentByFileID(ctx context.Context, courseID, fileID string) (*canvasdex.File, error) {
	return e.ContentByFileIDFn(ctx, courseID, fileID)
}

func (e *ContentExtractor) ClearCourseCache(courseID string) {
	if e.ClearCourseCacheFn != nil {
		e.ClearCourseCacheFn(courseID)
	}
}

func (e *ContentExtractor) Stats() canvasdex.ExtractionStats {
	if e.StatsFn == nil {
		return canvasdex.ExtractionStats{}
	}
	return e.StatsFn()
}
