// Package slog provides logging decorators around the canvasdex domain
// interfaces using the standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/notioc/canvasdex"
)

// Ensure LoggingExtractor implements canvasdex.ContentExtractor.
var _ canvasdex.ContentExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a ContentExtractor with operation-level logging.
type LoggingExtractor struct {
	next   canvasdex.ContentExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next canvasdex.ContentExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractCourseContent delegates and logs the outcome envelope.
func (e *LoggingExtractor) ExtractCourseContent(ctx context.Context, courseID string, opts canvasdex.ExtractOptions) (res *canvasdex.ExtractionResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"course", courseID,
			"duration", time.Since(begin),
			"err", err,
		}
		if res != nil {
			attrs = append(attrs,
				"success", res.Success,
				"method", string(res.Method),
				"errors", len(res.Errors),
			)
		}
		e.logger.Info("extract course content", attrs...)
	}(time.Now())
	return e.next.ExtractCourseContent(ctx, courseID, opts)
}

// SmartSearch delegates and logs the hit count.
func (e *LoggingExtractor) SmartSearch(ctx context.Context, courseID, query string) (hits []canvasdex.SearchHit, err error) {
	defer func(begin time.Time) {
		e.logger.Info("smart search",
			"course", courseID,
			"query", query,
			"hits", len(hits),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.SmartSearch(ctx, courseID, query)
}

// ContentByFileID delegates and logs the lookup.
func (e *LoggingExtractor) ContentByFileID(ctx context.Context, courseID, fileID string) (file *canvasdex.File, err error) {
	defer func(begin time.Time) {
		e.logger.Info("content by file id",
			"course", courseID,
			"file", fileID,
			"found", file != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ContentByFileID(ctx, courseID, fileID)
}

// ClearCourseCache delegates and logs the action.
func (e *LoggingExtractor) ClearCourseCache(courseID string) {
	e.logger.Info("clear course cache", "course", courseID)
	e.next.ClearCourseCache(courseID)
}

// Stats delegates without logging; it is itself an observability call.
func (e *LoggingExtractor) Stats() canvasdex.ExtractionStats {
	return e.next.Stats()
}
