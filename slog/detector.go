package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/notioc/canvasdex"
)

// Ensure LoggingDetector implements canvasdex.AvailabilityDetector.
var _ canvasdex.AvailabilityDetector = (*LoggingDetector)(nil)

// LoggingDetector wraps an AvailabilityDetector with probe logging.
type LoggingDetector struct {
	next   canvasdex.AvailabilityDetector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next canvasdex.AvailabilityDetector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// Probe delegates to the wrapped detector and logs the verdict summary.
func (d *LoggingDetector) Probe(ctx context.Context, courseID string) (report *canvasdex.AvailabilityReport, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"course", courseID,
			"duration", time.Since(begin),
			"err", err,
		}
		if report != nil {
			attrs = append(attrs,
				"restricted", report.RestrictedCount(),
				"fallback_recommended", report.WebFallbackRecommended(),
			)
		}
		d.logger.Info("availability probe", attrs...)
	}(time.Now())
	return d.next.Probe(ctx, courseID)
}
