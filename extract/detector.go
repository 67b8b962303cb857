package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/notioc/canvasdex"
	"golang.org/x/sync/errgroup"
)

// DefaultProbeConcurrency is the number of categories probed in parallel.
const DefaultProbeConcurrency = 4

// Ensure Detector implements canvasdex.AvailabilityDetector at compile time.
var _ canvasdex.AvailabilityDetector = (*Detector)(nil)

// Detector probes a fixed set of content-category endpoints for a course
// and classifies each as available or restricted. Probes are lightweight
// (per_page=1) and run independently: one category's failure never aborts
// probing of the others.
type Detector struct {
	Client canvasdex.APIClient

	// Concurrency bounds parallel probes. Defaults to DefaultProbeConcurrency.
	Concurrency int
}

// Probe classifies every known endpoint category for the course.
// The returned report has exactly one verdict per category.
func (d *Detector) Probe(ctx context.Context, courseID string) (*canvasdex.AvailabilityReport, error) {
	if courseID == "" {
		return nil, canvasdex.Errorf(canvasdex.EINVALID, "course ID required")
	}

	report := &canvasdex.AvailabilityReport{
		CourseID: courseID,
		Verdicts: make(map[canvasdex.EndpointCategory]canvasdex.Verdict),
	}

	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultProbeConcurrency
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(concurrency)

	for _, cat := range canvasdex.Categories() {
		g.Go(func() error {
			verdict := d.probeCategory(ctx, courseID, cat)
			mu.Lock()
			report.Verdicts[cat] = verdict
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; verdicts carry failures

	return report, nil
}

func (d *Detector) probeCategory(ctx context.Context, courseID string, cat canvasdex.EndpointCategory) canvasdex.Verdict {
	path, query := categoryProbe(courseID, cat)
	query.Set("per_page", "1")

	resp, err := d.Client.Call(ctx, http.MethodGet, path, query)
	if err != nil {
		return canvasdex.Verdict{
			Available: false,
			Reason:    fmt.Sprintf("probe failed: %v", err),
		}
	}

	switch {
	case resp.OK():
		return canvasdex.Verdict{Available: true, Status: resp.StatusCode}
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusNotFound:
		return canvasdex.Verdict{
			Available: false,
			Status:    resp.StatusCode,
			Reason:    http.StatusText(resp.StatusCode),
		}
	default:
		return canvasdex.Verdict{
			Available: false,
			Status:    resp.StatusCode,
			Reason:    fmt.Sprintf("unexpected HTTP %d", resp.StatusCode),
		}
	}
}

// categoryProbe maps a category to its API endpoint for the course.
// Announcements share the discussion topics endpoint behind a filter.
func categoryProbe(courseID string, cat canvasdex.EndpointCategory) (string, url.Values) {
	base := "/courses/" + courseID
	query := url.Values{}
	switch cat {
	case canvasdex.CategoryPages:
		return base + "/pages", query
	case canvasdex.CategoryFiles:
		return base + "/files", query
	case canvasdex.CategoryDiscussions:
		return base + "/discussion_topics", query
	case canvasdex.CategoryModules:
		return base + "/modules", query
	case canvasdex.CategoryAssignments:
		return base + "/assignments", query
	case canvasdex.CategoryAnnouncements:
		query.Set("only_announcements", "true")
		return base + "/discussion_topics", query
	}
	return base, query
}
