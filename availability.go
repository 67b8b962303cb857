package canvasdex

import "context"

// EndpointCategory identifies a probeable Canvas content category.
type EndpointCategory string

// Content categories probed for every course.
const (
	CategoryPages         EndpointCategory = "pages"
	CategoryFiles         EndpointCategory = "files"
	CategoryDiscussions   EndpointCategory = "discussions"
	CategoryModules       EndpointCategory = "modules"
	CategoryAssignments   EndpointCategory = "assignments"
	CategoryAnnouncements EndpointCategory = "announcements"
)

// Categories returns all probeable categories in stable order.
func Categories() []EndpointCategory {
	return []EndpointCategory{
		CategoryPages,
		CategoryFiles,
		CategoryDiscussions,
		CategoryModules,
		CategoryAssignments,
		CategoryAnnouncements,
	}
}

// Verdict records the availability of one endpoint category.
type Verdict struct {
	Available bool   `json:"available"`
	Status    int    `json:"status,omitempty"` // HTTP status of the probe; 0 when the call never completed
	Reason    string `json:"reason,omitempty"` // populated when restricted
}

// AvailabilityReport maps every known endpoint category to exactly one
// verdict. A category the probe could not reach is marked restricted,
// never omitted.
type AvailabilityReport struct {
	CourseID string                       `json:"courseId"`
	Verdicts map[EndpointCategory]Verdict `json:"verdicts"`
}

// Available reports whether the category's API endpoint is usable.
// Unknown categories report false.
func (r *AvailabilityReport) Available(cat EndpointCategory) bool {
	if r == nil {
		return false
	}
	return r.Verdicts[cat].Available
}

// Restricted returns the restricted categories in stable order.
func (r *AvailabilityReport) Restricted() []EndpointCategory {
	if r == nil {
		return Categories()
	}
	var out []EndpointCategory
	for _, cat := range Categories() {
		if !r.Verdicts[cat].Available {
			out = append(out, cat)
		}
	}
	return out
}

// RestrictedCount returns the number of restricted categories.
func (r *AvailabilityReport) RestrictedCount() int {
	return len(r.Restricted())
}

// WebFallbackRecommended reports whether web discovery should supplement
// the API. Any restricted category is enough to recommend it.
func (r *AvailabilityReport) WebFallbackRecommended() bool {
	return r.RestrictedCount() > 0
}

// AvailabilityDetector probes a course's API endpoint categories and
// classifies each as available or restricted. Probes have no side effects
// beyond the network calls themselves.
type AvailabilityDetector interface {
	Probe(ctx context.Context, courseID string) (*AvailabilityReport, error)
}
