package extract

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/notioc/canvasdex"
)

// CourseService lists and resolves the credential's courses through the
// REST API. It is the wrapper the course tools build on: free-text course
// names are resolved to IDs with the fuzzy matcher.
type CourseService struct {
	Paginator *Paginator
}

// apiCourse mirrors the fields used from the Canvas courses payload.
type apiCourse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CourseCode    string `json:"course_code"`
	WorkflowState string `json:"workflow_state"`
}

// ListCourses returns the credential's active courses.
func (s *CourseService) ListCourses(ctx context.Context) ([]canvasdex.Course, error) {
	items, err := s.Paginator.FetchAll(ctx, PageRequest{
		Path:  "/courses",
		Query: url.Values{"enrollment_state": {"active"}},
	})
	if err != nil && len(items) == 0 {
		return nil, err
	}

	courses := make([]canvasdex.Course, 0, len(items))
	for _, item := range items {
		var c apiCourse
		if err := json.Unmarshal(item, &c); err != nil {
			return nil, canvasdex.Errorf(canvasdex.EINTERNAL, "malformed course record: %v", err)
		}
		courses = append(courses, canvasdex.Course{
			ID:         strconv.FormatInt(c.ID, 10),
			Name:       c.Name,
			CourseCode: c.CourseCode,
			State:      c.WorkflowState,
		})
	}
	return courses, nil
}

// FindCourseByName resolves a free-text course name, nickname, or code to
// a course. Returns ENOTFOUND when nothing clears the match threshold.
func (s *CourseService) FindCourseByName(ctx context.Context, name string) (*canvasdex.Course, error) {
	if name == "" {
		return nil, canvasdex.Errorf(canvasdex.EINVALID, "course name required")
	}

	courses, err := s.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]canvasdex.Candidate, len(courses))
	for i := range courses {
		candidates[i] = &courses[i]
	}

	match, ok := canvasdex.FindBestMatch(name, candidates, []string{"name", "course_code"})
	if !ok {
		return nil, canvasdex.Errorf(canvasdex.ENOTFOUND, "no course matching %q", name)
	}
	return &courses[match.Index], nil
}
