package extract_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/notioc/canvasdex"
	"github.com/notioc/canvasdex/extract"
	"github.com/notioc/canvasdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coursesClient() *mock.APIClient {
	return &mock.APIClient{
		CallFn: func(ctx context.Context, method, path string, query url.Values) (*canvasdex.APIResponse, error) {
			if path != "/courses" || query.Get("enrollment_state") != "active" {
				return &canvasdex.APIResponse{StatusCode: http.StatusNotFound}, nil
			}
			return &canvasdex.APIResponse{
				StatusCode: http.StatusOK,
				Body: []byte(`[
					{"id":101,"name":"Introduction to Computer Science","course_code":"CS 101","workflow_state":"available"},
					{"id":202,"name":"Organic Chemistry II","course_code":"CHEM-232","workflow_state":"available"}
				]`),
			}, nil
		},
	}
}

func TestCourseService_ListCourses(t *testing.T) {
	t.Parallel()

	s := &extract.CourseService{Paginator: &extract.Paginator{Client: coursesClient()}}

	courses, err := s.ListCourses(context.Background())
	require.NoError(t, err)

	require.Len(t, courses, 2)
	assert.Equal(t, "101", courses[0].ID)
	assert.Equal(t, "Introduction to Computer Science", courses[0].Name)
	assert.Equal(t, "CS 101", courses[0].CourseCode)
	assert.Equal(t, "available", courses[0].State)
}

func TestCourseService_FindCourseByName_matches_code(t *testing.T) {
	t.Parallel()

	s := &extract.CourseService{Paginator: &extract.Paginator{Client: coursesClient()}}

	course, err := s.FindCourseByName(context.Background(), "chem 232")
	require.NoError(t, err)
	assert.Equal(t, "202", course.ID)
}

func TestCourseService_FindCourseByName_matches_partial_name(t *testing.T) {
	t.Parallel()

	s := &extract.CourseService{Paginator: &extract.Paginator{Client: coursesClient()}}

	course, err := s.FindCourseByName(context.Background(), "computer science")
	require.NoError(t, err)
	assert.Equal(t, "101", course.ID)
}

func TestCourseService_FindCourseByName_not_found(t *testing.T) {
	t.Parallel()

	s := &extract.CourseService{Paginator: &extract.Paginator{Client: coursesClient()}}

	_, err := s.FindCourseByName(context.Background(), "underwater basket weaving")
	assert.Equal(t, canvasdex.ENOTFOUND, canvasdex.ErrorCode(err))
}

func TestCourseService_FindCourseByName_requires_name(t *testing.T) {
	t.Parallel()

	s := &extract.CourseService{Paginator: &extract.Paginator{Client: coursesClient()}}

	_, err := s.FindCourseByName(context.Background(), "")
	assert.Equal(t, canvasdex.EINVALID, canvasdex.ErrorCode(err))
}
