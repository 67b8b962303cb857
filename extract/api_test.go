package extract_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/notioc/canvasdex"
	"github.com/notioc/canvasdex/extract"
	"github.com/notioc/canvasdex/htmltomarkdown"
	"github.com/notioc/canvasdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apiTestClient(t *testing.T) *mock.APIClient {
	t.Helper()
	return &mock.APIClient{
		CallFn: func(ctx context.Context, method, path string, query url.Values) (*canvasdex.APIResponse, error) {
			switch path {
			case "/courses/101/pages":
				assert.Equal(t, "body", query.Get("include[]"))
				return &canvasdex.APIResponse{
					StatusCode: http.StatusOK,
					Body: []byte(`[
						{"url":"syllabus","title":"Syllabus","body":"<p>Weekly problem sets.</p>","html_url":"https://school.test/courses/101/pages/syllabus"}
					]`),
				}, nil
			case "/courses/101/files":
				return &canvasdex.APIResponse{
					StatusCode: http.StatusOK,
					Body:       []byte(`[{"id":456,"display_name":"notes.pdf","url":"https://school.test/files/456/download","content-type":"application/pdf","size":1024}]`),
				}, nil
			case "/courses/101/modules":
				assert.Equal(t, "items", query.Get("include[]"))
				return &canvasdex.APIResponse{
					StatusCode: http.StatusOK,
					Body: []byte(`[
						{"name":"Week 1","items":[{"title":"Intro","html_url":"https://school.test/courses/101/modules/items/1"}]}
					]`),
				}, nil
			case "/courses/101/assignments":
				return &canvasdex.APIResponse{
					StatusCode: http.StatusOK,
					Body:       []byte(`[{"name":"Problem Set 1","html_url":"https://school.test/courses/101/assignments/9"}]`),
				}, nil
			case "/courses/101/discussion_topics":
				return &canvasdex.APIResponse{StatusCode: http.StatusOK, Body: []byte(`[]`)}, nil
			}
			return &canvasdex.APIResponse{StatusCode: http.StatusNotFound}, nil
		},
	}
}

func TestAPIDiscoverer_Discover_maps_categories_to_entities(t *testing.T) {
	t.Parallel()

	d := &extract.APIDiscoverer{
		Paginator: &extract.Paginator{Client: apiTestClient(t)},
		Converter: htmltomarkdown.NewConverter(),
	}

	disc, err := d.Discover(context.Background(), "101", canvasdex.Categories())
	require.NoError(t, err)
	assert.Empty(t, disc.Errors)

	require.Len(t, disc.Pages, 1)
	assert.Equal(t, "syllabus", disc.Pages[0].ID)
	assert.Equal(t, "Syllabus", disc.Pages[0].Title)
	assert.Contains(t, disc.Pages[0].Body, "Weekly problem sets.")
	assert.NotContains(t, disc.Pages[0].Body, "<p>", "body should be Markdown")
	assert.Equal(t, canvasdex.MethodAPI, disc.Pages[0].Source)

	require.Len(t, disc.Files, 1)
	assert.Equal(t, "456", disc.Files[0].ID)
	assert.Equal(t, "notes.pdf", disc.Files[0].Name)
	assert.Equal(t, "application/pdf", disc.Files[0].ContentType)
	assert.Equal(t, int64(1024), disc.Files[0].Size)

	// One module item link plus one assignment link.
	require.Len(t, disc.Links, 2)
	sources := map[string]bool{}
	for _, l := range disc.Links {
		sources[l.Source] = true
	}
	assert.True(t, sources["module"])
	assert.True(t, sources["assignment"])
}

func TestAPIDiscoverer_Discover_partial_category_failure(t *testing.T) {
	t.Parallel()

	client := &mock.APIClient{
		CallFn: func(ctx context.Context, method, path string, query url.Values) (*canvasdex.APIResponse, error) {
			if path == "/courses/101/files" {
				return &canvasdex.APIResponse{StatusCode: http.StatusForbidden}, nil
			}
			return &canvasdex.APIResponse{
				StatusCode: http.StatusOK,
				Body:       []byte(`[{"url":"home","title":"Home","body":"","html_url":"https://school.test/courses/101/pages/home"}]`),
			}, nil
		},
	}

	d := &extract.APIDiscoverer{Paginator: &extract.Paginator{Client: client}}
	disc, err := d.Discover(context.Background(), "101", []canvasdex.EndpointCategory{
		canvasdex.CategoryPages,
		canvasdex.CategoryFiles,
	})

	require.NoError(t, err, "one failed category should not abort discovery")
	assert.Len(t, disc.Pages, 1)
	assert.Empty(t, disc.Files)
	require.Len(t, disc.Errors, 1)
	assert.Contains(t, disc.Errors[0], "files")
}

func TestAPIDiscoverer_Discover_all_categories_failed(t *testing.T) {
	t.Parallel()

	client := &mock.APIClient{
		CallFn: func(ctx context.Context, method, path string, query url.Values) (*canvasdex.APIResponse, error) {
			return &canvasdex.APIResponse{StatusCode: http.StatusForbidden}, nil
		},
	}

	d := &extract.APIDiscoverer{Paginator: &extract.Paginator{Client: client}}
	_, err := d.Discover(context.Background(), "101", canvasdex.Categories())

	assert.Equal(t, canvasdex.EUNAVAILABLE, canvasdex.ErrorCode(err))
}

func TestAPIDiscoverer_Discover_no_categories(t *testing.T) {
	t.Parallel()

	d := &extract.APIDiscoverer{Paginator: &extract.Paginator{Client: &mock.APIClient{}}}
	disc, err := d.Discover(context.Background(), "101", nil)

	require.NoError(t, err)
	assert.True(t, disc.Empty())
}

func TestAPIDiscoverer_Discover_requires_course_ID(t *testing.T) {
	t.Parallel()

	d := &extract.APIDiscoverer{Paginator: &extract.Paginator{Client: &mock.APIClient{}}}
	_, err := d.Discover(context.Background(), "", canvasdex.Categories())

	assert.Equal(t, canvasdex.EINVALID, canvasdex.ErrorCode(err))
}

func TestAPIDiscoverer_Discover_malformed_record_is_reported_not_fatal(t *testing.T) {
	t.Parallel()

	client := &mock.APIClient{
		CallFn: func(ctx context.Context, method, path string, query url.Values) (*canvasdex.APIResponse, error) {
			return &canvasdex.APIResponse{
				StatusCode: http.StatusOK,
				Body:       []byte(`[{"id":"not-a-number"}, {"id":7,"display_name":"ok.pdf","url":"https://school.test/files/7"}]`),
			}, nil
		},
	}

	d := &extract.APIDiscoverer{Paginator: &extract.Paginator{Client: client}}
	disc, err := d.Discover(context.Background(), "101", []canvasdex.EndpointCategory{canvasdex.CategoryFiles})

	require.NoError(t, err)
	require.Len(t, disc.Files, 1)
	assert.Equal(t, "7", disc.Files[0].ID)
	require.Len(t, disc.Errors, 1)
	assert.Contains(t, disc.Errors[0], "malformed file record")
}
