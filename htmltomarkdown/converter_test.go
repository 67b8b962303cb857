package htmltomarkdown_test

import (
	"testing"

	"github.com/notioc/canvasdex"
	"github.com/notioc/canvasdex/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements canvasdex.Converter at compile time.
var _ canvasdex.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Office hours are Tuesdays at 3pm.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "Office hours are Tuesdays at 3pm.")
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<h1>Syllabus</h1><h2>Grading</h2>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Syllabus")
		assert.Contains(t, md, "## Grading")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>See the <a href="https://example.com/reading">required reading</a>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[required reading](https://example.com/reading)")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<ul><li>Problem set 1</li><li>Problem set 2</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- Problem set 1")
		assert.Contains(t, md, "- Problem set 2")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<table><tr><th>Week</th><th>Topic</th></tr><tr><td>1</td><td>Intro</td></tr></table>`)

		require.NoError(t, err)
		assert.Contains(t, md, "Week")
		assert.Contains(t, md, "Intro")
		assert.Contains(t, md, "|")
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert("  ")

		require.NoError(t, err)
		assert.Empty(t, md)
	})
}
