package canvasdex_test

import (
	"testing"

	"github.com/notioc/canvasdex"
	"github.com/stretchr/testify/assert"
)

func TestFindBestMatch_exact_name_wins(t *testing.T) {
	t.Parallel()

	candidates := []canvasdex.Candidate{
		canvasdex.FieldMap{"name": "Introduction to Computer Science", "course_code": "CS 101"},
		canvasdex.FieldMap{"name": "Data Structures", "course_code": "CS 201"},
	}

	match, ok := canvasdex.FindBestMatch("Data Structures", candidates, []string{"name", "course_code"})
	assert.True(t, ok)
	assert.Equal(t, 1, match.Index)
	assert.Equal(t, "name", match.Field)
	assert.Equal(t, 1.0, match.Score)
}

func TestFindBestMatch_is_case_and_punctuation_insensitive(t *testing.T) {
	t.Parallel()

	candidates := []canvasdex.Candidate{
		canvasdex.FieldMap{"name": "Organic Chemistry II", "course_code": "CHEM-232"},
	}

	match, ok := canvasdex.FindBestMatch("chem 232", candidates, []string{"name", "course_code"})
	assert.True(t, ok)
	assert.Equal(t, "course_code", match.Field)
	assert.Equal(t, 1.0, match.Score)
}

func TestFindBestMatch_earlier_field_breaks_score_ties(t *testing.T) {
	t.Parallel()

	// Both fields match the query exactly; the earlier field must win.
	candidates := []canvasdex.Candidate{
		canvasdex.FieldMap{"name": "CS 101", "course_code": "CS 101"},
	}

	match, ok := canvasdex.FindBestMatch("cs 101", candidates, []string{"name", "course_code"})
	assert.True(t, ok)
	assert.Equal(t, "name", match.Field)
}

func TestFindBestMatch_earlier_candidate_breaks_remaining_ties(t *testing.T) {
	t.Parallel()

	candidates := []canvasdex.Candidate{
		canvasdex.FieldMap{"name": "Calculus I"},
		canvasdex.FieldMap{"name": "Calculus I"},
	}

	match, ok := canvasdex.FindBestMatch("Calculus I", candidates, []string{"name"})
	assert.True(t, ok)
	assert.Equal(t, 0, match.Index)
}

func TestFindBestMatch_prefers_name_over_weaker_code_match(t *testing.T) {
	t.Parallel()

	candidates := []canvasdex.Candidate{
		canvasdex.FieldMap{"name": "Intro to Computer Science", "course_code": "CS 101"},
		canvasdex.FieldMap{"name": "Computer Architecture", "course_code": "CS 350"},
	}

	match, ok := canvasdex.FindBestMatch("computer science", candidates, []string{"name", "course_code"})
	assert.True(t, ok)
	assert.Equal(t, 0, match.Index)
	assert.Equal(t, "name", match.Field)
}

func TestFindBestMatch_no_match_below_threshold(t *testing.T) {
	t.Parallel()

	candidates := []canvasdex.Candidate{
		canvasdex.FieldMap{"name": "Organic Chemistry"},
	}

	_, ok := canvasdex.FindBestMatch("underwater basket weaving", candidates, []string{"name"})
	assert.False(t, ok)
}

func TestFindBestMatch_no_candidates(t *testing.T) {
	t.Parallel()

	_, ok := canvasdex.FindBestMatch("anything", nil, []string{"name"})
	assert.False(t, ok)
}

func TestScore_exact_match(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, canvasdex.Score("CS-101", "cs 101"))
}

func TestScore_substring_bonus(t *testing.T) {
	t.Parallel()

	// "chem" is contained in "chemistry" after normalization of neither;
	// containment works at the string level.
	score := canvasdex.Score("chem", "chemistry")
	assert.GreaterOrEqual(t, score, 0.5)
	assert.Less(t, score, 1.0)
}

func TestScore_token_overlap(t *testing.T) {
	t.Parallel()

	// 2 shared tokens of 4 total.
	score := canvasdex.Score("intro biology", "biology lab intro II")
	assert.InDelta(t, 0.5, score, 0.001)
}

func TestScore_empty_inputs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, canvasdex.Score("", "something"))
	assert.Equal(t, 0.0, canvasdex.Score("something", ""))
	assert.Equal(t, 0.0, canvasdex.Score("---", "something"))
}
