package canvasdex

import "strings"

// MatchThreshold is the minimum similarity below which FindBestMatch
// reports no match.
const MatchThreshold = 0.3

// Candidate supplies named text fields for fuzzy matching.
type Candidate interface {
	// MatchField returns the candidate's value for the named field,
	// or "" when the field does not apply.
	MatchField(name string) string
}

// FieldMap is an ad-hoc Candidate backed by a map.
type FieldMap map[string]string

// MatchField implements Candidate.
func (m FieldMap) MatchField(name string) string { return m[name] }

// Match identifies the winning candidate of a FindBestMatch call.
type Match struct {
	// Index of the candidate in the caller's input order.
	Index int

	// Field is the field name the winning score came from.
	Field string

	// Score is the winning similarity in [0, 1].
	Score float64
}

// FindBestMatch scores the query against the named fields of each candidate
// and returns the single best match, or false if no candidate clears
// MatchThreshold. Field order breaks score ties; input order breaks
// remaining ties (stable).
//
// Scoring is Jaccard token overlap with a substring containment bonus;
// case-folded equality scores 1. Exact numeric scores are not a contract,
// only relative ranking and tie-break order are.
func FindBestMatch(query string, candidates []Candidate, fields []string) (*Match, bool) {
	best := Match{Index: -1, Score: 0}
	bestField := len(fields)

	for i, cand := range candidates {
		for fi, field := range fields {
			value := cand.MatchField(field)
			if value == "" {
				continue
			}
			score := Score(query, value)
			// Ordering: score desc, then field position asc, then input
			// order asc. Candidates are visited in input order, so an
			// equal (score, field) pair never displaces an earlier winner.
			if score > best.Score || (best.Index >= 0 && score == best.Score && fi < bestField) {
				best = Match{Index: i, Field: field, Score: score}
				bestField = fi
			}
		}
	}

	if best.Index < 0 || best.Score < MatchThreshold {
		return nil, false
	}
	return &best, true
}

// Score computes the similarity of a free-text query against a candidate
// value. It is case-insensitive and tolerant of partial matches: exact
// (normalized) equality scores 1, containment of one string in the other
// scores at least 0.5, and token overlap covers the rest.
func Score(query, value string) float64 {
	q := normalize(query)
	v := normalize(value)
	if q == "" || v == "" {
		return 0
	}
	if q == v {
		return 1
	}

	score := jaccard(strings.Fields(q), strings.Fields(v))

	// Substring bonus: a nickname or code embedded in the other string is
	// a strong signal even when token overlap is weak.
	if strings.Contains(q, v) || strings.Contains(v, q) {
		shorter, longer := len(q), len(v)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		if contained := 0.5 + 0.5*float64(shorter)/float64(longer); contained > score {
			score = contained
		}
	}

	return score
}

// normalize lowercases and collapses all non-alphanumeric runs to single
// spaces, so "CS-101" and "cs 101" compare equal.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
		} else if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	union := len(set)
	shared := 0
	for _, t := range b {
		if set[t] {
			shared++
			delete(set, t) // count each shared token once
		} else {
			union++
		}
	}
	return float64(shared) / float64(union)
}
