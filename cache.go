package canvasdex

// DiscoveryCache stores previously computed course indices keyed by course
// ID. Implementations are in-memory with process lifetime; entries are
// replaced atomically, never partially updated.
type DiscoveryCache interface {
	// Get returns the cached index if present and not stale.
	Get(courseID string) (*CourseIndex, bool)

	// Set replaces the entry for the index's course atomically.
	Set(courseID string, index *CourseIndex)

	// Clear removes one entry.
	Clear(courseID string)

	// ClearAll removes all entries.
	ClearAll()

	// Len returns the number of cached courses, stale entries included.
	Len() int

	// Indexes returns a snapshot of all cached indices.
	Indexes() []*CourseIndex
}
