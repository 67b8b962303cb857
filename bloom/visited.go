// Package bloom tracks URLs already fetched during web discovery using a
// Bloom filter, keeping the visited set cheap even for large courses.
package bloom

import (
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Visited records course URLs that web discovery has already fetched.
// It is safe for concurrent use. URL fragments are ignored: URLs differing
// only by fragment are the same surface.
type Visited struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewVisited creates a visited set sized for n expected URLs with the
// given false positive rate.
func NewVisited(n uint, fpRate float64) *Visited {
	return &Visited{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Visit records the URL and reports whether it had already been seen.
// False positives are possible; false negatives are not.
func (v *Visited) Visit(rawURL string) (seen bool) {
	url := stripFragment(rawURL)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.f.TestString(url) {
		return true
	}
	v.f.AddString(url)
	return false
}

// Seen reports whether the URL might have been visited.
func (v *Visited) Seen(rawURL string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.f.TestString(stripFragment(rawURL))
}

// EstimatedCount returns the approximate number of visited URLs.
func (v *Visited) EstimatedCount() uint {
	v.mu.Lock()
	defer v.mu.Unlock()
	return uint(v.f.ApproximatedSize())
}

func stripFragment(rawURL string) string {
	if idx := strings.Index(rawURL, "#"); idx != -1 {
		return rawURL[:idx]
	}
	return rawURL
}
