package mock

import "github.com/notioc/canvasdex"

var _ canvasdex.DiscoveryCache = (*DiscoveryCache)(nil)

// DiscoveryCache is a mock implementation of canvasdex.DiscoveryCache.
type DiscoveryCache struct {
	GetFn      func(courseID string) (*canvasdex.CourseIndex, bool)
	SetFn      func(courseID string, index *canvasdex.CourseIndex)
	ClearFn    func(courseID string)
	ClearAllFn func()
	LenFn      func() int
	IndexesFn  func() []*canvasdex.CourseIndex
}

func (c *DiscoveryCache) Get(courseID string) (*canvasdex.CourseIndex, bool) {
	return c.GetFn(courseID)
}

func (c *DiscoveryCache) Set(courseID string, index *canvasdex.CourseIndex) {
	c.SetFn(courseID, index)
}

func (c *DiscoveryCache) Clear(courseID string) {
	if c.ClearFn != nil {
		c.ClearFn(courseID)
	}
}

func (c *DiscoveryCache) ClearAll() {
	if c.ClearAllFn != nil {
		c.ClearAllFn()
	}
}

func (c *DiscoveryCache) Len() int {
	if c.LenFn == nil {
		return 0
	}
	return c.LenFn()
}

func (c *DiscoveryCache) Indexes() []*canvasdex.CourseIndex {
	if c.IndexesFn == nil {
		return nil
	}
	return c.IndexesFn()
}
