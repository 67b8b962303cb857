package mem_test

import (
	"testing"
	"time"

	"github.com/notioc/canvasdex"
	"github.com/notioc/canvasdex/mem"
	"github.com/stretchr/testify/assert"
)

func index(courseID string, scanned time.Time) *canvasdex.CourseIndex {
	return &canvasdex.CourseIndex{CourseID: courseID, LastScanned: scanned}
}

func TestCache_Get_returns_fresh_entry(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	c := mem.NewCache(mem.WithClock(func() time.Time { return now }))

	c.Set("101", index("101", now))

	got, ok := c.Get("101")
	assert.True(t, ok)
	assert.Equal(t, "101", got.CourseID)
}

func TestCache_Get_evicts_stale_entry(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	now := start
	c := mem.NewCache(mem.WithClock(func() time.Time { return now }))

	c.Set("101", index("101", start))

	// Just inside the window.
	now = start.Add(mem.DefaultTTL - time.Second)
	_, ok := c.Get("101")
	assert.True(t, ok)

	// At the window boundary the entry is stale.
	now = start.Add(mem.DefaultTTL)
	_, ok = c.Get("101")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "stale entry should be evicted on read")
}

func TestCache_WithTTL_overrides_staleness_window(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	now := start
	c := mem.NewCache(
		mem.WithTTL(time.Minute),
		mem.WithClock(func() time.Time { return now }),
	)

	c.Set("101", index("101", start))

	now = start.Add(2 * time.Minute)
	_, ok := c.Get("101")
	assert.False(t, ok)
}

func TestCache_Set_replaces_existing_entry(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	c := mem.NewCache(mem.WithClock(func() time.Time { return now }))

	first := index("101", now)
	first.ScanID = "scan-1"
	second := index("101", now)
	second.ScanID = "scan-2"

	c.Set("101", first)
	c.Set("101", second)

	got, ok := c.Get("101")
	assert.True(t, ok)
	assert.Equal(t, "scan-2", got.ScanID)
	assert.Equal(t, 1, c.Len())
}

func TestCache_Clear_removes_single_course(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	c := mem.NewCache(mem.WithClock(func() time.Time { return now }))

	c.Set("101", index("101", now))
	c.Set("202", index("202", now))

	c.Clear("101")

	_, ok := c.Get("101")
	assert.False(t, ok)
	_, ok = c.Get("202")
	assert.True(t, ok)
}

func TestCache_ClearAll(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	c := mem.NewCache(mem.WithClock(func() time.Time { return now }))

	c.Set("101", index("101", now))
	c.Set("202", index("202", now))

	c.ClearAll()
	assert.Equal(t, 0, c.Len())
}

func TestCache_Indexes_snapshot(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	c := mem.NewCache(mem.WithClock(func() time.Time { return now }))

	c.Set("101", index("101", now))
	c.Set("202", index("202", now))

	ids := make(map[string]bool)
	for _, idx := range c.Indexes() {
		ids[idx.CourseID] = true
	}
	assert.Equal(t, map[string]bool{"101": true, "202": true}, ids)
}
