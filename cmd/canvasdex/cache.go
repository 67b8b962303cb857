package main

import "fmt"

// Run executes the clear-cache command.
func (c *ClearCacheCmd) Run(deps *Dependencies) error {
	deps.Extractor.ClearCourseCache(c.CourseID)
	fmt.Fprintf(deps.Stdout, "cleared cached index for course %s\n", c.CourseID)
	return nil
}

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats := deps.Extractor.Stats()
	fmt.Fprintf(deps.Stdout, "cached courses: %d\n", stats.CachedCourses)
	fmt.Fprintf(deps.Stdout, "total pages:    %d\n", stats.TotalPages)
	fmt.Fprintf(deps.Stdout, "total files:    %d\n", stats.TotalFiles)
	fmt.Fprintf(deps.Stdout, "total links:    %d\n", stats.TotalLinks)
	return nil
}
