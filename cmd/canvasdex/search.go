package main

import (
	"fmt"

	"github.com/notioc/canvasdex"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	hits, err := deps.Extractor.SmartSearch(deps.Ctx, c.CourseID, c.Query)
	if err != nil {
		return fmt.Errorf("search: %s", canvasdex.ErrorMessage(err))
	}

	if len(hits) == 0 {
		fmt.Fprintf(deps.Stdout, "no matches for %q in course %s\n", c.Query, c.CourseID)
		return nil
	}

	for _, h := range hits {
		fmt.Fprintf(deps.Stdout, "%.2f  [%s] %s", h.Score, h.Kind, h.Title)
		if h.URL != "" {
			fmt.Fprintf(deps.Stdout, "  %s", h.URL)
		}
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}
