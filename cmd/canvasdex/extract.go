package main

import (
	"fmt"

	"github.com/notioc/canvasdex"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	result, err := deps.Extractor.ExtractCourseContent(deps.Ctx, c.CourseID, canvasdex.ExtractOptions{
		ForceRefresh:    c.Refresh,
		PreferredMethod: canvasdex.DiscoveryMethod(c.Method),
	})
	if err != nil {
		return fmt.Errorf("extract: %s", canvasdex.ErrorMessage(err))
	}

	if !result.Success {
		fmt.Fprintf(deps.Stdout, "extraction failed for course %s\n", c.CourseID)
		for _, e := range result.Errors {
			fmt.Fprintf(deps.Stdout, "  %s\n", e)
		}
		return fmt.Errorf("no content could be discovered")
	}

	idx := result.Index
	fmt.Fprintf(deps.Stdout, "course %s indexed via %s (scan %s)\n", idx.CourseID, result.Method, idx.ScanID)
	fmt.Fprintf(deps.Stdout, "  pages: %d\n", idx.Metadata.TotalPages)
	fmt.Fprintf(deps.Stdout, "  files: %d\n", idx.Metadata.TotalFiles)
	fmt.Fprintf(deps.Stdout, "  links: %d\n", idx.Metadata.TotalLinks)
	if idx.Metadata.HasRestrictedAPIs {
		fmt.Fprintln(deps.Stdout, "  note: some API endpoints were restricted")
	}
	for _, e := range result.Errors {
		fmt.Fprintf(deps.Stdout, "  warning: %s\n", e)
	}
	return nil
}
