package main

import (
	"fmt"

	"github.com/notioc/canvasdex"
)

// Run executes the file command.
func (c *FileCmd) Run(deps *Dependencies) error {
	f, err := deps.Extractor.ContentByFileID(deps.Ctx, c.CourseID, c.FileID)
	if err != nil {
		return fmt.Errorf("file: %s", canvasdex.ErrorMessage(err))
	}

	fmt.Fprintf(deps.Stdout, "id:    %s\n", f.ID)
	fmt.Fprintf(deps.Stdout, "name:  %s\n", f.Name)
	fmt.Fprintf(deps.Stdout, "url:   %s\n", f.URL)
	if f.ContentType != "" {
		fmt.Fprintf(deps.Stdout, "type:  %s\n", f.ContentType)
	}
	if f.Size > 0 {
		fmt.Fprintf(deps.Stdout, "size:  %d\n", f.Size)
	}
	fmt.Fprintf(deps.Stdout, "via:   %s\n", f.Source)
	return nil
}
