package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/notioc/canvasdex"
)

// Run executes the courses command.
func (c *CoursesCmd) Run(deps *Dependencies) error {
	courses, err := deps.Courses.ListCourses(deps.Ctx)
	if err != nil {
		return fmt.Errorf("courses: %s", canvasdex.ErrorMessage(err))
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tNAME")
	for _, course := range courses {
		fmt.Fprintf(w, "%s\t%s\t%s\n", course.ID, course.CourseCode, course.Name)
	}
	return w.Flush()
}

// Run executes the find-course command.
func (c *FindCourseCmd) Run(deps *Dependencies) error {
	course, err := deps.Courses.FindCourseByName(deps.Ctx, c.Name)
	if err != nil {
		return fmt.Errorf("find-course: %s", canvasdex.ErrorMessage(err))
	}

	fmt.Fprintf(deps.Stdout, "%s  %s (%s)\n", course.ID, course.Name, course.CourseCode)
	return nil
}
