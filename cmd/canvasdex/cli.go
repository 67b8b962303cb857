package main

import (
	"context"
	"io"

	"github.com/notioc/canvasdex"
	"github.com/notioc/canvasdex/extract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Extractor canvasdex.ContentExtractor
	Courses   *extract.CourseService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL string `env:"CANVAS_BASE_URL" required:"" help:"Canvas instance URL, e.g. https://school.instructure.com"`
	Token   string `env:"CANVAS_TOKEN" required:"" help:"Canvas API bearer token"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Extract    ExtractCmd    `cmd:"" help:"Build (or refresh) a course's content index"`
	Search     SearchCmd     `cmd:"" help:"Search a course's discovered content"`
	File       FileCmd       `cmd:"" help:"Look up a discovered file by ID"`
	FindCourse FindCourseCmd `cmd:"" name:"find-course" help:"Resolve a free-text course name to a course"`
	Courses    CoursesCmd    `cmd:"" help:"List active courses"`
	ClearCache ClearCacheCmd `cmd:"" name:"clear-cache" help:"Drop a course's cached index"`
	Stats      StatsCmd      `cmd:"" help:"Show extraction cache statistics"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	CourseID string `arg:"" help:"Course ID"`
	Refresh  bool   `short:"r" help:"Bypass the cache and re-probe availability"`
	Method   string `enum:",api,web" default:"" help:"Force a single discovery avenue (api or web)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	CourseID string `arg:"" help:"Course ID"`
	Query    string `arg:"" help:"Free-text query"`
}

// FileCmd is the "file" subcommand.
type FileCmd struct {
	CourseID string `arg:"" help:"Course ID"`
	FileID   string `arg:"" help:"Canvas file ID"`
}

// FindCourseCmd is the "find-course" subcommand.
type FindCourseCmd struct {
	Name string `arg:"" help:"Course name, nickname, or code"`
}

// CoursesCmd is the "courses" subcommand.
type CoursesCmd struct{}

// ClearCacheCmd is the "clear-cache" subcommand.
type ClearCacheCmd struct {
	CourseID string `arg:"" help:"Course ID"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}
