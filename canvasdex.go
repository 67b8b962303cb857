// Package canvasdex provides resilient content discovery over a Canvas LMS
// instance. It probes which REST API endpoints a credential can use, falls
// back to scraping rendered course pages when the API is restricted, and
// merges both avenues into a cached, searchable per-course content index.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, mem/).
package canvasdex
