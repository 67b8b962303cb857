package canvasdex

import "time"

// DiscoveryMethod identifies which avenue produced a course index.
type DiscoveryMethod string

// Discovery methods, in rough order of preference.
const (
	MethodAPI    DiscoveryMethod = "api"
	MethodWeb    DiscoveryMethod = "web"
	MethodHybrid DiscoveryMethod = "hybrid"
	MethodCached DiscoveryMethod = "cached"
)

// Course represents a Canvas course as returned by the courses API.
type Course struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CourseCode string `json:"courseCode"`
	State      string `json:"state"`
}

// MatchField implements Candidate so free-text course names can be
// resolved to course IDs with FindBestMatch.
func (c *Course) MatchField(name string) string {
	switch name {
	case "name":
		return c.Name
	case "course_code":
		return c.CourseCode
	case "id":
		return c.ID
	}
	return ""
}

// Page represents a discovered course page.
type Page struct {
	ID     string          `json:"id"` // page slug or web path
	URL    string          `json:"url"`
	Title  string          `json:"title"`
	Body   string          `json:"body"` // Markdown
	Source DiscoveryMethod `json:"source"`
}

// File represents a discovered course file.
type File struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	URL         string          `json:"url"`
	ContentType string          `json:"contentType,omitempty"`
	Size        int64           `json:"size,omitempty"`
	Source      DiscoveryMethod `json:"source"`
}

// Link represents a discovered outbound or content link.
type Link struct {
	URL    string `json:"url"`
	Text   string `json:"text"`
	Source string `json:"source"` // "page", "module", "discussion", "assignment", "home"
}

// IndexMetadata summarizes a course index.
type IndexMetadata struct {
	TotalPages        int             `json:"totalPages"`
	TotalFiles        int             `json:"totalFiles"`
	TotalLinks        int             `json:"totalLinks"`
	HasRestrictedAPIs bool            `json:"hasRestrictedAPIs"`
	DiscoveryMethod   DiscoveryMethod `json:"discoveryMethod"`
}

// CourseIndex is the merged, cached record of a course's discoverable
// content. An index is rebuilt as a whole on each successful discovery,
// never mutated in place.
type CourseIndex struct {
	CourseID          string              `json:"courseId"`
	ScanID            string              `json:"scanId"`
	LastScanned       time.Time           `json:"lastScanned"`
	Availability      *AvailabilityReport `json:"availability,omitempty"`
	Pages             []Page              `json:"pages"`
	Files             []File              `json:"files"`
	Links             []Link              `json:"links"`
	SearchableContent string              `json:"searchableContent"`
	ContentHash       string              `json:"contentHash"`
	Metadata          IndexMetadata       `json:"metadata"`
}

// Validate returns an error if the index contains invalid fields.
func (idx *CourseIndex) Validate() error {
	if idx.CourseID == "" {
		return Errorf(EINVALID, "course ID required")
	}
	return nil
}

// Empty reports whether the index discovered no content in any category.
func (idx *CourseIndex) Empty() bool {
	return len(idx.Pages) == 0 && len(idx.Files) == 0 && len(idx.Links) == 0
}

// FileByID returns the discovered file with the given identifier.
// Returns ENOTFOUND if no such file was discovered.
func (idx *CourseIndex) FileByID(fileID string) (*File, error) {
	for i := range idx.Files {
		if idx.Files[i].ID == fileID {
			f := idx.Files[i]
			return &f, nil
		}
	}
	return nil, Errorf(ENOTFOUND, "file %q not found in course %q", fileID, idx.CourseID)
}
