package entity

import "time"

// Faculty represents a faculty member stored in the directory.
type Faculty struct {
	ID                int64
	Name              string
	Designation       *string
	Department        *string
	OfficeLocation    *string
	Email             *string
	ScholarURL        *string
	LinkedInURL       *string
	ProfilePictureURL *string
	Headline          *string
	Experience        []ExperienceItem
	Certifications    []Certification
	Projects          []Project
	Publications      []Publication
	LastUpdated       *time.Time
}

// ExperienceItem is a single position held by a faculty member.
type ExperienceItem struct {
	Position string  `json:"position"`
	Company  string  `json:"company"`
	Duration *string `json:"duration"`
}

// Certification is a credential awarded to a faculty member.
type Certification struct {
	Name   string  `json:"name"`
	Issuer *string `json:"issuer"`
}

// Project describes research or teaching work.
type Project struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// Publication is a single academic publication.
type Publication struct {
	Title    string  `json:"title"`
	Authors  *string `json:"authors"`
	Year     *string `json:"year"`
	Citation *string `json:"citation"`
}

// Normalize replaces nil nested lists with empty ones.
func (f *Faculty) Normalize() {
	if f.Experience == nil {
		f.Experience = []ExperienceItem{}
	}
	if f.Certifications == nil {
		f.Certifications = []Certification{}
	}
	if f.Projects == nil {
		f.Projects = []Project{}
	}
	if f.Publications == nil {
		f.Publications = []Publication{}
	}
}

// IsStale reports whether the record was last written more than maxAge before now.
// Records without a known update time are never stale.
func (f *Faculty) IsStale(now time.Time, maxAge time.Duration) bool {
	if f.LastUpdated == nil {
		return false
	}
	return now.Sub(*f.LastUpdated) > maxAge
}
