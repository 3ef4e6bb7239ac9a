package dto

import (
	"time"

	"github.com/octobees/faculty-hub/api/internal/entity"
)

// FacultyRequest is the create/update payload. Every field is written on
// update, so absent lists clear the stored ones.
type FacultyRequest struct {
	Name              string                  `json:"name"`
	Designation       *string                 `json:"designation"`
	Title             *string                 `json:"title"`
	Department        *string                 `json:"department"`
	OfficeLocation    *string                 `json:"office_location"`
	Email             *string                 `json:"email"`
	ScholarURL        *string                 `json:"google_scholar_url"`
	LinkedInURL       *string                 `json:"linkedin_url"`
	ProfilePictureURL *string                 `json:"profile_picture_url"`
	Headline          *string                 `json:"headline"`
	Experience        []entity.ExperienceItem `json:"experience"`
	Certifications    []entity.Certification  `json:"certifications"`
	Projects          []entity.Project        `json:"projects"`
	Publications      []entity.Publication    `json:"publications"`
}

// ToEntity converts the request into a faculty record. The legacy title field
// is used only when designation is absent.
func (r FacultyRequest) ToEntity() *entity.Faculty {
	designation := r.Designation
	if designation == nil {
		designation = r.Title
	}
	faculty := &entity.Faculty{
		Name:              r.Name,
		Designation:       designation,
		Department:        r.Department,
		OfficeLocation:    r.OfficeLocation,
		Email:             r.Email,
		ScholarURL:        r.ScholarURL,
		LinkedInURL:       r.LinkedInURL,
		ProfilePictureURL: r.ProfilePictureURL,
		Headline:          r.Headline,
		Experience:        r.Experience,
		Certifications:    r.Certifications,
		Projects:          r.Projects,
		Publications:      r.Publications,
	}
	faculty.Normalize()
	return faculty
}

// FacultyResponse is the public representation of a faculty record.
type FacultyResponse struct {
	ID                int64                   `json:"id"`
	Name              string                  `json:"name"`
	Title             *string                 `json:"title"`
	Department        *string                 `json:"department"`
	OfficeLocation    *string                 `json:"office_location"`
	Email             *string                 `json:"email"`
	ScholarURL        *string                 `json:"google_scholar_url"`
	LinkedInURL       *string                 `json:"linkedin_url"`
	ProfilePictureURL *string                 `json:"profile_picture_url"`
	Headline          *string                 `json:"headline"`
	Experience        []entity.ExperienceItem `json:"experience"`
	Certifications    []entity.Certification  `json:"certifications"`
	Projects          []entity.Project        `json:"projects"`
	Publications      []entity.Publication    `json:"publications"`
	LastUpdated       *time.Time              `json:"last_updated"`
}

// NewFacultyResponse formats a stored record for clients.
func NewFacultyResponse(f *entity.Faculty) FacultyResponse {
	record := *f
	record.Normalize()
	return FacultyResponse{
		ID:                record.ID,
		Name:              record.Name,
		Title:             record.Designation,
		Department:        record.Department,
		OfficeLocation:    record.OfficeLocation,
		Email:             record.Email,
		ScholarURL:        record.ScholarURL,
		LinkedInURL:       record.LinkedInURL,
		ProfilePictureURL: record.ProfilePictureURL,
		Headline:          record.Headline,
		Experience:        record.Experience,
		Certifications:    record.Certifications,
		Projects:          record.Projects,
		Publications:      record.Publications,
		LastUpdated:       record.LastUpdated,
	}
}

// NewFacultyListResponse formats a list of records, never returning nil.
func NewFacultyListResponse(records []entity.Faculty) []FacultyResponse {
	out := make([]FacultyResponse, 0, len(records))
	for i := range records {
		out = append(out, NewFacultyResponse(&records[i]))
	}
	return out
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// RefreshResponse reports whether a manual refresh was queued.
type RefreshResponse struct {
	Message   string `json:"message"`
	Scheduled bool   `json:"scheduled"`
}

// ImportSummary reports the outcome of a CSV import.
type ImportSummary struct {
	Inserted int     `json:"inserted"`
	Skipped  int     `json:"skipped"`
	Total    int     `json:"total"`
	IDs      []int64 `json:"ids"`
}
