package dto

// ScrapeRequest is the payload used by the scrape preview endpoint.
type ScrapeRequest struct {
	LinkedInURL *string `json:"linkedin_url"`
	ScholarURL  *string `json:"scholar_url"`
}
