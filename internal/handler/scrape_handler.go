package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/faculty-hub/api/internal/dto"
	"github.com/octobees/faculty-hub/api/internal/refresh"
)

// ScrapeHandler previews what a refresh would pull for a pair of profile URLs.
// Nothing is persisted.
type ScrapeHandler struct {
	fetcher refresh.Fetcher
}

// NewScrapeHandler constructs a scrape handler backed by the profile fetcher.
func NewScrapeHandler(fetcher refresh.Fetcher) *ScrapeHandler {
	return &ScrapeHandler{fetcher: fetcher}
}

// Preview handles POST /api/admin/scrape requests. URLs may be sent as a JSON
// body or as linkedin_url/scholar_url query parameters.
func (h *ScrapeHandler) Preview(c echo.Context) error {
	var req dto.ScrapeRequest
	if hasBody(c) {
		if err := c.Bind(&req); err != nil {
			return Error(c, http.StatusBadRequest, "invalid payload")
		}
	}
	if req.LinkedInURL == nil {
		req.LinkedInURL = queryParam(c, "linkedin_url")
	}
	if req.ScholarURL == nil {
		req.ScholarURL = queryParam(c, "scholar_url")
	}

	result := h.fetcher.Fetch(c.Request().Context(), req.LinkedInURL, req.ScholarURL)
	return Success(c, http.StatusOK, result)
}

func hasBody(c echo.Context) bool {
	return c.Request().ContentLength != 0
}

func queryParam(c echo.Context, name string) *string {
	value := strings.TrimSpace(c.QueryParam(name))
	if value == "" {
		return nil
	}
	return &value
}
