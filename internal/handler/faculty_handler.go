package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/octobees/faculty-hub/api/internal/dto"
	middleware "github.com/octobees/faculty-hub/api/internal/middleware"
	"github.com/octobees/faculty-hub/api/internal/service"
)

// FacultyHandler exposes the public directory and the admin editing endpoints.
type FacultyHandler struct {
	service *service.FacultyService
	logger  zerolog.Logger
}

// NewFacultyHandler creates a new handler instance.
func NewFacultyHandler(service *service.FacultyService, logger zerolog.Logger) *FacultyHandler {
	return &FacultyHandler{service: service, logger: logger}
}

// List handles GET /api/faculty requests.
func (h *FacultyHandler) List(c echo.Context) error {
	records, err := h.service.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err, "failed to list faculty")
	}
	return Success(c, http.StatusOK, dto.NewFacultyListResponse(records))
}

// Search handles GET /api/search requests. The query is matched as given; a
// missing q matches everything.
func (h *FacultyHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	records, err := h.service.Search(c.Request().Context(), query)
	if err != nil {
		return respondError(c, h.logger, err, "failed to search faculty")
	}
	return Success(c, http.StatusOK, dto.NewFacultyListResponse(records))
}

// Get handles GET /api/faculty/:id requests.
func (h *FacultyHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return Error(c, http.StatusNotFound, "faculty not found")
	}

	faculty, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load faculty")
	}
	return Success(c, http.StatusOK, dto.NewFacultyResponse(faculty))
}

// Create handles POST /api/admin/faculty requests.
func (h *FacultyHandler) Create(c echo.Context) error {
	var req dto.FacultyRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	faculty, err := h.service.Create(c.Request().Context(), req.ToEntity())
	if err != nil {
		return respondError(c, h.logger, err, "failed to create faculty")
	}

	h.logger.Info().Str("request_id", requestID(c)).Int64("faculty_id", faculty.ID).Msg("faculty created")
	return Success(c, http.StatusCreated, dto.NewFacultyResponse(faculty))
}

// Update handles PUT /api/admin/faculty/:id requests.
func (h *FacultyHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return Error(c, http.StatusNotFound, "faculty not found")
	}

	var req dto.FacultyRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	faculty, err := h.service.Update(c.Request().Context(), id, req.ToEntity())
	if err != nil {
		return respondError(c, h.logger, err, "failed to update faculty")
	}

	h.logger.Info().Str("request_id", requestID(c)).Int64("faculty_id", id).Msg("faculty updated")
	return Success(c, http.StatusOK, dto.NewFacultyResponse(faculty))
}

// Delete handles DELETE /api/admin/faculty/:id requests.
func (h *FacultyHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return Error(c, http.StatusNotFound, "faculty not found")
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.logger, err, "failed to delete faculty")
	}

	h.logger.Info().Str("request_id", requestID(c)).Int64("faculty_id", id).Msg("faculty deleted")
	return Success(c, http.StatusOK, dto.MessageResponse{Message: "Faculty deleted successfully"})
}

// Refresh handles POST /api/admin/faculty/:id/refresh requests.
func (h *FacultyHandler) Refresh(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return Error(c, http.StatusNotFound, "faculty not found")
	}

	scheduled, err := h.service.RequestRefresh(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "failed to schedule refresh")
	}

	message := "refresh scheduled"
	if !scheduled {
		message = "refresh queue is full, try again later"
	}
	return Success(c, http.StatusAccepted, dto.RefreshResponse{Message: message, Scheduled: scheduled})
}

// parseID reads the :id path parameter. Anything that is not a positive
// integer cannot name a record.
func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func requestID(c echo.Context) string {
	return middleware.RequestIDFromContext(c)
}
