package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/octobees/faculty-hub/api/internal/repository"
	"github.com/octobees/faculty-hub/api/internal/service"
)

// APIResponse describes the envelope returned for failed requests.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Success sends the payload as the response body.
func Success(c echo.Context, status int, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, data)
}

// Error sends an error response using the shared envelope format.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	payload := APIResponse{
		Status:  "error",
		Message: message,
	}
	return c.JSON(status, payload)
}

// respondError maps service and store errors onto HTTP statuses. Unknown
// errors are logged and reported as a generic 500.
func respondError(c echo.Context, logger zerolog.Logger, err error, fallback string) error {
	var (
		validationErr service.ValidationError
		csvErr        service.CSVValidationError
	)
	switch {
	case errors.Is(err, repository.ErrFacultyNotFound):
		return Error(c, http.StatusNotFound, "faculty not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		return Error(c, http.StatusUnauthorized, "invalid credentials")
	case errors.As(err, &validationErr):
		return Error(c, http.StatusUnprocessableEntity, validationErr.Error())
	case errors.As(err, &csvErr):
		return Error(c, http.StatusBadRequest, csvErr.Error())
	default:
		logger.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg(fallback)
		return Error(c, http.StatusInternalServerError, fallback)
	}
}
