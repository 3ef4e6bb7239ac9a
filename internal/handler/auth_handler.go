package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/octobees/faculty-hub/api/internal/dto"
	"github.com/octobees/faculty-hub/api/internal/service"
)

const tokenTypeBearer = "bearer"

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	logger      zerolog.Logger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// Login handles POST /api/admin/login requests.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	token, err := h.authService.Login(req.Password)
	if err != nil {
		return respondError(c, h.logger, err, "unable to authenticate")
	}

	h.logger.Info().Str("request_id", requestID(c)).Msg("admin login succeeded")
	return Success(c, http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int64(h.authService.TokenTTL().Seconds()),
	})
}
