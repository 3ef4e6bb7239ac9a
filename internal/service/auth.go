package service

import (
	"errors"
	"time"

	"github.com/octobees/faculty-hub/api/internal/auth"
)

// ErrInvalidCredentials is returned when the admin secret does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService coordinates credential validation and token issuance.
type AuthService struct {
	credentials *auth.Credentials
	jwt         *auth.JWTManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(credentials *auth.Credentials, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{credentials: credentials, jwt: jwtManager}
}

// Login checks the admin secret and returns a JWT.
func (s *AuthService) Login(password string) (string, error) {
	if !s.credentials.Verify(password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(auth.AdminSubject, auth.RoleAdmin)
	if err != nil {
		return "", err
	}

	return token, nil
}

// TokenTTL reports how long issued tokens stay valid.
func (s *AuthService) TokenTTL() time.Duration {
	return s.jwt.TTL()
}
