package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Credentials holds the single admin secret as a bcrypt hash.
type Credentials struct {
	hash []byte
}

// NewCredentials builds the admin credential from a bcrypt hash or, when no hash
// is given, from the plain password which is hashed once here.
func NewCredentials(password, passwordHash string) (*Credentials, error) {
	if passwordHash != "" {
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
		return &Credentials{hash: []byte(passwordHash)}, nil
	}
	if password == "" {
		return nil, errors.New("admin password must not be empty")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &Credentials{hash: hashed}, nil
}

// Verify reports whether password matches the admin secret.
func (c *Credentials) Verify(password string) bool {
	if c == nil || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(c.hash, []byte(password)) == nil
}
