package service

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/idna"

	"github.com/octobees/faculty-hub/api/internal/entity"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

// ValidationError reports a request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// validateFaculty checks the fields an admin write must carry. Supplied
// values are stored as given; only nil lists are replaced with empty ones.
func validateFaculty(f *entity.Faculty) error {
	if strings.TrimSpace(f.Name) == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}

	if f.Email != nil {
		if email := strings.TrimSpace(*f.Email); email != "" && !isValidEmail(email) {
			return ValidationError{Field: "email", Message: "email address is not valid"}
		}
	}

	f.Normalize()
	return nil
}

func isValidEmail(raw string) bool {
	at := strings.LastIndex(raw, "@")
	if at <= 0 || at == len(raw)-1 {
		return false
	}
	local, domain := raw[:at], raw[at+1:]
	if !isDomainValid(domain) {
		return false
	}
	asciiDomain, err := idnaProfile.ToASCII(domain)
	if err != nil || asciiDomain == "" {
		return false
	}
	return emailPattern.MatchString(strings.ToLower(local + "@" + asciiDomain))
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}

func normalizeString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
