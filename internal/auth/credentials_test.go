package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCredentials_PlainPassword(t *testing.T) {
	creds, err := NewCredentials("letmein", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !creds.Verify("letmein") {
		t.Fatalf("expected matching password to verify")
	}
	if creds.Verify("wrong") || creds.Verify("") {
		t.Fatalf("expected mismatching password to be rejected")
	}
}

func TestCredentials_Hash(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	creds, err := NewCredentials("ignored", string(hashed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !creds.Verify("s3cret") {
		t.Fatalf("expected hash to take precedence")
	}
	if creds.Verify("ignored") {
		t.Fatalf("expected plain password ignored when hash supplied")
	}
}

func TestCredentials_Invalid(t *testing.T) {
	if _, err := NewCredentials("", ""); err == nil {
		t.Fatalf("expected error when no secret configured")
	}
	if _, err := NewCredentials("", "not-a-bcrypt-hash"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}

	var nilCreds *Credentials
	if nilCreds.Verify("anything") {
		t.Fatalf("expected nil credentials to reject")
	}
}
