package validation

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"alex@example.com", "a.b+tag@sub.domain.org", "x_y-z@host.io"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q): unexpected error: %v", email, err)
		}
	}

	invalid := []string{"", "not-an-email", "@missing.local", "user@", "user@host"}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q): expected error", email)
		}
	}

	long := strings.Repeat("a", 250) + "@example.com"
	if err := ValidateEmail(long); err == nil {
		t.Error("Expected error for overlong email")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword(""); err == nil {
		t.Error("Expected error for empty password")
	}
	if err := ValidatePassword("short"); err == nil {
		t.Error("Expected error for short password")
	}
	if err := ValidatePassword(strings.Repeat("x", 129)); err == nil {
		t.Error("Expected error for overlong password")
	}
	if err := ValidatePassword("secret123"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestValidateCredentials(t *testing.T) {
	if err := ValidateCredentials("alex@example.com", "secret123"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := ValidateCredentials("bad", "secret123"); err == nil {
		t.Error("Expected error for bad email")
	}
	if err := ValidateCredentials("alex@example.com", "short"); err == nil {
		t.Error("Expected error for bad password")
	}
}
