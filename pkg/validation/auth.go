package validation

import (
	"errors"
	"fmt"
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates an email address (basic validation)
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email cannot be empty")
	}

	if !emailRegex.MatchString(email) {
		return errors.New("invalid email format")
	}

	if len(email) > 255 {
		return fmt.Errorf("email must be at most 255 characters long, got %d", len(email))
	}

	return nil
}

// ValidatePassword validates a password
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long, got %d", len(password))
	}

	if len(password) > 128 {
		return fmt.Errorf("password must be at most 128 characters long, got %d", len(password))
	}

	return nil
}

// ValidateCredentials validates an email and password pair
func ValidateCredentials(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}
