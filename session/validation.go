package session

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Password rules mirror the backend: bcrypt rejects inputs over 72 bytes,
// so the check happens here before any network round-trip.
const (
	minPasswordChars = 8
	maxPasswordBytes = 72
)

// Validator provides client-side validation of credentials before any
// request is sent. Its messages are user-facing and rendered verbatim.
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCredentials validates login credentials
func (v *Validator) ValidateCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}

	// Basic email format validation
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return fmt.Errorf("invalid email format")
	}

	if password == "" {
		return fmt.Errorf("password is required")
	}

	return nil
}

// ValidatePassword validates password strength for registration
func (v *Validator) ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordChars {
		return errors.New("Password must be at least 8 characters long")
	}
	if len(password) > maxPasswordBytes {
		return errors.New("Password is too long (maximum 72 bytes)")
	}
	return nil
}

// ValidateRegistration validates a full registration request: confirmation
// match first, then password strength, then credential shape.
func (v *Validator) ValidateRegistration(email, password, confirm string) error {
	if password != confirm {
		return errors.New("Passwords do not match")
	}
	if err := v.ValidatePassword(password); err != nil {
		return err
	}
	return v.ValidateCredentials(email, password)
}
