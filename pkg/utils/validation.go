package utils

import (
	"net/mail"
	"strings"
)

const (
	MaxNameLength  = 100
	MaxEmailLength = 254
)

// ValidationError represents a validation error on a single input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Required fails when value is empty after trimming whitespace.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: capitalize(field) + " is required"}
	}
	return nil
}

// ValidateName checks a display name used at signup.
func ValidateName(name string) error {
	if err := Required("name", name); err != nil {
		return err
	}
	if len(strings.TrimSpace(name)) > MaxNameLength {
		return &ValidationError{Field: "name", Message: "Name must be at most 100 characters"}
	}
	return nil
}

// ValidateEmail checks that email is a single bare address.
func ValidateEmail(email string) error {
	if err := Required("email", email); err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	if len(email) > MaxEmailLength {
		return &ValidationError{Field: "email", Message: "Email is too long"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "Email address is invalid"}
	}
	return nil
}

// NormalizeEmail converts email to lowercase for storage keys
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
