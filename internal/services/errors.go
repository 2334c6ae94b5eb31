package services

import (
	"errors"
	"fmt"

	"github.com/AnshRaj112/serenify-wellness/pkg/utils"
)

// AuthError is returned when credentials are rejected. It never changes
// the authentication state.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// PersistenceError wraps a failure of the keyed persistence layer.
type PersistenceError struct {
	Op  string // read, write, delete, decode, encode
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err carries a *utils.ValidationError.
func IsValidation(err error) bool {
	var v *utils.ValidationError
	return errors.As(err, &v)
}

// IsAuth reports whether err carries an *AuthError.
func IsAuth(err error) bool {
	var a *AuthError
	return errors.As(err, &a)
}

// IsPersistence reports whether err carries a *PersistenceError.
func IsPersistence(err error) bool {
	var p *PersistenceError
	return errors.As(err, &p)
}
