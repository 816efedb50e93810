package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no word carries the requested id.
	ErrNotFound = errors.New("word not found")
	// ErrStorageUnavailable is returned when the database cannot be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError reports a missing or malformed field on create/update.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("invalid field %q", e.Field)
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
