package services

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all services. Handlers map these onto HTTP
// statuses; anything else is an opaque internal error.
var (
	// ErrValidation covers missing or malformed input, reported before any
	// side effect.
	ErrValidation = errors.New("validation error")

	// ErrNotFound covers entities that do not exist or are not visible to
	// the caller's scope.
	ErrNotFound = errors.New("not found")

	// ErrPermission covers operations the caller's role forbids.
	ErrPermission = errors.New("permission denied")

	// ErrConflict covers uniqueness violations such as duplicate emails or
	// category names.
	ErrConflict = errors.New("already exists")
)

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
