package domain

import "errors"

// Cross-entity domain errors. Field-specific sentinels live next to the
// entity they validate.
var (
	// ErrValidation marks a generic entity validation failure when no
	// field-specific sentinel applies.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID marks a malformed or zero entity ID.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized marks an operation the caller may not perform.
	ErrUnauthorized = errors.New("unauthorized operation")
)
