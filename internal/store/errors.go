package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Entity-specific variants below wrap it so callers can match
	// either the generic or the specific error.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or when it references another entity that does not
	// exist. Check the wrapped error for details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrMovieNotFound indicates that the requested movie does not exist in the store.
	ErrMovieNotFound = fmt.Errorf("%w: movie", ErrNotFound)

	// ErrGenreNotFound indicates that the requested genre does not exist in the store.
	ErrGenreNotFound = fmt.Errorf("%w: genre", ErrNotFound)

	// ErrActorNotFound indicates that the requested actor does not exist in the store.
	ErrActorNotFound = fmt.Errorf("%w: actor", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrGenreNameExists indicates that a genre with the given name already exists.
	ErrGenreNameExists = fmt.Errorf("%w: genre name", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError annotates a failure with the entity and operation it happened
// in, so logs can say more than "query failed".
type StoreError struct {
	Entity    string // "movie", "genre", ...
	Operation string // "create", "update", ...
	Message   string
	Err       error // wrapped cause, may be nil
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap supports errors.Is/errors.As against the cause.
func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
