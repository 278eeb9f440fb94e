package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kinolab/cinema-api/internal/store"
)

// PostgreSQL error codes from the class 23 (integrity constraint) family.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// pgErrorCode extracts the SQLSTATE code when err carries a pgconn.PgError,
// or "" otherwise.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// MapError maps a database error to the appropriate store sentinel.
// It wraps the original error to preserve context for debugging.
// All store methods route their database errors through this function
// so that callers can rely on errors.Is against the store sentinels.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case foreignKeyViolationCode:
			return fmt.Errorf("%w: foreign key violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case checkViolationCode:
			return fmt.Errorf("%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case notNullViolationCode:
			return fmt.Errorf("%w: not null violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ColumnName, err)
		}
	}

	// Errors without a specific mapping pass through unchanged.
	return err
}

func IsUniqueViolation(err error) bool {
	return pgErrorCode(err) == uniqueViolationCode
}

// IsForeignKeyViolation reports whether err is a foreign key violation. For
// the catalog this is what an insert into a join table produces when it
// references a genre or actor that does not exist.
func IsForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == foreignKeyViolationCode
}

// IsCheckConstraintViolation reports whether err is a check constraint
// violation, such as a non-positive movie duration.
func IsCheckConstraintViolation(err error) bool {
	return pgErrorCode(err) == checkViolationCode
}

func IsNotNullViolation(err error) bool {
	return pgErrorCode(err) == notNullViolationCode
}

// IsNotFoundError covers both sql.ErrNoRows and errors wrapping
// store.ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, store.ErrNotFound)
}

// CheckRowsAffected examines the number of rows affected by a database
// operation. If no rows were affected it returns the given notFound error
// (store.ErrNotFound when nil), which is the correct outcome for UPDATE and
// DELETE statements targeting a missing row.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}

	return nil
}

// MapUniqueViolation maps a PostgreSQL unique violation to a more specific
// error such as store.ErrEmailExists or store.ErrGenreNameExists. If the
// error is not a unique violation it is returned unchanged.
func MapUniqueViolation(err error, specificError error) error {
	if !IsUniqueViolation(err) {
		return err
	}

	if specificError != nil {
		return fmt.Errorf("%w: %v", specificError, err)
	}

	return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
}
