package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kinolab/cinema-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockResult implements sql.Result for testing
type mockResult struct {
	lastInsertId int64
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) {
	return m.lastInsertId, nil
}

func (m mockResult) RowsAffected() (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rowsAffected, nil
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantIs      error
		wantMsg     string
		passThrough bool
	}{
		{
			name: "nil_error",
			err:  nil,
		},
		{
			name:   "sql_no_rows",
			err:    sql.ErrNoRows,
			wantIs: store.ErrNotFound,
		},
		{
			name: "unique_violation",
			err: &pgconn.PgError{
				Code:           uniqueViolationCode,
				ConstraintName: "users_email_key",
			},
			wantIs: store.ErrDuplicate,
		},
		{
			name: "foreign_key_violation",
			err: &pgconn.PgError{
				Code:           foreignKeyViolationCode,
				ConstraintName: "movie_genres_genre_id_fkey",
			},
			wantIs:  store.ErrInvalidEntity,
			wantMsg: "foreign key violation (movie_genres_genre_id_fkey)",
		},
		{
			name: "check_constraint_violation",
			err: &pgconn.PgError{
				Code:           checkViolationCode,
				ConstraintName: "movies_duration_minutes_check",
			},
			wantIs:  store.ErrInvalidEntity,
			wantMsg: "check constraint violation",
		},
		{
			name: "not_null_violation",
			err: &pgconn.PgError{
				Code:       notNullViolationCode,
				ColumnName: "title",
			},
			wantIs:  store.ErrInvalidEntity,
			wantMsg: "not null violation (title)",
		},
		{
			name:        "generic_error",
			err:         errors.New("some other error"),
			passThrough: true,
		},
		{
			name: "unknown_pg_code",
			err: &pgconn.PgError{
				Code:    "99999",
				Message: "unknown error",
			},
			passThrough: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MapError(tt.err)

			switch {
			case tt.err == nil:
				assert.Nil(t, result)
			case tt.passThrough:
				assert.Equal(t, tt.err, result, "unmapped errors should pass through unchanged")
			default:
				require.NotNil(t, result)
				assert.ErrorIs(t, result, tt.wantIs)
				if tt.wantMsg != "" {
					assert.Contains(t, result.Error(), tt.wantMsg)
				}
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil_error",
			err:      nil,
			expected: false,
		},
		{
			name: "unique_violation",
			err: &pgconn.PgError{
				Code: uniqueViolationCode,
			},
			expected: true,
		},
		{
			name: "other_violation",
			err: &pgconn.PgError{
				Code: foreignKeyViolationCode,
			},
			expected: false,
		},
		{
			name:     "non_pg_error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name: "wrapped_unique_violation",
			err: fmt.Errorf("context: %w", &pgconn.PgError{
				Code: uniqueViolationCode,
			}),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsUniqueViolation(tt.err))
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil_error",
			err:      nil,
			expected: false,
		},
		{
			name: "foreign_key_violation",
			err: &pgconn.PgError{
				Code: foreignKeyViolationCode,
			},
			expected: true,
		},
		{
			name: "other_violation",
			err: &pgconn.PgError{
				Code: uniqueViolationCode,
			},
			expected: false,
		},
		{
			name:     "non_pg_error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name: "wrapped_foreign_key_violation",
			err: fmt.Errorf("context: %w", &pgconn.PgError{
				Code: foreignKeyViolationCode,
			}),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsForeignKeyViolation(tt.err))
		})
	}
}

func TestIsCheckConstraintViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name: "check_constraint_violation",
			err: &pgconn.PgError{
				Code: checkViolationCode,
			},
			expected: true,
		},
		{
			name: "other_violation",
			err: &pgconn.PgError{
				Code: uniqueViolationCode,
			},
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsCheckConstraintViolation(tt.err))
		})
	}
}

func TestIsNotNullViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name: "not_null_violation",
			err: &pgconn.PgError{
				Code: notNullViolationCode,
			},
			expected: true,
		},
		{
			name: "other_violation",
			err: &pgconn.PgError{
				Code: uniqueViolationCode,
			},
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotNullViolation(tt.err))
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "sql_no_rows",
			err:      sql.ErrNoRows,
			expected: true,
		},
		{
			name:     "store_not_found",
			err:      store.ErrNotFound,
			expected: true,
		},
		{
			name:     "entity_specific_not_found",
			err:      store.ErrMovieNotFound,
			expected: true,
		},
		{
			name:     "wrapped_sql_no_rows",
			err:      fmt.Errorf("wrapped: %w", sql.ErrNoRows),
			expected: true,
		},
		{
			name:     "other_error",
			err:      errors.New("other error"),
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestCheckRowsAffected(t *testing.T) {
	tests := []struct {
		name        string
		result      sql.Result
		notFound    error
		expectedErr error
		wantMsg     string
	}{
		{
			name:     "nil_result",
			result:   nil,
			notFound: store.ErrMovieNotFound,
			wantMsg:  "nil result",
		},
		{
			name: "zero_rows_with_sentinel",
			result: mockResult{
				rowsAffected: 0,
			},
			notFound:    store.ErrMovieNotFound,
			expectedErr: store.ErrMovieNotFound,
		},
		{
			name: "zero_rows_without_sentinel",
			result: mockResult{
				rowsAffected: 0,
			},
			notFound:    nil,
			expectedErr: store.ErrNotFound,
		},
		{
			name: "one_row_affected",
			result: mockResult{
				rowsAffected: 1,
			},
			notFound: store.ErrMovieNotFound,
		},
		{
			name: "multiple_rows_affected",
			result: mockResult{
				rowsAffected: 5,
			},
			notFound: store.ErrMovieNotFound,
		},
		{
			name: "error_getting_rows_affected",
			result: mockResult{
				err: errors.New("db error"),
			},
			notFound: store.ErrMovieNotFound,
			wantMsg:  "failed to get rows affected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRowsAffected(tt.result, tt.notFound)

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.wantMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantMsg)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestMapUniqueViolation(t *testing.T) {
	uniqueErr := &pgconn.PgError{
		Code:           uniqueViolationCode,
		ConstraintName: "genres_name_key",
	}

	tests := []struct {
		name          string
		err           error
		specificError error
		expectedErr   error
	}{
		{
			name:          "unique_violation_with_specific_error",
			err:           uniqueErr,
			specificError: store.ErrGenreNameExists,
			expectedErr:   store.ErrGenreNameExists,
		},
		{
			name:          "unique_violation_without_specific_error",
			err:           uniqueErr,
			specificError: nil,
			expectedErr:   store.ErrDuplicate,
		},
		{
			name:          "non_unique_violation_passes_through",
			err:           errors.New("some other error"),
			specificError: store.ErrGenreNameExists,
		},
		{
			name:          "nil_error",
			err:           nil,
			specificError: store.ErrGenreNameExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MapUniqueViolation(tt.err, tt.specificError)

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, result, tt.expectedErr)
			default:
				assert.Equal(t, tt.err, result, "non-unique-violation errors pass through unchanged")
			}
		})
	}
}
