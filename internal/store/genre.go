package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/kinolab/cinema-api/internal/domain"
)

// GenreStore defines the interface for genre data persistence.
type GenreStore interface {
	// Create saves a new genre to the store.
	// Returns ErrGenreNameExists if the name is already taken.
	Create(ctx context.Context, genre *domain.Genre) error

	// GetByID retrieves a genre by its unique ID.
	// Returns ErrGenreNotFound if the genre does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Genre, error)

	// List retrieves all genres ordered by name.
	// The result is never nil; an empty catalog yields an empty slice.
	List(ctx context.Context) ([]*domain.Genre, error)

	// Update modifies an existing genre.
	// Returns ErrGenreNotFound if the genre does not exist.
	// Returns ErrGenreNameExists if renaming to a name that already exists.
	Update(ctx context.Context, genre *domain.Genre) error

	// Delete removes a genre from the store by its ID. Movie associations
	// referencing it are removed; the movies themselves are untouched.
	// Returns ErrGenreNotFound if the genre does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new GenreStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) GenreStore
}
