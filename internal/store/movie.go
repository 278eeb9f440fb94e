package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/kinolab/cinema-api/internal/domain"
)

// MovieFilter narrows the result set of MovieStore.List. Zero-value fields
// are ignored. All present conditions must hold for a movie to match (AND).
type MovieFilter struct {
	// Title matches movies whose title contains the value,
	// case-insensitively.
	Title string

	// GenreIDs matches movies associated with at least one of the given
	// genres (ANY-of).
	GenreIDs []uuid.UUID

	// ActorIDs matches movies associated with at least one of the given
	// actors (ANY-of).
	ActorIDs []uuid.UUID
}

// MovieStore defines the interface for movie data persistence, including the
// genre and actor association sets.
type MovieStore interface {
	// Create saves a new movie row to the store. Associations are managed
	// separately with ReplaceGenres/ReplaceActors, typically inside the same
	// transaction via WithTx.
	// Returns validation errors from the domain Movie if data is invalid.
	Create(ctx context.Context, movie *domain.Movie) error

	// GetByID retrieves a movie by its unique ID with its genre and actor
	// associations hydrated (sorted by name for deterministic output).
	// Returns ErrMovieNotFound if the movie does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Movie, error)

	// List retrieves all movies matching the filter, hydrated like GetByID
	// and ordered by creation time. An empty filter returns the whole
	// catalog. The result is never nil; no matches yield an empty slice.
	List(ctx context.Context, filter MovieFilter) ([]*domain.Movie, error)

	// Update modifies an existing movie's scalar fields.
	// Returns ErrMovieNotFound if the movie does not exist.
	Update(ctx context.Context, movie *domain.Movie) error

	// Delete removes a movie from the store by its ID. Association rows are
	// removed with it.
	// Returns ErrMovieNotFound if the movie does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ReplaceGenres replaces the movie's genre set with the given genre IDs.
	// Returns ErrInvalidEntity if any genre ID does not exist.
	ReplaceGenres(ctx context.Context, movieID uuid.UUID, genreIDs []uuid.UUID) error

	// ReplaceActors replaces the movie's actor set with the given actor IDs.
	// Returns ErrInvalidEntity if any actor ID does not exist.
	ReplaceActors(ctx context.Context, movieID uuid.UUID, actorIDs []uuid.UUID) error

	// WithTx returns a new MovieStore instance that uses the provided transaction.
	// This allows movie creation and association writes to commit atomically.
	WithTx(tx *sql.Tx) MovieStore
}
