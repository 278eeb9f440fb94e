package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/kinolab/cinema-api/internal/domain"
	"github.com/kinolab/cinema-api/internal/store"
)

// NewMovieRepositoryAdapter creates a new adapter that allows a
// store.MovieStore to be used where a MovieRepository is expected.
func NewMovieRepositoryAdapter(movieStore store.MovieStore, db *sql.DB) MovieRepository {
	return &movieRepositoryAdapter{
		movieStore: movieStore,
		db:         db,
	}
}

// movieRepositoryAdapter adapts a store.MovieStore to the MovieRepository interface
type movieRepositoryAdapter struct {
	movieStore store.MovieStore
	db         *sql.DB
}

// Create implements MovieRepository.Create
func (a *movieRepositoryAdapter) Create(ctx context.Context, movie *domain.Movie) error {
	return a.movieStore.Create(ctx, movie)
}

// GetByID implements MovieRepository.GetByID
func (a *movieRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	return a.movieStore.GetByID(ctx, id)
}

// Update implements MovieRepository.Update
func (a *movieRepositoryAdapter) Update(ctx context.Context, movie *domain.Movie) error {
	return a.movieStore.Update(ctx, movie)
}

// ReplaceGenres implements MovieRepository.ReplaceGenres
func (a *movieRepositoryAdapter) ReplaceGenres(
	ctx context.Context,
	movieID uuid.UUID,
	genreIDs []uuid.UUID,
) error {
	return a.movieStore.ReplaceGenres(ctx, movieID, genreIDs)
}

// ReplaceActors implements MovieRepository.ReplaceActors
func (a *movieRepositoryAdapter) ReplaceActors(
	ctx context.Context,
	movieID uuid.UUID,
	actorIDs []uuid.UUID,
) error {
	return a.movieStore.ReplaceActors(ctx, movieID, actorIDs)
}

// WithTx implements MovieRepository.WithTx
func (a *movieRepositoryAdapter) WithTx(tx *sql.Tx) MovieRepository {
	return &movieRepositoryAdapter{
		movieStore: a.movieStore.WithTx(tx),
		db:         a.db,
	}
}

// DB implements MovieRepository.DB
func (a *movieRepositoryAdapter) DB() *sql.DB {
	return a.db
}
