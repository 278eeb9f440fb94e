package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/kinolab/cinema-api/internal/domain"
	"github.com/kinolab/cinema-api/internal/store"
)

// MockMovieStore implements store.MovieStore for testing
type MockMovieStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, movie *domain.Movie) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Movie, error)
	ListFn          func(ctx context.Context, filter store.MovieFilter) ([]*domain.Movie, error)
	UpdateFn        func(ctx context.Context, movie *domain.Movie) error
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
	ReplaceGenresFn func(ctx context.Context, movieID uuid.UUID, genreIDs []uuid.UUID) error
	ReplaceActorsFn func(ctx context.Context, movieID uuid.UUID, actorIDs []uuid.UUID) error

	// Data for default implementation
	Movies map[uuid.UUID]*domain.Movie

	// Association IDs recorded by the default ReplaceGenres/ReplaceActors
	MovieGenres map[uuid.UUID][]uuid.UUID
	MovieActors map[uuid.UUID][]uuid.UUID
}

// NewMockMovieStore creates a new mock store with initialized defaults
func NewMockMovieStore() *MockMovieStore {
	return &MockMovieStore{
		Movies:      make(map[uuid.UUID]*domain.Movie),
		MovieGenres: make(map[uuid.UUID][]uuid.UUID),
		MovieActors: make(map[uuid.UUID][]uuid.UUID),
	}
}

// Create implements the MovieStore interface
func (m *MockMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, movie)
	}

	m.Movies[movie.ID] = movie
	return nil
}

// GetByID implements the MovieStore interface
func (m *MockMovieStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	movie, exists := m.Movies[id]
	if !exists {
		return nil, store.ErrMovieNotFound
	}

	return movie, nil
}

// List implements the MovieStore interface. The default implementation
// returns all stored movies and ignores the filter; set ListFn to exercise
// filtering behavior.
func (m *MockMovieStore) List(
	ctx context.Context,
	filter store.MovieFilter,
) ([]*domain.Movie, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	movies := make([]*domain.Movie, 0, len(m.Movies))
	for _, movie := range m.Movies {
		movies = append(movies, movie)
	}

	return movies, nil
}

// Update implements the MovieStore interface
func (m *MockMovieStore) Update(ctx context.Context, movie *domain.Movie) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, movie)
	}

	if _, exists := m.Movies[movie.ID]; !exists {
		return store.ErrMovieNotFound
	}

	m.Movies[movie.ID] = movie
	return nil
}

// Delete implements the MovieStore interface
func (m *MockMovieStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Movies[id]; !exists {
		return store.ErrMovieNotFound
	}

	delete(m.Movies, id)
	delete(m.MovieGenres, id)
	delete(m.MovieActors, id)
	return nil
}

// ReplaceGenres implements the MovieStore interface
func (m *MockMovieStore) ReplaceGenres(
	ctx context.Context,
	movieID uuid.UUID,
	genreIDs []uuid.UUID,
) error {
	if m.ReplaceGenresFn != nil {
		return m.ReplaceGenresFn(ctx, movieID, genreIDs)
	}

	m.MovieGenres[movieID] = genreIDs
	return nil
}

// ReplaceActors implements the MovieStore interface
func (m *MockMovieStore) ReplaceActors(
	ctx context.Context,
	movieID uuid.UUID,
	actorIDs []uuid.UUID,
) error {
	if m.ReplaceActorsFn != nil {
		return m.ReplaceActorsFn(ctx, movieID, actorIDs)
	}

	m.MovieActors[movieID] = actorIDs
	return nil
}

// WithTx implements the MovieStore interface for transaction support
func (m *MockMovieStore) WithTx(tx *sql.Tx) store.MovieStore {
	// For mock purposes, just return the same mock
	return m
}
