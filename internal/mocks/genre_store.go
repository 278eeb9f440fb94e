package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/kinolab/cinema-api/internal/domain"
	"github.com/kinolab/cinema-api/internal/store"
)

// MockGenreStore implements store.GenreStore for testing
type MockGenreStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, genre *domain.Genre) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Genre, error)
	ListFn    func(ctx context.Context) ([]*domain.Genre, error)
	UpdateFn  func(ctx context.Context, genre *domain.Genre) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Genres map[uuid.UUID]*domain.Genre
}

// NewMockGenreStore creates a new mock store with initialized defaults
func NewMockGenreStore() *MockGenreStore {
	return &MockGenreStore{
		Genres: make(map[uuid.UUID]*domain.Genre),
	}
}

// Create implements the GenreStore interface
func (m *MockGenreStore) Create(ctx context.Context, genre *domain.Genre) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, genre)
	}

	for _, existing := range m.Genres {
		if existing.Name == genre.Name {
			return store.ErrGenreNameExists
		}
	}

	m.Genres[genre.ID] = genre
	return nil
}

// GetByID implements the GenreStore interface
func (m *MockGenreStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Genre, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	genre, exists := m.Genres[id]
	if !exists {
		return nil, store.ErrGenreNotFound
	}

	return genre, nil
}

// List implements the GenreStore interface. The default implementation
// returns all stored genres ordered by name, like the real store.
func (m *MockGenreStore) List(ctx context.Context) ([]*domain.Genre, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	genres := make([]*domain.Genre, 0, len(m.Genres))
	for _, genre := range m.Genres {
		genres = append(genres, genre)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })

	return genres, nil
}

// Update implements the GenreStore interface
func (m *MockGenreStore) Update(ctx context.Context, genre *domain.Genre) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, genre)
	}

	if _, exists := m.Genres[genre.ID]; !exists {
		return store.ErrGenreNotFound
	}

	for id, existing := range m.Genres {
		if id != genre.ID && existing.Name == genre.Name {
			return store.ErrGenreNameExists
		}
	}

	m.Genres[genre.ID] = genre
	return nil
}

// Delete implements the GenreStore interface
func (m *MockGenreStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Genres[id]; !exists {
		return store.ErrGenreNotFound
	}

	delete(m.Genres, id)
	return nil
}

// WithTx implements the GenreStore interface for transaction support
func (m *MockGenreStore) WithTx(tx *sql.Tx) store.GenreStore {
	// For mock purposes, just return the same mock
	return m
}
