package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/kinolab/cinema-api/internal/domain"
	"github.com/kinolab/cinema-api/internal/service"
)

// MockCatalogService implements service.CatalogService for testing
type MockCatalogService struct {
	// CreateMovieFn allows test cases to mock the CreateMovie behavior
	CreateMovieFn func(ctx context.Context, input service.MovieInput) (*domain.Movie, error)

	// UpdateMovieFn allows test cases to mock the UpdateMovie behavior
	UpdateMovieFn func(ctx context.Context, movieID uuid.UUID, input service.MovieInput) (*domain.Movie, error)

	// Default values used when functions aren't explicitly defined
	Movie *domain.Movie
	Err   error
}

// CreateMovie implements the service.CatalogService interface
func (m *MockCatalogService) CreateMovie(
	ctx context.Context,
	input service.MovieInput,
) (*domain.Movie, error) {
	if m.CreateMovieFn != nil {
		return m.CreateMovieFn(ctx, input)
	}

	return m.Movie, m.Err
}

// UpdateMovie implements the service.CatalogService interface
func (m *MockCatalogService) UpdateMovie(
	ctx context.Context,
	movieID uuid.UUID,
	input service.MovieInput,
) (*domain.Movie, error) {
	if m.UpdateMovieFn != nil {
		return m.UpdateMovieFn(ctx, movieID, input)
	}

	return m.Movie, m.Err
}
