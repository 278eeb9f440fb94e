package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kinolab/cinema-api/internal/domain"
	"github.com/kinolab/cinema-api/internal/platform/logger"
	"github.com/kinolab/cinema-api/internal/store"
)

// CatalogServiceError is a custom error type for catalog service errors.
type CatalogServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for CatalogServiceError.
func (e *CatalogServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("catalog service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CatalogServiceError) Unwrap() error {
	return e.Err
}

// NewCatalogServiceError creates a new CatalogServiceError.
func NewCatalogServiceError(operation, message string, err error) *CatalogServiceError {
	return &CatalogServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// MovieRepository defines the persistence surface the catalog service needs.
// It mirrors store.MovieStore plus access to the underlying pool for
// transaction management.
type MovieRepository interface {
	// Create saves a new movie row to the store
	Create(ctx context.Context, movie *domain.Movie) error

	// GetByID retrieves a movie with its associations hydrated
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Movie, error)

	// Update modifies an existing movie's scalar fields
	Update(ctx context.Context, movie *domain.Movie) error

	// ReplaceGenres replaces the movie's genre association set
	ReplaceGenres(ctx context.Context, movieID uuid.UUID, genreIDs []uuid.UUID) error

	// ReplaceActors replaces the movie's actor association set
	ReplaceActors(ctx context.Context, movieID uuid.UUID, actorIDs []uuid.UUID) error

	// WithTx returns a new repository instance that uses the provided transaction
	// This is used for transactional operations
	WithTx(tx *sql.Tx) MovieRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// MovieInput carries the full intended state of a movie for a create or a
// full-replace update, association sets included. Unknown genre or actor IDs
// fail the whole operation with store.ErrInvalidEntity.
type MovieInput struct {
	Title           string
	Description     string
	DurationMinutes int
	GenreIDs        []uuid.UUID
	ActorIDs        []uuid.UUID
}

// CatalogService provides movie operations that touch the movie row and its
// association sets together. Each write runs in a single transaction so a
// movie is never stored with a partial association set.
type CatalogService interface {
	// CreateMovie creates the movie row and both association sets atomically,
	// then returns the stored movie with associations hydrated.
	CreateMovie(ctx context.Context, input MovieInput) (*domain.Movie, error)

	// UpdateMovie replaces a movie's scalar fields and association sets
	// atomically, then returns the updated movie with associations hydrated.
	// Returns store.ErrMovieNotFound (wrapped) if the movie does not exist.
	UpdateMovie(ctx context.Context, movieID uuid.UUID, input MovieInput) (*domain.Movie, error)
}

// catalogServiceImpl implements the CatalogService interface
type catalogServiceImpl struct {
	movieRepo MovieRepository
	logger    *slog.Logger
}

// NewCatalogService creates a new CatalogService.
// It returns an error if the repository is nil.
func NewCatalogService(movieRepo MovieRepository, logger *slog.Logger) (CatalogService, error) {
	if movieRepo == nil {
		return nil, &CatalogServiceError{
			Operation: "create_service",
			Message:   "movieRepo cannot be nil",
		}
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &catalogServiceImpl{
		movieRepo: movieRepo,
		logger:    logger.With(slog.String("component", "catalog_service")),
	}, nil
}

// CreateMovie implements CatalogService.CreateMovie
func (s *catalogServiceImpl) CreateMovie(
	ctx context.Context,
	input MovieInput,
) (*domain.Movie, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	movie, err := domain.NewMovie(input.Title, input.Description, input.DurationMinutes)
	if err != nil {
		log.Debug("rejected invalid movie input",
			slog.String("error", err.Error()))
		return nil, NewCatalogServiceError("create_movie", "invalid movie data", err)
	}

	err = store.RunInTransaction(
		ctx,
		s.movieRepo.DB(),
		func(ctx context.Context, tx *sql.Tx) error {
			txRepo := s.movieRepo.WithTx(tx)

			if err := txRepo.Create(ctx, movie); err != nil {
				log.Error("failed to create movie in transaction",
					slog.String("error", err.Error()),
					slog.String("movie_id", movie.ID.String()))
				return NewCatalogServiceError("create_movie", "failed to save movie", err)
			}

			if err := txRepo.ReplaceGenres(ctx, movie.ID, input.GenreIDs); err != nil {
				log.Error("failed to save genre associations in transaction",
					slog.String("error", err.Error()),
					slog.String("movie_id", movie.ID.String()))
				return NewCatalogServiceError(
					"create_movie",
					"failed to save genre associations",
					err,
				)
			}

			if err := txRepo.ReplaceActors(ctx, movie.ID, input.ActorIDs); err != nil {
				log.Error("failed to save actor associations in transaction",
					slog.String("error", err.Error()),
					slog.String("movie_id", movie.ID.String()))
				return NewCatalogServiceError(
					"create_movie",
					"failed to save actor associations",
					err,
				)
			}

			return nil
		},
	)
	if err != nil {
		// Error is already wrapped in the transaction
		return nil, err
	}

	log.Info("movie created",
		slog.String("movie_id", movie.ID.String()),
		slog.Int("genre_count", len(input.GenreIDs)),
		slog.Int("actor_count", len(input.ActorIDs)))

	// Re-read after commit so the caller gets hydrated associations.
	created, err := s.movieRepo.GetByID(ctx, movie.ID)
	if err != nil {
		log.Error("failed to load movie after create",
			slog.String("error", err.Error()),
			slog.String("movie_id", movie.ID.String()))
		return nil, NewCatalogServiceError("create_movie", "failed to load created movie", err)
	}

	return created, nil
}

// UpdateMovie implements CatalogService.UpdateMovie
func (s *catalogServiceImpl) UpdateMovie(
	ctx context.Context,
	movieID uuid.UUID,
	input MovieInput,
) (*domain.Movie, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(
		ctx,
		s.movieRepo.DB(),
		func(ctx context.Context, tx *sql.Tx) error {
			txRepo := s.movieRepo.WithTx(tx)

			movie, err := txRepo.GetByID(ctx, movieID)
			if err != nil {
				log.Debug("failed to load movie for update",
					slog.String("error", err.Error()),
					slog.String("movie_id", movieID.String()))
				return NewCatalogServiceError("update_movie", "failed to load movie", err)
			}

			if err := movie.UpdateDetails(
				input.Title,
				input.Description,
				input.DurationMinutes,
			); err != nil {
				log.Debug("rejected invalid movie input",
					slog.String("error", err.Error()),
					slog.String("movie_id", movieID.String()))
				return NewCatalogServiceError("update_movie", "invalid movie data", err)
			}

			if err := txRepo.Update(ctx, movie); err != nil {
				log.Error("failed to update movie in transaction",
					slog.String("error", err.Error()),
					slog.String("movie_id", movieID.String()))
				return NewCatalogServiceError("update_movie", "failed to save movie", err)
			}

			if err := txRepo.ReplaceGenres(ctx, movieID, input.GenreIDs); err != nil {
				log.Error("failed to replace genre associations in transaction",
					slog.String("error", err.Error()),
					slog.String("movie_id", movieID.String()))
				return NewCatalogServiceError(
					"update_movie",
					"failed to replace genre associations",
					err,
				)
			}

			if err := txRepo.ReplaceActors(ctx, movieID, input.ActorIDs); err != nil {
				log.Error("failed to replace actor associations in transaction",
					slog.String("error", err.Error()),
					slog.String("movie_id", movieID.String()))
				return NewCatalogServiceError(
					"update_movie",
					"failed to replace actor associations",
					err,
				)
			}

			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	log.Info("movie updated",
		slog.String("movie_id", movieID.String()),
		slog.Int("genre_count", len(input.GenreIDs)),
		slog.Int("actor_count", len(input.ActorIDs)))

	updated, err := s.movieRepo.GetByID(ctx, movieID)
	if err != nil {
		log.Error("failed to load movie after update",
			slog.String("error", err.Error()),
			slog.String("movie_id", movieID.String()))
		return nil, NewCatalogServiceError("update_movie", "failed to load updated movie", err)
	}

	return updated, nil
}
