package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/kinolab/cinema-api/internal/domain"
	"github.com/kinolab/cinema-api/internal/platform/logger"
	"github.com/kinolab/cinema-api/internal/store"
)

// PostgresGenreStore implements the store.GenreStore interface using PostgreSQL.
type PostgresGenreStore struct {
	db store.DBTX
}

// NewPostgresGenreStore creates a new PostgresGenreStore.
func NewPostgresGenreStore(db store.DBTX) *PostgresGenreStore {
	return &PostgresGenreStore{
		db: db,
	}
}

// Ensure PostgresGenreStore implements store.GenreStore interface
var _ store.GenreStore = (*PostgresGenreStore)(nil)

// WithTx returns a copy of the store bound to the given transaction.
func (s *PostgresGenreStore) WithTx(tx *sql.Tx) store.GenreStore {
	return &PostgresGenreStore{
		db: tx,
	}
}

// Create persists a new genre.
// Returns store.ErrGenreNameExists if the name is already taken.
func (s *PostgresGenreStore) Create(ctx context.Context, genre *domain.Genre) error {
	log := logger.FromContext(ctx)

	if err := genre.Validate(); err != nil {
		log.Warn("genre validation failed during create",
			"error", err,
			"genre_id", genre.ID)
		return err
	}

	query := `
		INSERT INTO genres (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query, genre.ID, genre.Name, genre.CreatedAt, genre.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("genre name already exists", "name", genre.Name)
			return MapUniqueViolation(err, store.ErrGenreNameExists)
		}
		log.Error("failed to create genre",
			"error", err,
			"genre_id", genre.ID)
		return MapError(err)
	}

	log.Info("genre created",
		"genre_id", genre.ID,
		"name", genre.Name)
	return nil
}

// GetByID retrieves a genre by its ID.
// Returns store.ErrGenreNotFound if the genre does not exist.
func (s *PostgresGenreStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Genre, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, name, created_at, updated_at
		FROM genres
		WHERE id = $1
	`

	var genre domain.Genre
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&genre.ID, &genre.Name, &genre.CreatedAt, &genre.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("genre not found", "genre_id", id)
			return nil, store.ErrGenreNotFound
		}
		log.Error("failed to get genre by ID",
			"error", err,
			"genre_id", id)
		return nil, MapError(err)
	}

	return &genre, nil
}

// List retrieves all genres ordered by name. Never returns nil.
func (s *PostgresGenreStore) List(ctx context.Context) ([]*domain.Genre, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, name, created_at, updated_at
		FROM genres
		ORDER BY name, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query genres", "error", err)
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", "error", err)
		}
	}()

	var genres []*domain.Genre
	for rows.Next() {
		var genre domain.Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.CreatedAt, &genre.UpdatedAt); err != nil {
			log.Error("failed to scan genre row", "error", err)
			return nil, err
		}
		genres = append(genres, &genre)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", "error", err)
		return nil, err
	}

	if genres == nil {
		genres = []*domain.Genre{}
	}

	return genres, nil
}

// Update modifies an existing genre.
// Returns store.ErrGenreNotFound if the genre does not exist and
// store.ErrGenreNameExists if renaming to a taken name.
func (s *PostgresGenreStore) Update(ctx context.Context, genre *domain.Genre) error {
	log := logger.FromContext(ctx)

	if err := genre.Validate(); err != nil {
		log.Warn("genre validation failed during update",
			"error", err,
			"genre_id", genre.ID)
		return err
	}

	query := `
		UPDATE genres
		SET name = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, genre.Name, genre.UpdatedAt, genre.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("genre name already exists", "name", genre.Name)
			return MapUniqueViolation(err, store.ErrGenreNameExists)
		}
		log.Error("failed to update genre",
			"error", err,
			"genre_id", genre.ID)
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrGenreNotFound); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("genre not found for update", "genre_id", genre.ID)
		}
		return err
	}

	log.Info("genre updated",
		"genre_id", genre.ID,
		"name", genre.Name)
	return nil
}

// Delete removes a genre. The cascade on movie_genres detaches it from any
// movies that carried it.
// Returns store.ErrGenreNotFound if the genre does not exist.
func (s *PostgresGenreStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete genre",
			"error", err,
			"genre_id", id)
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrGenreNotFound); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("genre not found for delete", "genre_id", id)
		}
		return err
	}

	log.Info("genre deleted", "genre_id", id)
	return nil
}
