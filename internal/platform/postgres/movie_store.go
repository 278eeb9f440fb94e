package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/kinolab/cinema-api/internal/domain"
	"github.com/kinolab/cinema-api/internal/platform/logger"
	"github.com/kinolab/cinema-api/internal/store"
)

// PostgresMovieStore implements the store.MovieStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMovieStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMovieStore creates a new PostgreSQL implementation of the
// MovieStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresMovieStore(db store.DBTX, logger *slog.Logger) *PostgresMovieStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMovieStore{
		db:     db,
		logger: logger.With(slog.String("component", "movie_store")),
	}
}

// Ensure PostgresMovieStore implements store.MovieStore interface
var _ store.MovieStore = (*PostgresMovieStore)(nil)

// WithTx implements store.MovieStore.WithTx
// It returns a copy of the store bound to the given transaction, so that a
// movie insert and its association writes can commit or roll back together.
func (s *PostgresMovieStore) WithTx(tx *sql.Tx) store.MovieStore {
	return &PostgresMovieStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.MovieStore.Create
// It saves the movie row only; associations are written separately with
// ReplaceGenres/ReplaceActors, normally inside the same transaction.
// Returns validation errors from the domain Movie if data is invalid.
func (s *PostgresMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := movie.Validate(); err != nil {
		log.Warn("movie validation failed during create",
			slog.String("error", err.Error()),
			slog.String("movie_id", movie.ID.String()))
		return err
	}

	query := `
		INSERT INTO movies (id, title, description, duration_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.DurationMinutes,
		movie.CreatedAt,
		movie.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create movie",
			slog.String("error", err.Error()),
			slog.String("movie_id", movie.ID.String()))
		return MapError(err)
	}

	log.Info("movie created",
		slog.String("movie_id", movie.ID.String()),
		slog.String("title", movie.Title))
	return nil
}

// GetByID implements store.MovieStore.GetByID
// It retrieves a movie with its genre and actor associations hydrated.
// Returns store.ErrMovieNotFound if the movie does not exist.
func (s *PostgresMovieStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, duration_minutes, created_at, updated_at
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.DurationMinutes,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("movie not found", slog.String("movie_id", id.String()))
			return nil, store.ErrMovieNotFound
		}
		log.Error("failed to get movie by ID",
			slog.String("error", err.Error()),
			slog.String("movie_id", id.String()))
		return nil, MapError(err)
	}

	if err := s.hydrateAssociations(ctx, []*domain.Movie{&movie}); err != nil {
		return nil, err
	}

	return &movie, nil
}

// List implements store.MovieStore.List
// It retrieves all movies matching the filter, hydrated like GetByID and
// ordered by creation time. The result is never nil.
func (s *PostgresMovieStore) List(
	ctx context.Context,
	filter store.MovieFilter,
) ([]*domain.Movie, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT m.id, m.title, m.description, m.duration_minutes, m.created_at, m.updated_at
		FROM movies m
	`
	conditions, args := buildMovieConditions(filter)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY m.created_at, m.id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query movies",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var movies []*domain.Movie
	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.DurationMinutes,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan movie row",
				slog.String("error", err.Error()))
			return nil, err
		}

		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no movies matched
	if movies == nil {
		movies = []*domain.Movie{}
	}

	if err := s.hydrateAssociations(ctx, movies); err != nil {
		return nil, err
	}

	log.Debug("listed movies", slog.Int("count", len(movies)))
	return movies, nil
}

// Update implements store.MovieStore.Update
// It modifies the movie's scalar fields only; associations are untouched.
// Returns store.ErrMovieNotFound if the movie does not exist.
func (s *PostgresMovieStore) Update(ctx context.Context, movie *domain.Movie) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := movie.Validate(); err != nil {
		log.Warn("movie validation failed during update",
			slog.String("error", err.Error()),
			slog.String("movie_id", movie.ID.String()))
		return err
	}

	query := `
		UPDATE movies
		SET title = $1, description = $2, duration_minutes = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		movie.Title,
		movie.Description,
		movie.DurationMinutes,
		movie.UpdatedAt,
		movie.ID,
	)
	if err != nil {
		log.Error("failed to update movie",
			slog.String("error", err.Error()),
			slog.String("movie_id", movie.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrMovieNotFound); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("movie not found for update",
				slog.String("movie_id", movie.ID.String()))
		}
		return err
	}

	log.Info("movie updated",
		slog.String("movie_id", movie.ID.String()),
		slog.String("title", movie.Title))
	return nil
}

// Delete implements store.MovieStore.Delete
// Association rows are removed by the ON DELETE CASCADE on the join tables.
// Returns store.ErrMovieNotFound if the movie does not exist.
func (s *PostgresMovieStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete movie",
			slog.String("error", err.Error()),
			slog.String("movie_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrMovieNotFound); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("movie not found for delete",
				slog.String("movie_id", id.String()))
		}
		return err
	}

	log.Info("movie deleted", slog.String("movie_id", id.String()))
	return nil
}

// ReplaceGenres implements store.MovieStore.ReplaceGenres
// It replaces the movie's genre set with the given IDs. Duplicate IDs
// collapse to a single association row.
// Returns store.ErrInvalidEntity if any genre ID does not exist.
func (s *PostgresMovieStore) ReplaceGenres(
	ctx context.Context,
	movieID uuid.UUID,
	genreIDs []uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(
		ctx, `DELETE FROM movie_genres WHERE movie_id = $1`, movieID,
	); err != nil {
		log.Error("failed to clear movie genres",
			slog.String("error", err.Error()),
			slog.String("movie_id", movieID.String()))
		return MapError(err)
	}

	query := `
		INSERT INTO movie_genres (movie_id, genre_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	for _, genreID := range genreIDs {
		_, err := s.db.ExecContext(ctx, query, movieID, genreID)
		if err != nil {
			if IsForeignKeyViolation(err) {
				log.Warn("foreign key violation during genre association",
					slog.String("movie_id", movieID.String()),
					slog.String("genre_id", genreID.String()))
				return fmt.Errorf("%w: genre with ID %s not found",
					store.ErrInvalidEntity, genreID)
			}
			log.Error("failed to associate genre",
				slog.String("error", err.Error()),
				slog.String("movie_id", movieID.String()),
				slog.String("genre_id", genreID.String()))
			return MapError(err)
		}
	}

	return nil
}

// ReplaceActors implements store.MovieStore.ReplaceActors
// It replaces the movie's actor set with the given IDs. Duplicate IDs
// collapse to a single association row.
// Returns store.ErrInvalidEntity if any actor ID does not exist.
func (s *PostgresMovieStore) ReplaceActors(
	ctx context.Context,
	movieID uuid.UUID,
	actorIDs []uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(
		ctx, `DELETE FROM movie_actors WHERE movie_id = $1`, movieID,
	); err != nil {
		log.Error("failed to clear movie actors",
			slog.String("error", err.Error()),
			slog.String("movie_id", movieID.String()))
		return MapError(err)
	}

	query := `
		INSERT INTO movie_actors (movie_id, actor_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	for _, actorID := range actorIDs {
		_, err := s.db.ExecContext(ctx, query, movieID, actorID)
		if err != nil {
			if IsForeignKeyViolation(err) {
				log.Warn("foreign key violation during actor association",
					slog.String("movie_id", movieID.String()),
					slog.String("actor_id", actorID.String()))
				return fmt.Errorf("%w: actor with ID %s not found",
					store.ErrInvalidEntity, actorID)
			}
			log.Error("failed to associate actor",
				slog.String("error", err.Error()),
				slog.String("movie_id", movieID.String()),
				slog.String("actor_id", actorID.String()))
			return MapError(err)
		}
	}

	return nil
}

// buildMovieConditions translates a MovieFilter into SQL predicates and their
// positional arguments. Every present filter field contributes exactly one
// condition; the caller joins them with AND. Association filters use EXISTS
// subqueries so a movie matching several of the requested IDs still appears
// exactly once in the result.
func buildMovieConditions(filter store.MovieFilter) ([]string, []any) {
	var conditions []string
	var args []any

	if filter.Title != "" {
		args = append(args, "%"+escapeLikePattern(filter.Title)+"%")
		conditions = append(conditions, fmt.Sprintf("m.title ILIKE $%d", len(args)))
	}

	if len(filter.GenreIDs) > 0 {
		placeholders := make([]string, 0, len(filter.GenreIDs))
		for _, id := range filter.GenreIDs {
			args = append(args, id)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM movie_genres mg WHERE mg.movie_id = m.id AND mg.genre_id IN (%s))",
			strings.Join(placeholders, ", ")))
	}

	if len(filter.ActorIDs) > 0 {
		placeholders := make([]string, 0, len(filter.ActorIDs))
		for _, id := range filter.ActorIDs {
			args = append(args, id)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM movie_actors ma WHERE ma.movie_id = m.id AND ma.actor_id IN (%s))",
			strings.Join(placeholders, ", ")))
	}

	return conditions, args
}

// escapeLikePattern escapes the ILIKE wildcard characters so that
// user-supplied substrings match literally. Backslash is the default escape
// character in PostgreSQL LIKE patterns.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// hydrateAssociations loads the genre and actor sets for the given movies in
// one batched query per association table and distributes them. Association
// slices come back sorted by name and are never nil.
func (s *PostgresMovieStore) hydrateAssociations(
	ctx context.Context,
	movies []*domain.Movie,
) error {
	if len(movies) == 0 {
		return nil
	}

	index := make(map[uuid.UUID]*domain.Movie, len(movies))
	placeholders := make([]string, 0, len(movies))
	args := make([]any, 0, len(movies))
	for _, movie := range movies {
		movie.Genres = []domain.Genre{}
		movie.Actors = []domain.Actor{}
		index[movie.ID] = movie
		args = append(args, movie.ID)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}
	idList := strings.Join(placeholders, ", ")

	if err := s.hydrateGenres(ctx, index, idList, args); err != nil {
		return err
	}
	return s.hydrateActors(ctx, index, idList, args)
}

// hydrateGenres attaches each movie's genres, sorted by name.
func (s *PostgresMovieStore) hydrateGenres(
	ctx context.Context,
	index map[uuid.UUID]*domain.Movie,
	idList string,
	args []any,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT mg.movie_id, g.id, g.name, g.created_at, g.updated_at
		FROM movie_genres mg
		JOIN genres g ON g.id = mg.genre_id
		WHERE mg.movie_id IN (%s)
		ORDER BY g.name, g.id
	`, idList)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query movie genres",
			slog.String("error", err.Error()))
		return MapError(err)
	}
	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	for rows.Next() {
		var movieID uuid.UUID
		var genre domain.Genre

		err := rows.Scan(&movieID, &genre.ID, &genre.Name, &genre.CreatedAt, &genre.UpdatedAt)
		if err != nil {
			log.Error("failed to scan genre row",
				slog.String("error", err.Error()))
			return err
		}

		if movie, ok := index[movieID]; ok {
			movie.Genres = append(movie.Genres, genre)
		}
	}

	return rows.Err()
}

// hydrateActors attaches each movie's actors, sorted by last then first name.
func (s *PostgresMovieStore) hydrateActors(
	ctx context.Context,
	index map[uuid.UUID]*domain.Movie,
	idList string,
	args []any,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT ma.movie_id, a.id, a.first_name, a.last_name, a.created_at, a.updated_at
		FROM movie_actors ma
		JOIN actors a ON a.id = ma.actor_id
		WHERE ma.movie_id IN (%s)
		ORDER BY a.last_name, a.first_name, a.id
	`, idList)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query movie actors",
			slog.String("error", err.Error()))
		return MapError(err)
	}
	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	for rows.Next() {
		var movieID uuid.UUID
		var actor domain.Actor

		err := rows.Scan(
			&movieID,
			&actor.ID,
			&actor.FirstName,
			&actor.LastName,
			&actor.CreatedAt,
			&actor.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan actor row",
				slog.String("error", err.Error()))
			return err
		}

		if movie, ok := index[movieID]; ok {
			movie.Actors = append(movie.Actors, actor)
		}
	}

	return rows.Err()
}
