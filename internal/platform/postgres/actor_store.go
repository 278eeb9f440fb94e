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

// PostgresActorStore implements the store.ActorStore interface using PostgreSQL.
type PostgresActorStore struct {
	db store.DBTX
}

// NewPostgresActorStore creates a new PostgresActorStore.
func NewPostgresActorStore(db store.DBTX) *PostgresActorStore {
	return &PostgresActorStore{
		db: db,
	}
}

// Ensure PostgresActorStore implements store.ActorStore interface
var _ store.ActorStore = (*PostgresActorStore)(nil)

// WithTx returns a copy of the store bound to the given transaction.
func (s *PostgresActorStore) WithTx(tx *sql.Tx) store.ActorStore {
	return &PostgresActorStore{
		db: tx,
	}
}

// Create persists a new actor.
func (s *PostgresActorStore) Create(ctx context.Context, actor *domain.Actor) error {
	log := logger.FromContext(ctx)

	if err := actor.Validate(); err != nil {
		log.Warn("actor validation failed during create",
			"error", err,
			"actor_id", actor.ID)
		return err
	}

	query := `
		INSERT INTO actors (id, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		actor.ID,
		actor.FirstName,
		actor.LastName,
		actor.CreatedAt,
		actor.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create actor",
			"error", err,
			"actor_id", actor.ID)
		return MapError(err)
	}

	log.Info("actor created", "actor_id", actor.ID)
	return nil
}

// GetByID retrieves an actor by their ID.
// Returns store.ErrActorNotFound if the actor does not exist.
func (s *PostgresActorStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Actor, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, first_name, last_name, created_at, updated_at
		FROM actors
		WHERE id = $1
	`

	var actor domain.Actor
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&actor.ID,
		&actor.FirstName,
		&actor.LastName,
		&actor.CreatedAt,
		&actor.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("actor not found", "actor_id", id)
			return nil, store.ErrActorNotFound
		}
		log.Error("failed to get actor by ID",
			"error", err,
			"actor_id", id)
		return nil, MapError(err)
	}

	return &actor, nil
}

// List retrieves all actors ordered by last name, then first name.
// Never returns nil.
func (s *PostgresActorStore) List(ctx context.Context) ([]*domain.Actor, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, first_name, last_name, created_at, updated_at
		FROM actors
		ORDER BY last_name, first_name, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query actors", "error", err)
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", "error", err)
		}
	}()

	var actors []*domain.Actor
	for rows.Next() {
		var actor domain.Actor
		err := rows.Scan(
			&actor.ID,
			&actor.FirstName,
			&actor.LastName,
			&actor.CreatedAt,
			&actor.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan actor row", "error", err)
			return nil, err
		}
		actors = append(actors, &actor)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", "error", err)
		return nil, err
	}

	if actors == nil {
		actors = []*domain.Actor{}
	}

	return actors, nil
}

// Update modifies an existing actor.
// Returns store.ErrActorNotFound if the actor does not exist.
func (s *PostgresActorStore) Update(ctx context.Context, actor *domain.Actor) error {
	log := logger.FromContext(ctx)

	if err := actor.Validate(); err != nil {
		log.Warn("actor validation failed during update",
			"error", err,
			"actor_id", actor.ID)
		return err
	}

	query := `
		UPDATE actors
		SET first_name = $1, last_name = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		actor.FirstName,
		actor.LastName,
		actor.UpdatedAt,
		actor.ID,
	)
	if err != nil {
		log.Error("failed to update actor",
			"error", err,
			"actor_id", actor.ID)
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrActorNotFound); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("actor not found for update", "actor_id", actor.ID)
		}
		return err
	}

	log.Info("actor updated", "actor_id", actor.ID)
	return nil
}

// Delete removes an actor. The cascade on movie_actors detaches them from
// any movies they appeared in.
// Returns store.ErrActorNotFound if the actor does not exist.
func (s *PostgresActorStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx, `DELETE FROM actors WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete actor",
			"error", err,
			"actor_id", id)
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrActorNotFound); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("actor not found for delete", "actor_id", id)
		}
		return err
	}

	log.Info("actor deleted", "actor_id", id)
	return nil
}
