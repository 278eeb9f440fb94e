package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/kinolab/cinema-api/internal/domain"
)

// ActorStore defines the interface for actor data persistence.
type ActorStore interface {
	// Create saves a new actor to the store.
	Create(ctx context.Context, actor *domain.Actor) error

	// GetByID retrieves an actor by their unique ID.
	// Returns ErrActorNotFound if the actor does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Actor, error)

	// List retrieves all actors ordered by last name, then first name.
	// The result is never nil; an empty catalog yields an empty slice.
	List(ctx context.Context) ([]*domain.Actor, error)

	// Update modifies an existing actor.
	// Returns ErrActorNotFound if the actor does not exist.
	Update(ctx context.Context, actor *domain.Actor) error

	// Delete removes an actor from the store by their ID. Movie associations
	// referencing them are removed; the movies themselves are untouched.
	// Returns ErrActorNotFound if the actor does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ActorStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ActorStore
}
