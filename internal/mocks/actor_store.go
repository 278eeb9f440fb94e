package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/kinolab/cinema-api/internal/domain"
	"github.com/kinolab/cinema-api/internal/store"
)

// MockActorStore implements store.ActorStore for testing
type MockActorStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, actor *domain.Actor) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Actor, error)
	ListFn    func(ctx context.Context) ([]*domain.Actor, error)
	UpdateFn  func(ctx context.Context, actor *domain.Actor) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Actors map[uuid.UUID]*domain.Actor
}

// NewMockActorStore creates a new mock store with initialized defaults
func NewMockActorStore() *MockActorStore {
	return &MockActorStore{
		Actors: make(map[uuid.UUID]*domain.Actor),
	}
}

// Create implements the ActorStore interface
func (m *MockActorStore) Create(ctx context.Context, actor *domain.Actor) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, actor)
	}

	m.Actors[actor.ID] = actor
	return nil
}

// GetByID implements the ActorStore interface
func (m *MockActorStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Actor, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	actor, exists := m.Actors[id]
	if !exists {
		return nil, store.ErrActorNotFound
	}

	return actor, nil
}

// List implements the ActorStore interface. The default implementation
// returns all stored actors ordered by last name then first name, like the
// real store.
func (m *MockActorStore) List(ctx context.Context) ([]*domain.Actor, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	actors := make([]*domain.Actor, 0, len(m.Actors))
	for _, actor := range m.Actors {
		actors = append(actors, actor)
	}
	sort.Slice(actors, func(i, j int) bool {
		if actors[i].LastName != actors[j].LastName {
			return actors[i].LastName < actors[j].LastName
		}
		return actors[i].FirstName < actors[j].FirstName
	})

	return actors, nil
}

// Update implements the ActorStore interface
func (m *MockActorStore) Update(ctx context.Context, actor *domain.Actor) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, actor)
	}

	if _, exists := m.Actors[actor.ID]; !exists {
		return store.ErrActorNotFound
	}

	m.Actors[actor.ID] = actor
	return nil
}

// Delete implements the ActorStore interface
func (m *MockActorStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Actors[id]; !exists {
		return store.ErrActorNotFound
	}

	delete(m.Actors, id)
	return nil
}

// WithTx implements the ActorStore interface for transaction support
func (m *MockActorStore) WithTx(tx *sql.Tx) store.ActorStore {
	// For mock purposes, just return the same mock
	return m
}
