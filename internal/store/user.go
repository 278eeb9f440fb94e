package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/kinolab/cinema-api/internal/domain"
)

// UserStore defines the interface for user account persistence, covering
// both regular viewers and staff accounts.
type UserStore interface {
	// Create saves a new user. The plaintext Password on the domain User is
	// hashed by the implementation and never stored.
	// Returns ErrEmailExists when the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID, hash included, plaintext never.
	// Returns ErrUserNotFound if no such user exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email for the login flow.
	// Returns ErrUserNotFound if no such user exists.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update replaces a user's stored details with the given complete user,
	// HashedPassword included. A set plaintext Password is re-hashed first.
	// Returns ErrUserNotFound for unknown IDs and ErrEmailExists when the
	// new email collides with another account.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user account.
	// Returns ErrUserNotFound if no such user exists.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore bound to the given transaction; the caller
	// owns the transaction lifecycle.
	WithTx(tx *sql.Tx) UserStore
}
