package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/kinolab/cinema-api/internal/domain"
	"github.com/kinolab/cinema-api/internal/store"
)

// MockUserStore implements store.UserStore for testing. By default it acts
// as an in-memory store keyed by email; individual methods can be replaced
// through the Fn fields, and GetByEmailError forces the lookup path to fail
// without losing the seeded users.
type MockUserStore struct {
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateFn     func(ctx context.Context, user *domain.User) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error

	Users           map[string]*domain.User
	GetByEmailError error
}

// NewMockUserStore creates a mock store with an empty user map. Tests seed
// it by assigning into Users directly.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// byID scans the email-keyed map for a user with the given ID.
func (m *MockUserStore) byID(id uuid.UUID) (string, *domain.User) {
	for email, user := range m.Users {
		if user.ID == id {
			return email, user
		}
	}
	return "", nil
}

// Create implements the UserStore interface.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if _, taken := m.Users[user.Email]; taken {
		return store.ErrEmailExists
	}
	m.Users[user.Email] = user
	return nil
}

// GetByEmail implements the UserStore interface.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	if m.GetByEmailError != nil {
		return nil, m.GetByEmailError
	}
	user, ok := m.Users[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// GetByID implements the UserStore interface.
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if _, user := m.byID(id); user != nil {
		return user, nil
	}
	return nil, store.ErrUserNotFound
}

// Update implements the UserStore interface. Email changes re-key the map
// and respect the uniqueness rule, matching the real store's constraint.
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	oldEmail, existing := m.byID(user.ID)
	if existing == nil {
		return store.ErrUserNotFound
	}
	if oldEmail != user.Email {
		if _, taken := m.Users[user.Email]; taken {
			return store.ErrEmailExists
		}
		delete(m.Users, oldEmail)
	}
	m.Users[user.Email] = user
	return nil
}

// Delete implements the UserStore interface.
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	email, user := m.byID(id)
	if user == nil {
		return store.ErrUserNotFound
	}
	delete(m.Users, email)
	return nil
}

// WithTx implements the UserStore interface. The mock has no transaction
// state, so it returns itself.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// MockLoginUserStore is a single-user store for login tests: it knows one
// email/hash pair and rejects every other email with ErrUserNotFound.
type MockLoginUserStore struct {
	GetByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	GetByEmailError error
	UserID          uuid.UUID
	UserEmail       string
	HashedPassword  string
}

// NewLoginMockUserStore creates a login mock for the given account.
func NewLoginMockUserStore(userID uuid.UUID, email, hashedPassword string) *MockLoginUserStore {
	return &MockLoginUserStore{
		UserID:         userID,
		UserEmail:      email,
		HashedPassword: hashedPassword,
	}
}

// GetByEmail implements the UserStore interface with login-specific behavior.
func (m *MockLoginUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	if m.GetByEmailError != nil {
		return nil, m.GetByEmailError
	}
	if email != m.UserEmail {
		return nil, store.ErrUserNotFound
	}
	return &domain.User{
		ID:             m.UserID,
		Email:          m.UserEmail,
		HashedPassword: m.HashedPassword,
	}, nil
}

// Create is a no-op; login tests never register users.
func (m *MockLoginUserStore) Create(ctx context.Context, user *domain.User) error {
	return nil
}

// GetByID is a no-op; login resolves users by email only.
func (m *MockLoginUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return nil, nil
}

// Update is a no-op.
func (m *MockLoginUserStore) Update(ctx context.Context, user *domain.User) error {
	return nil
}

// Delete is a no-op.
func (m *MockLoginUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

// WithTx returns the mock itself; it carries no transaction state.
func (m *MockLoginUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
