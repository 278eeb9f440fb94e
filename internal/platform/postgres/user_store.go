package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kinolab/cinema-api/internal/domain"
	"github.com/kinolab/cinema-api/internal/platform/logger"
	"github.com/kinolab/cinema-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db         store.DBTX
	bcryptCost int
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller, and the bcrypt cost used
// for password hashing. A cost outside the valid bcrypt range falls back to
// bcrypt.DefaultCost.
func NewPostgresUserStore(db store.DBTX, bcryptCost int) *PostgresUserStore {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &PostgresUserStore{
		db:         db,
		bcryptCost: bcryptCost,
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
// It returns a copy of the store bound to the given transaction.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:         tx,
		bcryptCost: s.bcryptCost,
	}
}

// hashPassword hashes the given plaintext password with the store's
// configured bcrypt cost.
func (s *PostgresUserStore) hashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Create implements store.UserStore.Create
// It validates the user, hashes the plaintext password and inserts the row.
// After a successful insert the plaintext password is cleared from the
// struct. Returns store.ErrEmailExists if the email is already registered.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContext(ctx)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			"error", err,
			"user_id", user.ID)
		return err
	}

	if user.Password != "" {
		hashed, err := s.hashPassword(user.Password)
		if err != nil {
			log.Error("failed to hash password",
				"error", err,
				"user_id", user.ID)
			return err
		}
		user.HashedPassword = hashed
		user.Password = ""
	}

	query := `
		INSERT INTO users (id, email, hashed_password, is_staff, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.HashedPassword,
		user.IsStaff,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already registered", "user_id", user.ID)
			return MapUniqueViolation(err, store.ErrEmailExists)
		}
		log.Error("failed to create user",
			"error", err,
			"user_id", user.ID)
		return MapError(err)
	}

	log.Info("user created",
		"user_id", user.ID,
		"is_staff", user.IsStaff)
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if no user has the given ID.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, email, hashed_password, is_staff, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.IsStaff,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", "user_id", id)
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			"error", err,
			"user_id", id)
		return nil, MapError(err)
	}

	return &user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
// Returns store.ErrUserNotFound if no user has the given email.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, email, hashed_password, is_staff, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.IsStaff,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by email")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email", "error", err)
		return nil, MapError(err)
	}

	return &user, nil
}

// Update implements store.UserStore.Update
// If a new plaintext password is set on the struct it is hashed and replaces
// the stored hash. Returns store.ErrUserNotFound if the user does not exist
// and store.ErrEmailExists if the new email is already taken.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContext(ctx)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			"error", err,
			"user_id", user.ID)
		return err
	}

	if user.Password != "" {
		hashed, err := s.hashPassword(user.Password)
		if err != nil {
			log.Error("failed to hash password",
				"error", err,
				"user_id", user.ID)
			return err
		}
		user.HashedPassword = hashed
		user.Password = ""
	}

	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET email = $1, hashed_password = $2, is_staff = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		user.Email,
		user.HashedPassword,
		user.IsStaff,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already registered", "user_id", user.ID)
			return MapUniqueViolation(err, store.ErrEmailExists)
		}
		log.Error("failed to update user",
			"error", err,
			"user_id", user.ID)
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("user not found for update", "user_id", user.ID)
		}
		return err
	}

	log.Info("user updated", "user_id", user.ID)
	return nil
}

// Delete implements store.UserStore.Delete
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			"error", err,
			"user_id", id)
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("user not found for delete", "user_id", id)
		}
		return err
	}

	log.Info("user deleted", "user_id", id)
	return nil
}
