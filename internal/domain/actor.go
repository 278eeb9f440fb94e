package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Actor
var (
	ErrEmptyActorID        = errors.New("actor ID cannot be empty")
	ErrEmptyActorFirstName = errors.New("actor first name cannot be empty")
	ErrEmptyActorLastName  = errors.New("actor last name cannot be empty")
)

// Actor is a performer that movies can be associated with.
type Actor struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewActor creates a new Actor with the given names.
// It generates the actor ID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewActor(firstName, lastName string) (*Actor, error) {
	now := time.Now().UTC()
	actor := &Actor{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := actor.Validate(); err != nil {
		return nil, err
	}

	return actor, nil
}

// Validate checks if the Actor has valid data.
func (a *Actor) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyActorID
	}

	if strings.TrimSpace(a.FirstName) == "" {
		return ErrEmptyActorFirstName
	}

	if strings.TrimSpace(a.LastName) == "" {
		return ErrEmptyActorLastName
	}

	return nil
}

// FullName returns the actor's display name, "FirstName LastName".
func (a *Actor) FullName() string {
	return a.FirstName + " " + a.LastName
}

// SetName replaces both name parts and bumps the update timestamp.
// Returns an error if either part is blank.
func (a *Actor) SetName(firstName, lastName string) error {
	if strings.TrimSpace(firstName) == "" {
		return ErrEmptyActorFirstName
	}
	if strings.TrimSpace(lastName) == "" {
		return ErrEmptyActorLastName
	}

	a.FirstName = firstName
	a.LastName = lastName
	a.UpdatedAt = time.Now().UTC()
	return nil
}
