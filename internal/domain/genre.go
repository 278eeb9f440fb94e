package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Genre
var (
	ErrEmptyGenreID   = errors.New("genre ID cannot be empty")
	ErrEmptyGenreName = errors.New("genre name cannot be empty")
)

// Genre is a catalog category that movies can be associated with.
// Names are unique across the catalog.
type Genre struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGenre creates a new Genre with the given name.
// It generates the genre ID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewGenre(name string) (*Genre, error) {
	now := time.Now().UTC()
	genre := &Genre{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := genre.Validate(); err != nil {
		return nil, err
	}

	return genre, nil
}

// Validate checks if the Genre has valid data.
func (g *Genre) Validate() error {
	if g.ID == uuid.Nil {
		return ErrEmptyGenreID
	}

	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyGenreName
	}

	return nil
}

// Rename replaces the genre's name and bumps the update timestamp.
// Returns an error if the new name is blank.
func (g *Genre) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyGenreName
	}

	g.Name = name
	g.UpdatedAt = time.Now().UTC()
	return nil
}
