package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Movie
var (
	ErrEmptyMovieID         = errors.New("movie ID cannot be empty")
	ErrEmptyMovieTitle      = errors.New("movie title cannot be empty")
	ErrInvalidMovieDuration = errors.New("movie duration must be a positive number of minutes")
)

// Movie is a single catalog entry together with its genre and actor
// associations. Associations have set semantics: a genre or actor appears
// at most once per movie, and the slices are hydrated by the store layer
// on reads (never nil, possibly empty).
type Movie struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration"`
	Genres          []Genre   `json:"genres"`
	Actors          []Actor   `json:"actors"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewMovie creates a new Movie with the given title, description and running
// time in minutes. The description may be empty. It generates the movie ID
// and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewMovie(title, description string, durationMinutes int) (*Movie, error) {
	now := time.Now().UTC()
	movie := &Movie{
		ID:              uuid.New(),
		Title:           title,
		Description:     description,
		DurationMinutes: durationMinutes,
		Genres:          []Genre{},
		Actors:          []Actor{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := movie.Validate(); err != nil {
		return nil, err
	}

	return movie, nil
}

// Validate checks if the Movie has valid data.
// Returns an error if any field fails validation.
func (m *Movie) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyMovieID
	}

	if strings.TrimSpace(m.Title) == "" {
		return ErrEmptyMovieTitle
	}

	if m.DurationMinutes <= 0 {
		return ErrInvalidMovieDuration
	}

	return nil
}

// UpdateDetails replaces the movie's scalar fields and bumps the update
// timestamp. Associations are managed separately by the store layer.
// Returns an error if the new values fail validation.
func (m *Movie) UpdateDetails(title, description string, durationMinutes int) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyMovieTitle
	}
	if durationMinutes <= 0 {
		return ErrInvalidMovieDuration
	}

	m.Title = title
	m.Description = description
	m.DurationMinutes = durationMinutes
	m.UpdatedAt = time.Now().UTC()
	return nil
}
