package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/kinolab/cinema-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	// RefreshToken is the JWT refresh token to be used to obtain a new token pair
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	// AccessToken is the new JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the new JWT token used to obtain future access tokens
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`
}

// Catalog request structures

// MovieRequest defines the payload for movie create and full-update endpoints.
// Genres and Actors carry the complete intended association sets; on update
// the stored sets are replaced with these.
type MovieRequest struct {
	Title       string      `json:"title"       validate:"required"`
	Description string      `json:"description"`
	Duration    int         `json:"duration"    validate:"required,gt=0"`
	Genres      []uuid.UUID `json:"genres"`
	Actors      []uuid.UUID `json:"actors"`
}

// GenreRequest defines the payload for genre create and update endpoints.
type GenreRequest struct {
	Name string `json:"name" validate:"required"`
}

// ActorRequest defines the payload for actor create and update endpoints.
type ActorRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
}

// Catalog response projections

// GenreResponse is the genre projection used by the genre endpoints and
// nested inside movie details.
type GenreResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ActorResponse is the actor projection used by the actor endpoints and
// nested inside movie details.
type ActorResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
}

// MovieListItem is the compact projection returned by the movie list
// endpoint: association names only, no description or timestamps.
type MovieListItem struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Duration int       `json:"duration"`
	Genres   []string  `json:"genres"`
	Actors   []string  `json:"actors"`
}

// MovieDetailResponse is the full movie projection with nested genre and
// actor objects.
type MovieDetailResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Duration    int             `json:"duration"`
	Genres      []GenreResponse `json:"genres"`
	Actors      []ActorResponse `json:"actors"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewGenreResponse builds the genre projection for a domain genre.
func NewGenreResponse(genre *domain.Genre) GenreResponse {
	return GenreResponse{
		ID:   genre.ID,
		Name: genre.Name,
	}
}

// NewGenreResponses builds genre projections for a list of domain genres.
// The result is never nil so an empty list serializes as [].
func NewGenreResponses(genres []*domain.Genre) []GenreResponse {
	out := make([]GenreResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, NewGenreResponse(g))
	}
	return out
}

// NewActorResponse builds the actor projection for a domain actor.
func NewActorResponse(actor *domain.Actor) ActorResponse {
	return ActorResponse{
		ID:        actor.ID,
		FirstName: actor.FirstName,
		LastName:  actor.LastName,
		FullName:  actor.FullName(),
	}
}

// NewActorResponses builds actor projections for a list of domain actors.
// The result is never nil so an empty list serializes as [].
func NewActorResponses(actors []*domain.Actor) []ActorResponse {
	out := make([]ActorResponse, 0, len(actors))
	for _, a := range actors {
		out = append(out, NewActorResponse(a))
	}
	return out
}

// NewMovieListItem builds the compact list projection for a domain movie.
// Association arrays are never nil so they serialize as [].
func NewMovieListItem(movie *domain.Movie) MovieListItem {
	genres := make([]string, 0, len(movie.Genres))
	for _, g := range movie.Genres {
		genres = append(genres, g.Name)
	}

	actors := make([]string, 0, len(movie.Actors))
	for _, a := range movie.Actors {
		actors = append(actors, a.FullName())
	}

	return MovieListItem{
		ID:       movie.ID,
		Title:    movie.Title,
		Duration: movie.DurationMinutes,
		Genres:   genres,
		Actors:   actors,
	}
}

// NewMovieListItems builds list projections for a list of domain movies.
// The result is never nil so an empty catalog serializes as [].
func NewMovieListItems(movies []*domain.Movie) []MovieListItem {
	out := make([]MovieListItem, 0, len(movies))
	for _, m := range movies {
		out = append(out, NewMovieListItem(m))
	}
	return out
}

// NewMovieDetailResponse builds the full movie projection for a domain movie.
// Association arrays are never nil so they serialize as [].
func NewMovieDetailResponse(movie *domain.Movie) MovieDetailResponse {
	genres := make([]GenreResponse, 0, len(movie.Genres))
	for _, g := range movie.Genres {
		genres = append(genres, GenreResponse{ID: g.ID, Name: g.Name})
	}

	actors := make([]ActorResponse, 0, len(movie.Actors))
	for _, a := range movie.Actors {
		actors = append(actors, ActorResponse{
			ID:        a.ID,
			FirstName: a.FirstName,
			LastName:  a.LastName,
			FullName:  a.FullName(),
		})
	}

	return MovieDetailResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		Duration:    movie.DurationMinutes,
		Genres:      genres,
		Actors:      actors,
		CreatedAt:   movie.CreatedAt,
		UpdatedAt:   movie.UpdatedAt,
	}
}
