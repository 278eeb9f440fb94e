package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kinolab/cinema-api/internal/domain"
	"github.com/kinolab/cinema-api/internal/service/auth"
	"github.com/kinolab/cinema-api/internal/store"
)

// errClass pairs a sentinel with the status and client-safe message it maps
// to. Order matters: the first matching sentinel wins, so more specific
// sentinels must precede the generic ones they wrap.
type errClass struct {
	sentinel error
	status   int
	message  string
}

var errClasses = []errClass{
	// Authentication
	{auth.ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
	{auth.ErrTokenNotYetValid, http.StatusUnauthorized, "Invalid token"},
	{auth.ErrMissingToken, http.StatusUnauthorized, "Invalid token"},
	{auth.ErrInvalidRefreshToken, http.StatusUnauthorized, "Invalid refresh token"},
	{auth.ErrExpiredRefreshToken, http.StatusUnauthorized, "Invalid refresh token"},
	{auth.ErrWrongTokenType, http.StatusUnauthorized, "Invalid refresh token"},

	// Authorization
	{domain.ErrUnauthorized, http.StatusForbidden, "You do not have permission to perform this action"},

	// Not found; the entity sentinels wrap store.ErrNotFound, which catches
	// any remaining lookup failure.
	{store.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{store.ErrMovieNotFound, http.StatusNotFound, "Movie not found"},
	{store.ErrGenreNotFound, http.StatusNotFound, "Genre not found"},
	{store.ErrActorNotFound, http.StatusNotFound, "Actor not found"},
	{store.ErrNotFound, http.StatusNotFound, "Resource not found"},

	// Conflicts
	{store.ErrEmailExists, http.StatusConflict, "Email already exists"},
	{store.ErrGenreNameExists, http.StatusConflict, "Genre name already exists"},
	{store.ErrDuplicate, http.StatusConflict, "Resource already exists"},

	// Bad request: broken references and domain validation failures
	{store.ErrInvalidEntity, http.StatusBadRequest, "Invalid entity data"},
	{domain.ErrEmptyMovieTitle, http.StatusBadRequest, "Movie title cannot be empty"},
	{domain.ErrInvalidMovieDuration, http.StatusBadRequest, "Movie duration must be a positive number of minutes"},
	{domain.ErrEmptyGenreName, http.StatusBadRequest, "Genre name cannot be empty"},
	{domain.ErrEmptyActorFirstName, http.StatusBadRequest, "Actor first and last name cannot be empty"},
	{domain.ErrEmptyActorLastName, http.StatusBadRequest, "Actor first and last name cannot be empty"},
	{domain.ErrInvalidID, http.StatusBadRequest, "Invalid identifier"},
}

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	for _, c := range errClasses {
		if errors.Is(err, c.sentinel) {
			return c.status
		}
	}
	return http.StatusInternalServerError
}

// GetSafeErrorMessage returns a client-safe message for err. Internal detail
// never passes through except the store's own invalid-entity annotations,
// which the store layer writes for exactly this purpose.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	for _, c := range errClasses {
		if !errors.Is(err, c.sentinel) {
			continue
		}
		if c.sentinel == store.ErrInvalidEntity {
			if detail := invalidEntityDetail(err); detail != "" {
				return detail
			}
		}
		return c.message
	}

	// Surface which catalog operation failed without the internal detail.
	switch {
	case strings.Contains(err.Error(), "create_movie"):
		return "Failed to create movie"
	case strings.Contains(err.Error(), "update_movie"):
		return "Failed to update movie"
	}
	return "An unexpected error occurred"
}

// invalidEntityDetail extracts the store-level detail from an invalid-entity
// error chain, e.g. "genre with ID <uuid> not found". The detail is built by
// our own store layer so it is safe to show; anything unrecognized yields "".
func invalidEntityDetail(err error) string {
	msg := err.Error()
	marker := store.ErrInvalidEntity.Error() + ": "
	idx := strings.LastIndex(msg, marker)
	if idx == -1 {
		return ""
	}
	detail := strings.TrimSpace(msg[idx+len(marker):])
	if detail == "" || strings.ContainsAny(detail, "\n\"") {
		return ""
	}
	return detail
}

// validationTagMessages translates validator/v10 tags into plain words.
var validationTagMessages = map[string]string{
	"required": "required field",
	"email":    "invalid email format",
	"min":      "too short",
	"max":      "too long",
	"gt":       "must be greater than zero",
	"oneof":    "invalid value",
}

// SanitizeValidationError turns a validator error into a short message that
// names the offending field but drops the struct path and raw values.
// Input shape: "Key: 'LoginRequest.Email' Error:Field validation for 'Email'
// failed on the 'required' tag".
func SanitizeValidationError(err error) string {
	errMsg := err.Error()
	if !strings.Contains(errMsg, "Field validation") {
		return "Validation error"
	}

	_, after, found := strings.Cut(errMsg, "Error:")
	if !found {
		return "Validation error"
	}

	quoted := strings.Split(after, "'")
	if len(quoted) < 3 {
		return "Validation error"
	}
	field := quoted[1]

	if len(quoted) >= 5 {
		tag := quoted[3]
		msg, ok := validationTagMessages[tag]
		if !ok {
			msg = "validation failed"
		}
		return fmt.Sprintf("Invalid %s: %s", field, msg)
	}
	return fmt.Sprintf("Invalid %s", field)
}
