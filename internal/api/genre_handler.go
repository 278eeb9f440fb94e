package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kinolab/cinema-api/internal/api/shared"
	"github.com/kinolab/cinema-api/internal/domain"
	"github.com/kinolab/cinema-api/internal/platform/logger"
	"github.com/kinolab/cinema-api/internal/store"
)

// GenreHandler handles genre-related HTTP requests.
type GenreHandler struct {
	genreStore store.GenreStore
	logger     *slog.Logger
}

// NewGenreHandler creates a new GenreHandler
func NewGenreHandler(genreStore store.GenreStore, logger *slog.Logger) *GenreHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GenreHandler")
	}

	return &GenreHandler{
		genreStore: genreStore,
		logger:     logger.With(slog.String("component", "genre_handler")),
	}
}

// ListGenres handles GET /genres requests. Genres are returned ordered by
// name.
func (h *GenreHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.genreStore.List(r.Context())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to list genres"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := make([]GenreResponse, 0, len(genres))
	for _, genre := range genres {
		response = append(response, NewGenreResponse(genre))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetGenre handles GET /genres/{id} requests.
func (h *GenreHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	genreID, ok := h.genreIDFromPath(w, r)
	if !ok {
		return
	}

	genre, err := h.genreStore.GetByID(r.Context(), genreID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewGenreResponse(genre))
}

// CreateGenre handles POST /genres requests.
func (h *GenreHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenreRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	genre, err := domain.NewGenre(req.Name)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	if err := h.genreStore.Create(r.Context(), genre); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("genre created",
		slog.String("genre_id", genre.ID.String()),
		slog.String("name", genre.Name))
	shared.RespondWithJSON(w, r, http.StatusCreated, NewGenreResponse(genre))
}

// UpdateGenre handles PUT /genres/{id} requests.
func (h *GenreHandler) UpdateGenre(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	genreID, ok := h.genreIDFromPath(w, r)
	if !ok {
		return
	}

	var req GenreRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	// Load first so a rename of a missing genre reports 404, not 409
	genre, err := h.genreStore.GetByID(r.Context(), genreID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	if err := genre.Rename(req.Name); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	if err := h.genreStore.Update(r.Context(), genre); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("genre updated", slog.String("genre_id", genre.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, NewGenreResponse(genre))
}

// DeleteGenre handles DELETE /genres/{id} requests. Deleting a genre detaches
// it from any movies; the movies themselves survive.
func (h *GenreHandler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	genreID, ok := h.genreIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.genreStore.Delete(r.Context(), genreID); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("genre deleted", slog.String("genre_id", genreID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// genreIDFromPath extracts and parses the {id} path parameter, writing a 400
// response itself when the value is not a UUID.
func (h *GenreHandler) genreIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	genreIDParam := chi.URLParam(r, "id")
	genreID, err := uuid.Parse(genreIDParam)
	if err != nil {
		log.Debug("invalid genre ID format", slog.String("genre_id", genreIDParam))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid genre ID format")
		return uuid.Nil, false
	}

	return genreID, true
}
