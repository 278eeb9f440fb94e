package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kinolab/cinema-api/internal/api/shared"
	"github.com/kinolab/cinema-api/internal/platform/logger"
	"github.com/kinolab/cinema-api/internal/service"
	"github.com/kinolab/cinema-api/internal/store"
)

// MovieHandler handles movie-related HTTP requests. Reads go straight to the
// store; multi-table writes go through the catalog service so the movie row
// and its association rows commit atomically.
type MovieHandler struct {
	movieStore     store.MovieStore
	catalogService service.CatalogService
	logger         *slog.Logger
}

// NewMovieHandler creates a new MovieHandler
func NewMovieHandler(
	movieStore store.MovieStore,
	catalogService service.CatalogService,
	logger *slog.Logger,
) *MovieHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for MovieHandler")
	}

	return &MovieHandler{
		movieStore:     movieStore,
		catalogService: catalogService,
		logger:         logger.With(slog.String("component", "movie_handler")),
	}
}

// ListMovies handles GET /movies requests.
// The result set can be narrowed with the optional title, genres and actors
// query parameters; all present conditions must hold for a movie to match.
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	q := r.URL.Query()
	filter := store.MovieFilter{Title: strings.TrimSpace(q.Get("title"))}

	genreIDs, err := parseUUIDFilter(q["genres"])
	if err != nil {
		log.Debug("rejecting malformed genre filter", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid genre ID format in filter")
		return
	}
	filter.GenreIDs = genreIDs

	actorIDs, err := parseUUIDFilter(q["actors"])
	if err != nil {
		log.Debug("rejecting malformed actor filter", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid actor ID format in filter")
		return
	}
	filter.ActorIDs = actorIDs

	movies, err := h.movieStore.List(r.Context(), filter)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to list movies"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := make([]MovieListItem, 0, len(movies))
	for _, movie := range movies {
		response = append(response, NewMovieListItem(movie))
	}

	log.Debug("listed movies", slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetMovie handles GET /movies/{id} requests.
// It returns the full movie detail with genre and actor associations.
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	movieIDParam := chi.URLParam(r, "id")
	movieID, err := uuid.Parse(movieIDParam)
	if err != nil {
		log.Debug("invalid movie ID format", slog.String("movie_id", movieIDParam))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid movie ID format")
		return
	}

	movie, err := h.movieStore.GetByID(r.Context(), movieID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewMovieDetailResponse(movie))
}

// CreateMovie handles POST /movies requests.
// The movie row and its genre/actor association rows are written in a single
// transaction, so a bad association ID leaves no partial movie behind.
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req MovieRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	movie, err := h.catalogService.CreateMovie(r.Context(), movieInputFromRequest(req))
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("movie created", slog.String("movie_id", movie.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, NewMovieDetailResponse(movie))
}

// UpdateMovie handles PUT /movies/{id} requests.
// The request body carries the full desired state; the genre and actor sets
// are replaced with whatever the body names.
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	movieIDParam := chi.URLParam(r, "id")
	movieID, err := uuid.Parse(movieIDParam)
	if err != nil {
		log.Debug("invalid movie ID format", slog.String("movie_id", movieIDParam))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid movie ID format")
		return
	}

	var req MovieRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	movie, err := h.catalogService.UpdateMovie(r.Context(), movieID, movieInputFromRequest(req))
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("movie updated", slog.String("movie_id", movie.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, NewMovieDetailResponse(movie))
}

// DeleteMovie handles DELETE /movies/{id} requests.
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	movieIDParam := chi.URLParam(r, "id")
	movieID, err := uuid.Parse(movieIDParam)
	if err != nil {
		log.Debug("invalid movie ID format", slog.String("movie_id", movieIDParam))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid movie ID format")
		return
	}

	if err := h.movieStore.Delete(r.Context(), movieID); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("movie deleted", slog.String("movie_id", movieID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// parseUUIDFilter parses the raw values of a repeatable, comma-separated
// UUID query parameter. Empty segments are skipped and duplicates removed,
// so "?genres=a,,a" filters the same as "?genres=a".
func parseUUIDFilter(values []string) ([]uuid.UUID, error) {
	if len(values) == 0 {
		return nil, nil
	}

	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, value := range values {
		for _, segment := range strings.Split(value, ",") {
			segment = strings.TrimSpace(segment)
			if segment == "" {
				continue
			}
			id, err := uuid.Parse(segment)
			if err != nil {
				return nil, err
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	return ids, nil
}

// movieInputFromRequest maps the API request body to the catalog service
// input type.
func movieInputFromRequest(req MovieRequest) service.MovieInput {
	return service.MovieInput{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.Duration,
		GenreIDs:        req.Genres,
		ActorIDs:        req.Actors,
	}
}
