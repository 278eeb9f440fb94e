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

// ActorHandler handles actor-related HTTP requests.
type ActorHandler struct {
	actorStore store.ActorStore
	logger     *slog.Logger
}

// NewActorHandler creates a new ActorHandler
func NewActorHandler(actorStore store.ActorStore, logger *slog.Logger) *ActorHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ActorHandler")
	}

	return &ActorHandler{
		actorStore: actorStore,
		logger:     logger.With(slog.String("component", "actor_handler")),
	}
}

// ListActors handles GET /actors requests. Actors are returned ordered by
// last name, then first name.
func (h *ActorHandler) ListActors(w http.ResponseWriter, r *http.Request) {
	actors, err := h.actorStore.List(r.Context())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to list actors"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := make([]ActorResponse, 0, len(actors))
	for _, actor := range actors {
		response = append(response, NewActorResponse(actor))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetActor handles GET /actors/{id} requests.
func (h *ActorHandler) GetActor(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actorIDFromPath(w, r)
	if !ok {
		return
	}

	actor, err := h.actorStore.GetByID(r.Context(), actorID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewActorResponse(actor))
}

// CreateActor handles POST /actors requests.
func (h *ActorHandler) CreateActor(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ActorRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	actor, err := domain.NewActor(req.FirstName, req.LastName)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	if err := h.actorStore.Create(r.Context(), actor); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("actor created",
		slog.String("actor_id", actor.ID.String()),
		slog.String("name", actor.FullName()))
	shared.RespondWithJSON(w, r, http.StatusCreated, NewActorResponse(actor))
}

// UpdateActor handles PUT /actors/{id} requests.
func (h *ActorHandler) UpdateActor(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actorID, ok := h.actorIDFromPath(w, r)
	if !ok {
		return
	}

	var req ActorRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	actor, err := h.actorStore.GetByID(r.Context(), actorID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	if err := actor.SetName(req.FirstName, req.LastName); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	if err := h.actorStore.Update(r.Context(), actor); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("actor updated", slog.String("actor_id", actor.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, NewActorResponse(actor))
}

// DeleteActor handles DELETE /actors/{id} requests. Deleting an actor
// detaches it from any movies; the movies themselves survive.
func (h *ActorHandler) DeleteActor(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actorID, ok := h.actorIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.actorStore.Delete(r.Context(), actorID); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("actor deleted", slog.String("actor_id", actorID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// actorIDFromPath extracts and parses the {id} path parameter, writing a 400
// response itself when the value is not a UUID.
func (h *ActorHandler) actorIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	actorIDParam := chi.URLParam(r, "id")
	actorID, err := uuid.Parse(actorIDParam)
	if err != nil {
		log.Debug("invalid actor ID format", slog.String("actor_id", actorIDParam))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid actor ID format")
		return uuid.Nil, false
	}

	return actorID, true
}
