package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinolab/cinema-api/internal/api/shared"
	"github.com/kinolab/cinema-api/internal/domain"
	"github.com/kinolab/cinema-api/internal/mocks"
	"github.com/kinolab/cinema-api/internal/service"
	"github.com/kinolab/cinema-api/internal/store"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newMovieFixture builds a hydrated movie with one genre and one actor.
func newMovieFixture(t *testing.T) *domain.Movie {
	t.Helper()

	movie, err := domain.NewMovie("The Matrix", "A hacker discovers reality is a simulation.", 136)
	require.NoError(t, err)

	movie.Genres = []domain.Genre{{ID: uuid.New(), Name: "Science Fiction"}}
	movie.Actors = []domain.Actor{{ID: uuid.New(), FirstName: "Keanu", LastName: "Reeves"}}

	return movie
}

// withPathID attaches a chi route context carrying the {id} parameter.
func withPathID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestListMovies(t *testing.T) {
	t.Parallel()

	t.Run("returns list projection", func(t *testing.T) {
		movie := newMovieFixture(t)
		movieStore := mocks.NewMockMovieStore()
		movieStore.ListFn = func(ctx context.Context, filter store.MovieFilter) ([]*domain.Movie, error) {
			return []*domain.Movie{movie}, nil
		}

		handler := NewMovieHandler(movieStore, &mocks.MockCatalogService{}, newTestLogger())

		req := httptest.NewRequest(http.MethodGet, "/movies", nil)
		rr := httptest.NewRecorder()
		handler.ListMovies(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var response []MovieListItem
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
		require.Len(t, response, 1)
		assert.Equal(t, movie.ID, response[0].ID)
		assert.Equal(t, movie.Title, response[0].Title)
		assert.Equal(t, movie.DurationMinutes, response[0].Duration)
		assert.Equal(t, []string{"Science Fiction"}, response[0].Genres)
		assert.Equal(t, []string{"Keanu Reeves"}, response[0].Actors)
	})

	t.Run("empty catalog yields empty array", func(t *testing.T) {
		movieStore := mocks.NewMockMovieStore()
		handler := NewMovieHandler(movieStore, &mocks.MockCatalogService{}, newTestLogger())

		req := httptest.NewRequest(http.MethodGet, "/movies", nil)
		rr := httptest.NewRecorder()
		handler.ListMovies(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String(), "empty result must serialize as [], not null")
	})

	t.Run("passes parsed filter to store", func(t *testing.T) {
		genreID1 := uuid.New()
		genreID2 := uuid.New()
		actorID := uuid.New()

		var gotFilter store.MovieFilter
		movieStore := mocks.NewMockMovieStore()
		movieStore.ListFn = func(ctx context.Context, filter store.MovieFilter) ([]*domain.Movie, error) {
			gotFilter = filter
			return []*domain.Movie{}, nil
		}

		handler := NewMovieHandler(movieStore, &mocks.MockCatalogService{}, newTestLogger())

		url := fmt.Sprintf("/movies?title=matrix&genres=%s,%s&actors=%s", genreID1, genreID2, actorID)
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rr := httptest.NewRecorder()
		handler.ListMovies(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "matrix", gotFilter.Title)
		assert.Equal(t, []uuid.UUID{genreID1, genreID2}, gotFilter.GenreIDs)
		assert.Equal(t, []uuid.UUID{actorID}, gotFilter.ActorIDs)
	})

	t.Run("deduplicates and skips empty filter segments", func(t *testing.T) {
		genreID := uuid.New()

		var gotFilter store.MovieFilter
		movieStore := mocks.NewMockMovieStore()
		movieStore.ListFn = func(ctx context.Context, filter store.MovieFilter) ([]*domain.Movie, error) {
			gotFilter = filter
			return []*domain.Movie{}, nil
		}

		handler := NewMovieHandler(movieStore, &mocks.MockCatalogService{}, newTestLogger())

		url := fmt.Sprintf("/movies?genres=%s,,%s,", genreID, genreID)
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rr := httptest.NewRecorder()
		handler.ListMovies(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []uuid.UUID{genreID}, gotFilter.GenreIDs)
	})

	t.Run("malformed genre filter", func(t *testing.T) {
		storeCalled := false
		movieStore := mocks.NewMockMovieStore()
		movieStore.ListFn = func(ctx context.Context, filter store.MovieFilter) ([]*domain.Movie, error) {
			storeCalled = true
			return nil, nil
		}

		handler := NewMovieHandler(movieStore, &mocks.MockCatalogService{}, newTestLogger())

		req := httptest.NewRequest(http.MethodGet, "/movies?genres=not-a-uuid", nil)
		rr := httptest.NewRecorder()
		handler.ListMovies(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, storeCalled, "store must not be queried with a malformed filter")

		var errResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Contains(t, errResp.Error, "Invalid genre ID format")
	})

	t.Run("malformed actor filter", func(t *testing.T) {
		handler := NewMovieHandler(mocks.NewMockMovieStore(), &mocks.MockCatalogService{}, newTestLogger())

		req := httptest.NewRequest(http.MethodGet, "/movies?actors=42", nil)
		rr := httptest.NewRecorder()
		handler.ListMovies(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Contains(t, errResp.Error, "Invalid actor ID format")
	})

	t.Run("store failure", func(t *testing.T) {
		movieStore := mocks.NewMockMovieStore()
		movieStore.ListFn = func(ctx context.Context, filter store.MovieFilter) ([]*domain.Movie, error) {
			return nil, errors.New("connection refused")
		}

		handler := NewMovieHandler(movieStore, &mocks.MockCatalogService{}, newTestLogger())

		req := httptest.NewRequest(http.MethodGet, "/movies", nil)
		rr := httptest.NewRecorder()
		handler.ListMovies(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Equal(t, "Failed to list movies", errResp.Error)
		assert.NotContains(t, errResp.Error, "connection refused")
	})
}

func TestGetMovie(t *testing.T) {
	t.Parallel()

	t.Run("returns movie detail", func(t *testing.T) {
		movie := newMovieFixture(t)
		movieStore := mocks.NewMockMovieStore()
		movieStore.Movies[movie.ID] = movie

		handler := NewMovieHandler(movieStore, &mocks.MockCatalogService{}, newTestLogger())

		req := httptest.NewRequest(http.MethodGet, "/movies/"+movie.ID.String(), nil)
		rr := httptest.NewRecorder()
		handler.GetMovie(rr, withPathID(req, movie.ID.String()))

		require.Equal(t, http.StatusOK, rr.Code)

		var response MovieDetailResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
		assert.Equal(t, movie.ID, response.ID)
		assert.Equal(t, movie.Title, response.Title)
		assert.Equal(t, movie.Description, response.Description)
		assert.Equal(t, movie.DurationMinutes, response.Duration)
		require.Len(t, response.Genres, 1)
		assert.Equal(t, movie.Genres[0].ID, response.Genres[0].ID)
		assert.Equal(t, "Science Fiction", response.Genres[0].Name)
		require.Len(t, response.Actors, 1)
		assert.Equal(t, "Keanu", response.Actors[0].FirstName)
		assert.Equal(t, "Reeves", response.Actors[0].LastName)
		assert.Equal(t, "Keanu Reeves", response.Actors[0].FullName)
	})

	t.Run("invalid movie ID", func(t *testing.T) {
		handler := NewMovieHandler(mocks.NewMockMovieStore(), &mocks.MockCatalogService{}, newTestLogger())

		req := httptest.NewRequest(http.MethodGet, "/movies/not-a-uuid", nil)
		rr := httptest.NewRecorder()
		handler.GetMovie(rr, withPathID(req, "not-a-uuid"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Contains(t, errResp.Error, "Invalid movie ID format")
	})

	t.Run("movie not found", func(t *testing.T) {
		handler := NewMovieHandler(mocks.NewMockMovieStore(), &mocks.MockCatalogService{}, newTestLogger())

		unknownID := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/movies/"+unknownID.String(), nil)
		rr := httptest.NewRecorder()
		handler.GetMovie(rr, withPathID(req, unknownID.String()))

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Equal(t, "Movie not found", errResp.Error)
	})
}

func TestCreateMovie(t *testing.T) {
	t.Parallel()

	t.Run("creates movie through catalog service", func(t *testing.T) {
		movie := newMovieFixture(t)
		genreID := movie.Genres[0].ID
		actorID := movie.Actors[0].ID

		var gotInput service.MovieInput
		catalogService := &mocks.MockCatalogService{
			CreateMovieFn: func(ctx context.Context, input service.MovieInput) (*domain.Movie, error) {
				gotInput = input
				return movie, nil
			},
		}

		handler := NewMovieHandler(mocks.NewMockMovieStore(), catalogService, newTestLogger())

		payload := fmt.Sprintf(
			`{"title":"The Matrix","description":"A hacker discovers reality is a simulation.","duration":136,"genres":[%q],"actors":[%q]}`,
			genreID, actorID,
		)
		req := httptest.NewRequest(http.MethodPost, "/movies", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.CreateMovie(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "The Matrix", gotInput.Title)
		assert.Equal(t, 136, gotInput.DurationMinutes)
		assert.Equal(t, []uuid.UUID{genreID}, gotInput.GenreIDs)
		assert.Equal(t, []uuid.UUID{actorID}, gotInput.ActorIDs)

		var response MovieDetailResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
		assert.Equal(t, movie.ID, response.ID)
		require.Len(t, response.Genres, 1)
		require.Len(t, response.Actors, 1)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		handler := NewMovieHandler(mocks.NewMockMovieStore(), &mocks.MockCatalogService{}, newTestLogger())

		req := httptest.NewRequest(http.MethodPost, "/movies", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.CreateMovie(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Equal(t, "Invalid request format", errResp.Error)
	})

	t.Run("missing title", func(t *testing.T) {
		serviceCalled := false
		catalogService := &mocks.MockCatalogService{
			CreateMovieFn: func(ctx context.Context, input service.MovieInput) (*domain.Movie, error) {
				serviceCalled = true
				return nil, nil
			},
		}
		handler := NewMovieHandler(mocks.NewMockMovieStore(), catalogService, newTestLogger())

		req := httptest.NewRequest(
			http.MethodPost,
			"/movies",
			bytes.NewBufferString(`{"duration":120}`),
		)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.CreateMovie(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, serviceCalled)

		var errResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Contains(t, errResp.Error, "Invalid Title")
	})

	t.Run("non-positive duration", func(t *testing.T) {
		handler := NewMovieHandler(mocks.NewMockMovieStore(), &mocks.MockCatalogService{}, newTestLogger())

		req := httptest.NewRequest(
			http.MethodPost,
			"/movies",
			bytes.NewBufferString(`{"title":"Short","duration":0}`),
		)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.CreateMovie(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Contains(t, errResp.Error, "Invalid Duration")
	})

	t.Run("unknown genre association", func(t *testing.T) {
		genreID := uuid.New()
		catalogService := &mocks.MockCatalogService{
			CreateMovieFn: func(ctx context.Context, input service.MovieInput) (*domain.Movie, error) {
				return nil, service.NewCatalogServiceError(
					"create_movie",
					"failed to save genre associations",
					fmt.Errorf("%w: genre with ID %s not found", store.ErrInvalidEntity, genreID),
				)
			},
		}
		handler := NewMovieHandler(mocks.NewMockMovieStore(), catalogService, newTestLogger())

		payload := fmt.Sprintf(`{"title":"The Matrix","duration":136,"genres":[%q]}`, genreID)
		req := httptest.NewRequest(http.MethodPost, "/movies", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.CreateMovie(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Contains(t, errResp.Error, "genre with ID "+genreID.String())
	})

	t.Run("service failure stays opaque", func(t *testing.T) {
		catalogService := &mocks.MockCatalogService{
			CreateMovieFn: func(ctx context.Context, input service.MovieInput) (*domain.Movie, error) {
				return nil, service.NewCatalogServiceError(
					"create_movie",
					"failed to save movie",
					errors.New("pq: relation movies does not exist"),
				)
			},
		}
		handler := NewMovieHandler(mocks.NewMockMovieStore(), catalogService, newTestLogger())

		req := httptest.NewRequest(
			http.MethodPost,
			"/movies",
			bytes.NewBufferString(`{"title":"The Matrix","duration":136}`),
		)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.CreateMovie(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Equal(t, "Failed to create movie", errResp.Error)
		assert.NotContains(t, errResp.Error, "pq:")
	})
}

func TestUpdateMovie(t *testing.T) {
	t.Parallel()

	t.Run("updates movie through catalog service", func(t *testing.T) {
		movie := newMovieFixture(t)

		var gotMovieID uuid.UUID
		catalogService := &mocks.MockCatalogService{
			UpdateMovieFn: func(ctx context.Context, movieID uuid.UUID, input service.MovieInput) (*domain.Movie, error) {
				gotMovieID = movieID
				return movie, nil
			},
		}
		handler := NewMovieHandler(mocks.NewMockMovieStore(), catalogService, newTestLogger())

		req := httptest.NewRequest(
			http.MethodPut,
			"/movies/"+movie.ID.String(),
			bytes.NewBufferString(`{"title":"The Matrix","duration":136}`),
		)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.UpdateMovie(rr, withPathID(req, movie.ID.String()))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, movie.ID, gotMovieID)

		var response MovieDetailResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
		assert.Equal(t, movie.ID, response.ID)
	})

	t.Run("invalid movie ID", func(t *testing.T) {
		handler := NewMovieHandler(mocks.NewMockMovieStore(), &mocks.MockCatalogService{}, newTestLogger())

		req := httptest.NewRequest(
			http.MethodPut,
			"/movies/abc",
			bytes.NewBufferString(`{"title":"The Matrix","duration":136}`),
		)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.UpdateMovie(rr, withPathID(req, "abc"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("movie not found", func(t *testing.T) {
		catalogService := &mocks.MockCatalogService{
			UpdateMovieFn: func(ctx context.Context, movieID uuid.UUID, input service.MovieInput) (*domain.Movie, error) {
				return nil, service.NewCatalogServiceError(
					"update_movie",
					"failed to load movie",
					store.ErrMovieNotFound,
				)
			},
		}
		handler := NewMovieHandler(mocks.NewMockMovieStore(), catalogService, newTestLogger())

		unknownID := uuid.New()
		req := httptest.NewRequest(
			http.MethodPut,
			"/movies/"+unknownID.String(),
			bytes.NewBufferString(`{"title":"The Matrix","duration":136}`),
		)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.UpdateMovie(rr, withPathID(req, unknownID.String()))

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Equal(t, "Movie not found", errResp.Error)
	})
}

func TestDeleteMovie(t *testing.T) {
	t.Parallel()

	t.Run("deletes movie", func(t *testing.T) {
		movie := newMovieFixture(t)
		movieStore := mocks.NewMockMovieStore()
		movieStore.Movies[movie.ID] = movie

		handler := NewMovieHandler(movieStore, &mocks.MockCatalogService{}, newTestLogger())

		req := httptest.NewRequest(http.MethodDelete, "/movies/"+movie.ID.String(), nil)
		rr := httptest.NewRecorder()
		handler.DeleteMovie(rr, withPathID(req, movie.ID.String()))

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
		assert.NotContains(t, movieStore.Movies, movie.ID)
	})

	t.Run("movie not found", func(t *testing.T) {
		handler := NewMovieHandler(mocks.NewMockMovieStore(), &mocks.MockCatalogService{}, newTestLogger())

		unknownID := uuid.New()
		req := httptest.NewRequest(http.MethodDelete, "/movies/"+unknownID.String(), nil)
		rr := httptest.NewRecorder()
		handler.DeleteMovie(rr, withPathID(req, unknownID.String()))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("invalid movie ID", func(t *testing.T) {
		handler := NewMovieHandler(mocks.NewMockMovieStore(), &mocks.MockCatalogService{}, newTestLogger())

		req := httptest.NewRequest(http.MethodDelete, "/movies/xyz", nil)
		rr := httptest.NewRecorder()
		handler.DeleteMovie(rr, withPathID(req, "xyz"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
