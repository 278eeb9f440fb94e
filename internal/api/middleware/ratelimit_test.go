package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinolab/cinema-api/internal/api/shared"
	"github.com/kinolab/cinema-api/internal/config"
)

func sendFrom(t *testing.T, handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", "/api/movies", nil)
	req.RemoteAddr = remoteAddr
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestRateLimitMiddleware_Limit(t *testing.T) {
	t.Parallel()

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("disabled passes everything through", func(t *testing.T) {
		middleware := NewRateLimitMiddleware(config.RateLimitConfig{Enabled: false, RPS: 1, Burst: 1})
		handler := middleware.Limit(nextHandler)

		for i := 0; i < 10; i++ {
			recorder := sendFrom(t, handler, "10.0.0.1:1234")
			assert.Equal(t, http.StatusOK, recorder.Code)
		}
	})

	t.Run("burst exhaustion returns 429", func(t *testing.T) {
		// RPS is low enough that the bucket does not refill during the test
		middleware := NewRateLimitMiddleware(config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2})
		handler := middleware.Limit(nextHandler)

		assert.Equal(t, http.StatusOK, sendFrom(t, handler, "10.0.0.1:1234").Code)
		assert.Equal(t, http.StatusOK, sendFrom(t, handler, "10.0.0.1:1234").Code)

		recorder := sendFrom(t, handler, "10.0.0.1:1234")
		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "Rate limit exceeded", resp.Error)
	})

	t.Run("limits are per client IP", func(t *testing.T) {
		middleware := NewRateLimitMiddleware(config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1})
		handler := middleware.Limit(nextHandler)

		assert.Equal(t, http.StatusOK, sendFrom(t, handler, "10.0.0.1:1234").Code)
		assert.Equal(t, http.StatusTooManyRequests, sendFrom(t, handler, "10.0.0.1:5678").Code,
			"same IP on a new port shares the bucket")
		assert.Equal(t, http.StatusOK, sendFrom(t, handler, "10.0.0.2:1234").Code,
			"a different IP gets its own bucket")
	})

	t.Run("remote address without port still works", func(t *testing.T) {
		middleware := NewRateLimitMiddleware(config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1})
		handler := middleware.Limit(nextHandler)

		assert.Equal(t, http.StatusOK, sendFrom(t, handler, "10.0.0.9").Code)
		assert.Equal(t, http.StatusTooManyRequests, sendFrom(t, handler, "10.0.0.9").Code)
	})
}
