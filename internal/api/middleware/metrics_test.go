package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The expvar counters are process-global, so assertions work on deltas.
func TestMetrics(t *testing.T) {
	handler := Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	requestsBefore := totalRequestsReceived.Value()
	responsesBefore := totalResponsesSent.Value()
	timeBefore := totalProcessingTimeMicros.Value()

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/movies", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	req := httptest.NewRequest("GET", "/missing", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, int64(4), totalRequestsReceived.Value()-requestsBefore)
	assert.Equal(t, int64(4), totalResponsesSent.Value()-responsesBefore)
	assert.GreaterOrEqual(t, totalProcessingTimeMicros.Value(), timeBefore)

	// Status breakdown is published as a map keyed by status code
	assert.NotNil(t, totalResponsesSentByStatus.Get("200"))
	assert.NotNil(t, totalResponsesSentByStatus.Get("404"))
}
