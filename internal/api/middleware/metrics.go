package middleware

import (
	"expvar"
	"net/http"
	"strconv"
	"time"

	"github.com/felixge/httpsnoop"
)

// Request counters published on /debug/vars. Registered at package load
// because expvar panics on duplicate names.
var (
	totalRequestsReceived      = expvar.NewInt("total_requests_received")
	totalResponsesSent         = expvar.NewInt("total_responses_sent")
	totalProcessingTimeMicros  = expvar.NewInt("total_processing_time_us")
	totalResponsesSentByStatus = expvar.NewMap("total_responses_sent_by_status")
)

// Metrics records request counts, response counts by status code, and
// cumulative processing time for every request passing through it.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		totalRequestsReceived.Add(1)

		metrics := httpsnoop.CaptureMetrics(next, w, r)

		totalResponsesSent.Add(1)
		totalProcessingTimeMicros.Add(time.Since(start).Microseconds())
		totalResponsesSentByStatus.Add(strconv.Itoa(metrics.Code), 1)
	})
}
