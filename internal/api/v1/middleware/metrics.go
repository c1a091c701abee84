package middleware

import (
	"net/http"
	"strconv"
	"time"

	"speedx/internal/metrics"
)

// unmatchedRoute labels requests that never reached a registered pattern,
// such as rate limited or rejected ones.
const unmatchedRoute = "unmatched"

// Metrics records request counts and latency per route pattern. The raw path
// is never used as a label so unknown paths cannot create new series.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(sr, r)

		route := r.Pattern
		if route == "" {
			route = unmatchedRoute
		}

		duration := time.Since(start).Seconds()
		metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(sr.statusCode)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(duration)
	})
}
