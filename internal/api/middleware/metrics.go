package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/migillett/TranscodeTycoonGame/internal/telemetry"
)

// Metrics records request counts and latency per route template, so
// /users/{id} aggregates as one series rather than one per user.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}

		telemetry.HTTPRequestsTotal.
			WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).
			Inc()
		telemetry.HTTPRequestDuration.
			WithLabelValues(r.Method, route).
			Observe(time.Since(start).Seconds())
	})
}
