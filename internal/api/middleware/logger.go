// Package middleware provides HTTP middleware for request logging and CORS.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Logger is a middleware that logs HTTP requests
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		// Sanitize user-supplied values to prevent log injection: strip CR/LF before logging.
		sanitize := strings.NewReplacer("\n", "", "\r", "").Replace
		log.Info().
			Str("method", sanitize(r.Method)).
			Str("path", sanitize(r.URL.Path)).
			Int("status", wrapped.statusCode).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
