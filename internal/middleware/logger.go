// File: internal/middleware/logger.go
package middleware

import (
	"log"
	"net/http"
	"time"
)

// LoggingMiddleware logs incoming HTTP request & response details.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf(
			"Request: %s %s from %s | Request-ID: %s | Duration: %v",
			r.Method,
			r.RequestURI,
			r.RemoteAddr,
			RequestIDFromContext(r.Context()),
			time.Since(start),
		)
	})
}
