// Package middleware provides reusable HTTP middleware for the Travel Logger API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware applying CORS headers for the given
// origins. Each entry must be a full origin (scheme + host, no trailing
// slash).
//
// Content-Disposition and X-Batch-Failed are exposed so browser clients can
// read the suggested filename of an export download and the failed-dates
// report of a batch export; without ExposedHeaders the Fetch API hides both.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"Content-Disposition", "X-Batch-Failed"},
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
