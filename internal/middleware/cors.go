package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS wraps the whole HTTP handler so preflight requests are answered before
// gin routing.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", RequestIDHeader, IdempotencyHeader},
		ExposedHeaders:   []string{RequestIDHeader, "Idempotent-Replayed"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
