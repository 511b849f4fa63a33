package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/config"
)

// NewCORS returns the CORS handler for the configured frontend origins.
// The API carries no cookies, so credentials are not allowed. X-Request-Id is
// exposed so the frontend can quote it in bug reports.
func NewCORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         int(cfg.MaxAge.Seconds()),
	})
}
