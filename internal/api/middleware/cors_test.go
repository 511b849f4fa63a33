package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/config"
)

func TestNewCORS(t *testing.T) {
	handler := NewCORS(config.CORSConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxAge:         10 * time.Minute,
	})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("answers preflight for an allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/transaction", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Expected allowed origin header, got %q", got)
		}
		if got := w.Header().Get("Access-Control-Max-Age"); got != "600" {
			t.Errorf("Expected max age 600, got %q", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
			t.Errorf("Expected no credentials header, got %q", got)
		}
	})

	t.Run("ignores other origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/market", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Expected no allow-origin header, got %q", got)
		}
	})
}
