package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/middleware"
)

func TestLogger(t *testing.T) {
	serve := func(t *testing.T, status int, path string) map[string]any {
		t.Helper()

		var buf bytes.Buffer
		log := zerolog.New(&buf)

		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		})

		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		middleware.Logger(log)(next).ServeHTTP(w, req)

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("Expected one JSON log line, got %q: %v", buf.String(), err)
		}
		return entry
	}

	t.Run("logs method, path and status", func(t *testing.T) {
		entry := serve(t, http.StatusOK, "/api/market")

		if entry["method"] != "GET" {
			t.Errorf("Expected method GET, got %v", entry["method"])
		}
		if entry["path"] != "/api/market" {
			t.Errorf("Expected path /api/market, got %v", entry["path"])
		}
		if entry["status"] != float64(http.StatusOK) {
			t.Errorf("Expected status 200, got %v", entry["status"])
		}
		if entry["level"] != "info" {
			t.Errorf("Expected level info, got %v", entry["level"])
		}
	})

	t.Run("logs client errors as warnings", func(t *testing.T) {
		entry := serve(t, http.StatusNotFound, "/api/transaction/x")

		if entry["level"] != "warn" {
			t.Errorf("Expected level warn, got %v", entry["level"])
		}
	})

	t.Run("logs server errors as errors", func(t *testing.T) {
		entry := serve(t, http.StatusServiceUnavailable, "/api/market")

		if entry["level"] != "error" {
			t.Errorf("Expected level error, got %v", entry["level"])
		}
	})
}
