// Package response writes the JSON bodies shared by every handler.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every non-2xx answer. Details carries the
// per-field messages of a validation failure or the wrapped error text.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// RespondJSON writes data as JSON with the given status code.
// A nil data writes the status only.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Int("status", status).Msg("Failed to encode JSON response")
	}
}

// RespondNoContent answers a successful delete.
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError writes an ErrorResponse.
//
// Example:
//
//	response.RespondError(w, http.StatusConflict, "insufficient BTC balance", err.Error())
func RespondError(w http.ResponseWriter, status int, message string, details interface{}) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
