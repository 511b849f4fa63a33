package handlers

import (
	"net/http"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/service"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/validation"
)

// SettingsHandler handles HTTP requests for the user's display preferences.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetSettings handles GET requests for the current settings, defaults included.
//
// Endpoint: GET /api/settings
// Response: 200 OK with Settings
// Error: 500 Internal Server Error if retrieval fails
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.GetSettings(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSettings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT requests changing any of currency, timezone and quantityUnit.
//
// Endpoint: PUT /api/settings
// Request Body: UpdateSettingsRequest (all fields optional)
// Response: 200 OK with updated Settings
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the update fails
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateSettingsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateSettings(req); err != nil {
		respondValidationError(w, err)
		return
	}

	settings, err := h.settingsService.UpdateSettings(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to update settings")
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}
