package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/service"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/validation"
)

// FutureHandler handles HTTP requests for leveraged futures positions.
type FutureHandler struct {
	futureService *service.FutureService
}

// NewFutureHandler creates a new FutureHandler with the provided service dependency.
func NewFutureHandler(futureService *service.FutureService) *FutureHandler {
	return &FutureHandler{
		futureService: futureService,
	}
}

// AllFutures handles GET requests for every position, newest buy date first.
// OPEN positions carry live metrics, CLOSED ones their stored metrics.
//
// Endpoint: GET /api/future
// Response: 200 OK with array of FutureResponse
// Error: 503 Service Unavailable if an OPEN position needs a price and none is available
// Error: 500 Internal Server Error if retrieval fails
func (h *FutureHandler) AllFutures(w http.ResponseWriter, r *http.Request) {
	futures, err := h.futureService.GetFutures(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveFutures.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, futures)
}

// FutureSummary handles GET requests for the aggregated futures statistics.
//
// Endpoint: GET /api/future/summary
// Response: 200 OK with FuturesSummary
// Error: 500 Internal Server Error if retrieval fails
func (h *FutureHandler) FutureSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.futureService.Summary(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveFutures.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// GetFuture handles GET requests to retrieve a single position.
//
// Endpoint: GET /api/future/{uuid}
// Response: 200 OK with FutureResponse
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the position does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *FutureHandler) GetFuture(w http.ResponseWriter, r *http.Request) {
	futureID := chi.URLParam(r, "uuid")

	future, err := h.futureService.GetFuture(r.Context(), futureID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveFuture.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, future)
}

// CreateFuture handles POST requests to open a new position.
//
// Endpoint: POST /api/future
// Request Body: CreateFutureRequest (direction, entryPrice, targetPrice, exitPrice, quantityUsd, buyDate, notes)
// Response: 201 Created with Future
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *FutureHandler) CreateFuture(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateFutureRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateFuture(req); err != nil {
		respondValidationError(w, err)
		return
	}

	future, err := h.futureService.CreateFuture(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to create future")
		return
	}

	response.RespondJSON(w, http.StatusCreated, future)
}

// UpdateFuture handles PUT requests to change a position.
// Trading fields can only change while the position is OPEN.
//
// Endpoint: PUT /api/future/{uuid}
// Request Body: UpdateFutureRequest (all fields optional)
// Response: 200 OK with updated Future
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the position does not exist
// Error: 409 Conflict if trading fields change on a position that is not OPEN
// Error: 500 Internal Server Error if update fails
func (h *FutureHandler) UpdateFuture(w http.ResponseWriter, r *http.Request) {
	futureID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateFutureRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateFuture(req); err != nil {
		respondValidationError(w, err)
		return
	}

	future, err := h.futureService.UpdateFuture(r.Context(), futureID, req)
	if err != nil {
		respondServiceError(w, err, "failed to update future")
		return
	}

	response.RespondJSON(w, http.StatusOK, future)
}

// DeleteFuture handles DELETE requests to remove a position.
//
// Endpoint: DELETE /api/future/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if the position does not exist
// Error: 500 Internal Server Error if deletion fails
func (h *FutureHandler) DeleteFuture(w http.ResponseWriter, r *http.Request) {
	futureID := chi.URLParam(r, "uuid")

	if err := h.futureService.DeleteFuture(r.Context(), futureID); err != nil {
		respondServiceError(w, err, "failed to delete future")
		return
	}

	response.RespondNoContent(w)
}

// CloseFuture handles POST requests closing an OPEN position at an exit price.
// The gain, fee and net sats are computed once and stored.
//
// Endpoint: POST /api/future/{uuid}/close
// Request Body: CloseFutureRequest (exitPrice, defaulting to the target price; closeDate)
// Response: 200 OK with FutureResponse
// Error: 400 Bad Request if validation fails or closeDate precedes buyDate
// Error: 404 Not Found if the position does not exist
// Error: 409 Conflict if the position is not OPEN
// Error: 500 Internal Server Error if the update fails
func (h *FutureHandler) CloseFuture(w http.ResponseWriter, r *http.Request) {
	futureID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CloseFutureRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCloseFuture(req); err != nil {
		respondValidationError(w, err)
		return
	}

	future, err := h.futureService.CloseFuture(r.Context(), futureID, req)
	if err != nil {
		respondServiceError(w, err, "failed to close future")
		return
	}

	response.RespondJSON(w, http.StatusOK, future)
}

// SetFutureStatus handles POST requests moving an OPEN position to STOP or CANCELLED.
//
// Endpoint: POST /api/future/{uuid}/status
// Request Body: SetFutureStatusRequest (status)
// Response: 200 OK with Future
// Error: 400 Bad Request if the status is not STOP or CANCELLED
// Error: 404 Not Found if the position does not exist
// Error: 409 Conflict if the position is not OPEN
// Error: 500 Internal Server Error if the update fails
func (h *FutureHandler) SetFutureStatus(w http.ResponseWriter, r *http.Request) {
	futureID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.SetFutureStatusRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetFutureStatus(req); err != nil {
		respondValidationError(w, err)
		return
	}

	status := model.FutureStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	future, err := h.futureService.SetStatus(r.Context(), futureID, status)
	if err != nil {
		respondServiceError(w, err, "failed to update future status")
		return
	}

	response.RespondJSON(w, http.StatusOK, future)
}
