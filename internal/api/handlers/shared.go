package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/validation"
)

// maxBodyBytes caps request bodies; every payload of this API is tiny.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T, rejecting unknown fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if r.Body == nil {
		return req, errors.New("request body is required")
	}

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return req, fmt.Errorf("invalid JSON: %w", err)
	}
	return req, nil
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, key string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

// respondServiceError maps service errors to status codes. Anything not
// recognised is a 500 with the given message.
func respondServiceError(w http.ResponseWriter, err error, message string) {
	var validationErr *validation.Error

	switch {
	case errors.As(err, &validationErr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
	case errors.Is(err, apperrors.ErrUnsupportedCurrency):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrUnsupportedCurrency.Error(), err.Error())
	case errors.Is(err, apperrors.ErrTransactionNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrFutureNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrFutureNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		response.RespondError(w, http.StatusConflict, apperrors.ErrInsufficientBalance.Error(), err.Error())
	case errors.Is(err, apperrors.ErrFutureNotOpen):
		response.RespondError(w, http.StatusConflict, apperrors.ErrFutureNotOpen.Error(), err.Error())
	case errors.Is(err, apperrors.ErrMarketDataUnavailable):
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrMarketDataUnavailable.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}

// respondValidationError writes a 400 for a request that failed validation.
func respondValidationError(w http.ResponseWriter, err error) {
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
		return
	}
	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
}
