package handlers

import (
	"net/http"
	"strings"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/calc"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/validation"
)

// CalcHandler exposes the form input helpers. It holds no state.
type CalcHandler struct{}

// NewCalcHandler creates a new CalcHandler
func NewCalcHandler() *CalcHandler {
	return &CalcHandler{}
}

// NormalizeResponse is the result of normalizing one typed value.
// Parsed is empty when the input is not a complete number.
type NormalizeResponse struct {
	Valid      bool   `json:"valid"`
	Normalized string `json:"normalized"`
	Parsed     string `json:"parsed,omitempty"`
}

// Normalize handles POST requests that validate and normalize a locale formatted number.
//
// Endpoint: POST /api/calc/normalize
// Request Body: NormalizeRequest (input, currency)
// Response: 200 OK with NormalizeResponse
// Error: 400 Bad Request if currency is missing or unsupported
func (h *CalcHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.NormalizeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateNormalize(req); err != nil {
		respondValidationError(w, err)
		return
	}

	currency, ok := parseCurrency(w, req.Currency)
	if !ok {
		return
	}

	resp := NormalizeResponse{
		Valid:      calc.ValidateDecimalInput(req.Input, currency),
		Normalized: calc.NormalizeDecimalInput(req.Input, currency),
	}
	if parsed, ok := calc.ParseDecimalInput(req.Input, currency); ok {
		resp.Parsed = parsed.String()
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// LinkedFields handles POST requests recomputing the two fields that were not edited.
//
// Endpoint: POST /api/calc/linked-fields
// Request Body: LinkedFieldsRequest (changed, total, quantity, pricePerUnit, unit, currency)
// Response: 200 OK with LinkedFields
// Error: 400 Bad Request if changed, unit or currency is invalid
func (h *CalcHandler) LinkedFields(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LinkedFieldsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLinkedFields(req); err != nil {
		respondValidationError(w, err)
		return
	}

	currency, ok := parseCurrency(w, req.Currency)
	if !ok {
		return
	}

	unit := model.UnitBTC
	if req.Unit != "" {
		unit = model.QuantityUnit(strings.ToUpper(req.Unit))
	}

	fields := calc.CalculateLinkedFields(calc.LinkedFieldsInput{
		Changed:      calc.LinkedField(req.Changed),
		Total:        req.Total,
		Quantity:     req.Quantity,
		PricePerUnit: req.PricePerUnit,
		Unit:         unit,
		Currency:     currency,
	})

	response.RespondJSON(w, http.StatusOK, fields)
}

func parseCurrency(w http.ResponseWriter, raw string) (model.Currency, bool) {
	currency := model.ParseCurrency(raw)
	if !currency.IsSupported() {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrUnsupportedCurrency.Error(), raw)
		return "", false
	}
	return currency, true
}
