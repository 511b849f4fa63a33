package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/service"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// AllTransactions handles GET requests for a page of transactions, newest first.
// Each transaction carries its gain/loss in the requested currency.
//
// Endpoint: GET /api/transaction?page=1&pageSize=20&currency=USD
// Response: 200 OK with TransactionPage
// Error: 400 Bad Request if page, pageSize or currency is invalid
// Error: 503 Service Unavailable if no market price is available
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) AllTransactions(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameter", err.Error())
		return
	}
	pageSize, err := queryInt(r, "pageSize", service.DefaultPageSize)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameter", err.Error())
		return
	}

	transactions, err := h.transactionService.GetTransactions(r.Context(), page, pageSize, r.URL.Query().Get("currency"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveTransactions.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transaction/{uuid}?currency=USD
// Response: 200 OK with TransactionResponse
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.transactionService.GetTransaction(r.Context(), transactionID, r.URL.Query().Get("currency"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveTransaction.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to create a new transaction.
//
// Endpoint: POST /api/transaction
// Request Body: CreateTransactionRequest (type, transferType, quantity, totalSpent, pricePerCoin, market, fees, notes, date)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if a sell or outgoing transfer exceeds the available balance
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		respondValidationError(w, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to create transaction")
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests to update an existing transaction.
//
// Endpoint: PUT /api/transaction/{uuid}
// Request Body: UpdateTransactionRequest (all fields optional)
// Response: 200 OK with updated Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if transaction not found
// Error: 409 Conflict if the change would oversell the available balance
// Error: 500 Internal Server Error if update fails
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		respondValidationError(w, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(r.Context(), transactionID, req)
	if err != nil {
		respondServiceError(w, err, "failed to update transaction")
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
//
// Endpoint: DELETE /api/transaction/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	if err := h.transactionService.DeleteTransaction(r.Context(), transactionID); err != nil {
		respondServiceError(w, err, "failed to delete transaction")
		return
	}

	response.RespondNoContent(w)
}
