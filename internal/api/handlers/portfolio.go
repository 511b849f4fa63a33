package handlers

import (
	"net/http"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/service"
)

// PortfolioHandler handles HTTP requests for portfolio endpoints.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// PortfolioSummary handles GET requests for the aggregated holdings.
// The optional currency query parameter overrides the user's preferred currency.
//
// Endpoint: GET /api/portfolio/summary?currency=BRL
// Response: 200 OK with PortfolioSummary
// Error: 400 Bad Request if currency is not USD or BRL
// Error: 503 Service Unavailable if no market price is available
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) PortfolioSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.Summary(r.Context(), r.URL.Query().Get("currency"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetPortfolioSummary.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
