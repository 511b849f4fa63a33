package handlers

import (
	"net/http"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/service"
)

// MarketHandler serves the BTC price and the USD/BRL exchange rate.
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
	}
}

// MarketResponse is the market snapshot plus a staleness flag.
type MarketResponse struct {
	BTCPrice     model.MarketQuote `json:"btcPrice"`
	ExchangeRate model.MarketQuote `json:"exchangeRate"`
	Stale        bool              `json:"stale"`
}

// Snapshot handles GET requests for the current market values.
//
// Endpoint: GET /api/market
// Response: 200 OK with MarketResponse
// Error: 503 Service Unavailable if neither the feed nor a stored value is available
func (h *MarketHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.marketService.Snapshot(r.Context())
	if err != nil {
		respondServiceError(w, err, "failed to retrieve market data")
		return
	}

	response.RespondJSON(w, http.StatusOK, MarketResponse{
		BTCPrice:     snapshot.BTCPrice,
		ExchangeRate: snapshot.ExchangeRate,
		Stale:        snapshot.Stale(),
	})
}

// Refresh handles POST requests that bypass the cache and refetch both values.
//
// Endpoint: POST /api/market/refresh
// Response: 200 OK with MarketResponse
// Error: 503 Service Unavailable if neither the feed nor a stored value is available
func (h *MarketHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.marketService.Refresh(r.Context())
	if err != nil {
		respondServiceError(w, err, "failed to refresh market data")
		return
	}

	response.RespondJSON(w, http.StatusOK, MarketResponse{
		BTCPrice:     snapshot.BTCPrice,
		ExchangeRate: snapshot.ExchangeRate,
		Stale:        snapshot.Stale(),
	})
}
