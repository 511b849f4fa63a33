package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/testutil"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/yahoo"
)

func TestPortfolioHandler_PortfolioSummary(t *testing.T) {
	setupHandler := func(t *testing.T) (*PortfolioHandler, *sql.DB, *testutil.MockYahooClient) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockYahooClient()
		ps := testutil.NewTestPortfolioService(t, db, mock)
		return NewPortfolioHandler(ps), db, mock
	}

	t.Run("returns zeroed summary when no transactions exist", func(t *testing.T) {
		handler, _, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/summary", nil)
		w := httptest.NewRecorder()

		handler.PortfolioSummary(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.PortfolioSummary
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.TotalBTC != 0 || response.CurrentValue != 0 {
			t.Errorf("Expected empty holdings, got %+v", response.PortfolioMetrics)
		}
		if response.BTCPrice != testutil.MockBTCPrice {
			t.Errorf("Expected price %f, got %f", testutil.MockBTCPrice, response.BTCPrice)
		}
	})

	t.Run("aggregates buys and sells", func(t *testing.T) {
		handler, db, _ := setupHandler(t)
		testutil.NewTransaction().Build(t, db)
		testutil.NewTransaction().Sell().
			WithQuantity(0.05).
			WithTotalSpent(3000).
			WithDate(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).
			Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/summary", nil)
		w := httptest.NewRecorder()

		handler.PortfolioSummary(w, req)

		var response model.PortfolioSummary
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.TotalBTC != 0.05 {
			t.Errorf("Expected 0.05 BTC, got %f", response.TotalBTC)
		}
		if response.NetCost != 2000 {
			t.Errorf("Expected net cost 2000, got %f", response.NetCost)
		}
		if response.CurrentValue != 3000 {
			t.Errorf("Expected current value 3000, got %f", response.CurrentValue)
		}
		if response.GainLoss != 1000 {
			t.Errorf("Expected gain 1000, got %f", response.GainLoss)
		}
		if response.AvgCostBasis != 40000 {
			t.Errorf("Expected average cost 40000, got %f", response.AvgCostBasis)
		}
		if response.TransactionCount != 2 {
			t.Errorf("Expected 2 transactions, got %d", response.TransactionCount)
		}
	})

	t.Run("uses the preferred currency when none is requested", func(t *testing.T) {
		handler, db, _ := setupHandler(t)
		testutil.CreateSettings(t, db, model.CurrencyBRL, "UTC", model.UnitBTC)
		testutil.NewTransaction().Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/summary", nil)
		w := httptest.NewRecorder()

		handler.PortfolioSummary(w, req)

		var response model.PortfolioSummary
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Currency != model.CurrencyBRL {
			t.Errorf("Expected BRL, got %s", response.Currency)
		}
		if response.CurrentValue != 30000 {
			t.Errorf("Expected current value 30000 BRL, got %f", response.CurrentValue)
		}
	})

	t.Run("marks the summary stale when served from stored values", func(t *testing.T) {
		handler, db, mock := setupHandler(t)
		testutil.CreateMarketSnapshot(t, db, yahoo.SymbolBTCUSD, 55000, time.Now().Add(-time.Hour))
		testutil.CreateMarketSnapshot(t, db, yahoo.SymbolUSDBRL, 5.2, time.Now().Add(-time.Hour))
		mock.WithError(errors.New("feed down"))

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/summary", nil)
		w := httptest.NewRecorder()

		handler.PortfolioSummary(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.PortfolioSummary
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if !response.Stale {
			t.Error("Expected stale summary")
		}
		if response.BTCPrice != 55000 {
			t.Errorf("Expected stored price 55000, got %f", response.BTCPrice)
		}
	})

	t.Run("returns 400 for unsupported currency", func(t *testing.T) {
		handler, _, _ := setupHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/summary", map[string]string{"currency": "JPY"})
		w := httptest.NewRecorder()

		handler.PortfolioSummary(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 503 when no market data exists", func(t *testing.T) {
		handler, _, mock := setupHandler(t)
		mock.WithError(errors.New("feed down"))

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/summary", nil)
		w := httptest.NewRecorder()

		handler.PortfolioSummary(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d: %s", w.Code, w.Body.String())
		}
	})
}
