package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/testutil"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/yahoo"
)

// TestPortfolioService_Summary tests the portfolio aggregation.
//
// WHY: The summary is the headline figure of the app. It must combine buys in
// different markets, count transfers towards holdings only, and tell the user
// when it was computed from stored instead of live market data.
func TestPortfolioService_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("returns zeros for an empty portfolio", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db, testutil.NewMockYahooClient())

		// Execute
		summary, err := svc.Summary(ctx, "")

		// Assert
		if err != nil {
			t.Fatalf("Summary() returned unexpected error: %v", err)
		}
		if summary.TotalBTC != 0 || summary.CurrentValue != 0 || summary.TransactionCount != 0 {
			t.Errorf("Expected empty summary, got %+v", summary)
		}
		if summary.Currency != model.CurrencyUSD {
			t.Errorf("Expected default USD, got %s", summary.Currency)
		}
	})

	t.Run("combines markets, fees and transfers", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.NewTransaction().WithFees(10).Build(t, db)
		testutil.NewTransaction().TransferIn().WithQuantity(0.05).Build(t, db)
		testutil.NewTransaction().
			WithMarket(model.CurrencyBRL).
			WithTotalSpent(25000).
			WithDate(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).
			Build(t, db)
		svc := testutil.NewTestPortfolioService(t, db, testutil.NewMockYahooClient())

		// Execute
		summary, err := svc.Summary(ctx, "USD")
		if err != nil {
			t.Fatalf("Summary() returned unexpected error: %v", err)
		}

		// Assert
		if summary.TotalBTC != 0.25 {
			t.Errorf("Expected 0.25 BTC, got %f", summary.TotalBTC)
		}
		// 5000 + 10 fee + 25000 BRL at 5
		if summary.TotalCost != 10010 {
			t.Errorf("Expected cost 10010, got %f", summary.TotalCost)
		}
		if summary.CurrentValue != 15000 {
			t.Errorf("Expected value 15000, got %f", summary.CurrentValue)
		}
		if summary.AvgCostBasis != 40040 {
			t.Errorf("Expected average cost 40040, got %f", summary.AvgCostBasis)
		}
		if summary.TransactionCount != 3 {
			t.Errorf("Expected 3 transactions, got %d", summary.TransactionCount)
		}
		if summary.Stale {
			t.Error("Expected live summary, got stale")
		}
	})

	t.Run("formats totals with the user's unit and currency", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.CreateSettings(t, db, model.CurrencyBRL, "UTC", model.UnitSats)
		testutil.NewTransaction().Build(t, db)
		svc := testutil.NewTestPortfolioService(t, db, testutil.NewMockYahooClient())

		// Execute
		summary, err := svc.Summary(ctx, "")
		if err != nil {
			t.Fatalf("Summary() returned unexpected error: %v", err)
		}

		// Assert
		if summary.QuantityUnit != model.UnitSats {
			t.Errorf("Expected unit SATS, got %s", summary.QuantityUnit)
		}
		if summary.FormattedTotalBTC != "10,000,000 sats" {
			t.Errorf("Expected '10,000,000 sats', got %q", summary.FormattedTotalBTC)
		}
		// 0.1 BTC at 300000 BRL
		if summary.FormattedCurrentValue != "R$ 30.000,00" {
			t.Errorf("Expected 'R$ 30.000,00', got %q", summary.FormattedCurrentValue)
		}
		if summary.FormattedGainLoss != "R$ 5.000,00" {
			t.Errorf("Expected 'R$ 5.000,00', got %q", summary.FormattedGainLoss)
		}
	})

	t.Run("marks fallback data as stale", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.NewTransaction().Build(t, db)
		testutil.CreateMarketSnapshot(t, db, yahoo.SymbolBTCUSD, 55000, time.Now())
		testutil.CreateMarketSnapshot(t, db, yahoo.SymbolUSDBRL, 5, time.Now())
		mock := testutil.NewMockYahooClient().WithError(errors.New("down"))
		svc := testutil.NewTestPortfolioService(t, db, mock)

		summary, err := svc.Summary(ctx, "")
		if err != nil {
			t.Fatalf("Summary() returned unexpected error: %v", err)
		}

		if !summary.Stale {
			t.Error("Expected stale summary")
		}
		if summary.BTCPrice != 55000 {
			t.Errorf("Expected fallback price 55000, got %f", summary.BTCPrice)
		}
	})

	t.Run("returns ErrMarketDataUnavailable without any data", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockYahooClient().WithError(errors.New("down"))
		svc := testutil.NewTestPortfolioService(t, db, mock)

		_, err := svc.Summary(ctx, "")
		if !errors.Is(err, apperrors.ErrMarketDataUnavailable) {
			t.Errorf("Expected ErrMarketDataUnavailable, got %v", err)
		}
	})
}
