package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/testutil"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/yahoo"
)

// TestMarketService_BTCPrice tests the cache, persistence and fallback path of a quote.
//
// WHY: Every valuation in the app depends on this price. A feed outage must
// degrade to the last known value instead of failing every request, and the
// cache must keep the app within Yahoo's rate limits.
func TestMarketService_BTCPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches live and persists the value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockYahooClient()
		svc := testutil.NewTestMarketService(t, db, mock)

		q, err := svc.BTCPrice(ctx)
		if err != nil {
			t.Fatalf("BTCPrice() returned unexpected error: %v", err)
		}

		if q.Value != testutil.MockBTCPrice || q.Source != model.QuoteSourceLive {
			t.Errorf("Expected live %f, got %+v", testutil.MockBTCPrice, q)
		}

		value, _, err := repository.NewMarketRepository(db).GetSnapshot(ctx, yahoo.SymbolBTCUSD)
		if err != nil {
			t.Fatalf("Expected persisted snapshot, got error: %v", err)
		}
		if value != testutil.MockBTCPrice {
			t.Errorf("Expected persisted %f, got %f", testutil.MockBTCPrice, value)
		}
	})

	t.Run("serves repeated calls from the cache", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockYahooClient()
		svc := testutil.NewTestMarketService(t, db, mock)

		if _, err := svc.BTCPrice(ctx); err != nil {
			t.Fatalf("BTCPrice() returned unexpected error: %v", err)
		}
		q, err := svc.BTCPrice(ctx)
		if err != nil {
			t.Fatalf("BTCPrice() returned unexpected error: %v", err)
		}

		if mock.Calls() != 1 {
			t.Errorf("Expected 1 feed call, got %d", mock.Calls())
		}
		if q.Source != model.QuoteSourceCache {
			t.Errorf("Expected cache source, got %s", q.Source)
		}
	})

	t.Run("falls back to the stored value when the feed fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		asOf := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		testutil.CreateMarketSnapshot(t, db, yahoo.SymbolBTCUSD, 57000, asOf)
		mock := testutil.NewMockYahooClient().WithError(errors.New("timeout"))
		svc := testutil.NewTestMarketService(t, db, mock)

		q, err := svc.BTCPrice(ctx)
		if err != nil {
			t.Fatalf("BTCPrice() returned unexpected error: %v", err)
		}

		if q.Value != 57000 || q.Source != model.QuoteSourceFallback {
			t.Errorf("Expected fallback 57000, got %+v", q)
		}
		if !q.AsOf.Equal(asOf) {
			t.Errorf("Expected asOf %v, got %v", asOf, q.AsOf)
		}
	})

	t.Run("does not cache fallback values", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateMarketSnapshot(t, db, yahoo.SymbolBTCUSD, 57000, time.Now())
		mock := testutil.NewMockYahooClient().WithError(errors.New("timeout"))
		svc := testutil.NewTestMarketService(t, db, mock)

		if _, err := svc.BTCPrice(ctx); err != nil {
			t.Fatalf("BTCPrice() returned unexpected error: %v", err)
		}
		mock.WithError(nil)

		q, err := svc.BTCPrice(ctx)
		if err != nil {
			t.Fatalf("BTCPrice() returned unexpected error: %v", err)
		}
		if q.Source != model.QuoteSourceLive {
			t.Errorf("Expected live value once the feed recovers, got %s", q.Source)
		}
	})

	t.Run("returns ErrMarketDataUnavailable without a stored value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockYahooClient().WithError(errors.New("timeout"))
		svc := testutil.NewTestMarketService(t, db, mock)

		_, err := svc.BTCPrice(ctx)
		if !errors.Is(err, apperrors.ErrMarketDataUnavailable) {
			t.Errorf("Expected ErrMarketDataUnavailable, got %v", err)
		}
	})

	t.Run("rejects non-positive feed values", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockYahooClient().WithPrice(yahoo.SymbolBTCUSD, 0)
		svc := testutil.NewTestMarketService(t, db, mock)

		_, err := svc.BTCPrice(ctx)
		if !errors.Is(err, apperrors.ErrMarketDataUnavailable) {
			t.Errorf("Expected ErrMarketDataUnavailable, got %v", err)
		}
	})
}

func TestMarketService_Snapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("returns price and rate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMarketService(t, db, testutil.NewMockYahooClient())

		snapshot, err := svc.Snapshot(ctx)
		if err != nil {
			t.Fatalf("Snapshot() returned unexpected error: %v", err)
		}

		if snapshot.BTCPrice.Value != testutil.MockBTCPrice {
			t.Errorf("Expected price %f, got %f", testutil.MockBTCPrice, snapshot.BTCPrice.Value)
		}
		if snapshot.ExchangeRate.Value != testutil.MockExchangeRate {
			t.Errorf("Expected rate %f, got %f", testutil.MockExchangeRate, snapshot.ExchangeRate.Value)
		}
		if snapshot.PriceIn(model.CurrencyBRL) != testutil.MockBTCPrice*testutil.MockExchangeRate {
			t.Errorf("Unexpected BRL price %f", snapshot.PriceIn(model.CurrencyBRL))
		}
	})

	t.Run("fails when one value is unavailable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockYahooClient()
		delete(mock.Prices, yahoo.SymbolUSDBRL)
		svc := testutil.NewTestMarketService(t, db, mock)

		_, err := svc.Snapshot(ctx)
		if !errors.Is(err, apperrors.ErrMarketDataUnavailable) {
			t.Errorf("Expected ErrMarketDataUnavailable, got %v", err)
		}
	})
}

func TestMarketService_RefreshPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the cached value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockYahooClient()
		svc := testutil.NewTestMarketService(t, db, mock)

		if _, err := svc.BTCPrice(ctx); err != nil {
			t.Fatalf("BTCPrice() returned unexpected error: %v", err)
		}
		mock.WithPrice(yahoo.SymbolBTCUSD, 70000)

		if err := svc.RefreshPrice(ctx); err != nil {
			t.Fatalf("RefreshPrice() returned unexpected error: %v", err)
		}

		q, _ := svc.BTCPrice(ctx)
		if q.Value != 70000 {
			t.Errorf("Expected refreshed 70000, got %f", q.Value)
		}
	})

	t.Run("reports feed failures", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateMarketSnapshot(t, db, yahoo.SymbolBTCUSD, 57000, time.Now())
		mock := testutil.NewMockYahooClient().WithError(errors.New("timeout"))
		svc := testutil.NewTestMarketService(t, db, mock)

		if err := svc.RefreshPrice(ctx); err == nil {
			t.Error("Expected error from RefreshPrice when the feed fails")
		}
	})
}
