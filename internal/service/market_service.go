package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/yahoo"
)

// MarketService serves the BTC price and the USD/BRL exchange rate.
//
// Values are read from an in-memory TTL cache first. On a miss the live feed
// is queried; successful values are cached and persisted. When the feed fails
// the last persisted value is served instead and marked as a fallback.
type MarketService struct {
	client   yahoo.Client
	repo     *repository.MarketRepository
	cache    *cache.Cache
	priceTTL time.Duration
	rateTTL  time.Duration
	log      zerolog.Logger
}

// NewMarketService creates a new MarketService.
func NewMarketService(
	client yahoo.Client,
	repo *repository.MarketRepository,
	priceTTL, rateTTL time.Duration,
	log zerolog.Logger,
) *MarketService {
	return &MarketService{
		client:   client,
		repo:     repo,
		cache:    cache.New(priceTTL, rateTTL),
		priceTTL: priceTTL,
		rateTTL:  rateTTL,
		log:      log.With().Str("component", "market").Logger(),
	}
}

// BTCPrice returns the BTC price in USD.
func (s *MarketService) BTCPrice(ctx context.Context) (model.MarketQuote, error) {
	return s.quote(ctx, yahoo.SymbolBTCUSD, s.priceTTL)
}

// ExchangeRate returns the USD/BRL rate as BRL per USD.
func (s *MarketService) ExchangeRate(ctx context.Context) (model.MarketQuote, error) {
	return s.quote(ctx, yahoo.SymbolUSDBRL, s.rateTTL)
}

// Snapshot returns the BTC price and the exchange rate, fetching both concurrently.
func (s *MarketService) Snapshot(ctx context.Context) (model.MarketSnapshot, error) {
	var snapshot model.MarketSnapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		q, err := s.BTCPrice(gctx)
		snapshot.BTCPrice = q
		return err
	})
	g.Go(func() error {
		q, err := s.ExchangeRate(gctx)
		snapshot.ExchangeRate = q
		return err
	})

	if err := g.Wait(); err != nil {
		return model.MarketSnapshot{}, err
	}
	return snapshot, nil
}

// RefreshPrice drops the cached BTC price and fetches it from the live feed.
// Unlike BTCPrice it reports feed failures instead of falling back.
func (s *MarketService) RefreshPrice(ctx context.Context) error {
	s.cache.Delete(yahoo.SymbolBTCUSD)
	_, err := s.fetchLive(ctx, yahoo.SymbolBTCUSD, s.priceTTL)
	return err
}

// RefreshExchangeRate drops the cached exchange rate and fetches it from the live feed.
func (s *MarketService) RefreshExchangeRate(ctx context.Context) error {
	s.cache.Delete(yahoo.SymbolUSDBRL)
	_, err := s.fetchLive(ctx, yahoo.SymbolUSDBRL, s.rateTTL)
	return err
}

// Refresh refetches both values and returns the resulting snapshot. Values the
// feed could not deliver are served from the fallback.
func (s *MarketService) Refresh(ctx context.Context) (model.MarketSnapshot, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.RefreshPrice(gctx); err != nil {
			s.log.Warn().Err(err).Msg("BTC price refresh failed")
		}
		return nil
	})
	g.Go(func() error {
		if err := s.RefreshExchangeRate(gctx); err != nil {
			s.log.Warn().Err(err).Msg("Exchange rate refresh failed")
		}
		return nil
	})
	_ = g.Wait() //nolint:errcheck // goroutines never return an error

	return s.Snapshot(ctx)
}

func (s *MarketService) quote(ctx context.Context, symbol string, ttl time.Duration) (model.MarketQuote, error) {
	if cached, ok := s.cache.Get(symbol); ok {
		q := cached.(model.MarketQuote)
		q.Source = model.QuoteSourceCache
		return q, nil
	}

	q, err := s.fetchLive(ctx, symbol, ttl)
	if err == nil {
		return q, nil
	}

	s.log.Warn().Err(err).Str("symbol", symbol).Msg("Live market data unavailable, using stored value")
	return s.fallback(ctx, symbol, err)
}

func (s *MarketService) fetchLive(ctx context.Context, symbol string, ttl time.Duration) (model.MarketQuote, error) {
	price, err := s.client.QueryQuote(ctx, symbol)
	if err != nil {
		return model.MarketQuote{}, err
	}
	if price.Price <= 0 {
		return model.MarketQuote{}, fmt.Errorf("non-positive value %v for %s", price.Price, symbol)
	}

	q := model.MarketQuote{
		Symbol: symbol,
		Value:  price.Price,
		AsOf:   price.AsOf,
		Source: model.QuoteSourceLive,
	}
	if q.AsOf.IsZero() {
		q.AsOf = time.Now().UTC()
	}

	s.cache.Set(symbol, q, ttl)

	if err := s.repo.SaveSnapshot(ctx, symbol, q.Value, q.AsOf); err != nil {
		s.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to persist market snapshot")
	}

	return q, nil
}

func (s *MarketService) fallback(ctx context.Context, symbol string, liveErr error) (model.MarketQuote, error) {
	value, asOf, err := s.repo.GetSnapshot(ctx, symbol)
	if err != nil {
		if !errors.Is(err, apperrors.ErrSnapshotNotFound) {
			s.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to read market snapshot")
		}
		return model.MarketQuote{}, fmt.Errorf("%w: %s: %v", apperrors.ErrMarketDataUnavailable, symbol, liveErr)
	}

	return model.MarketQuote{
		Symbol: symbol,
		Value:  value,
		AsOf:   asOf,
		Source: model.QuoteSourceFallback,
	}, nil
}
