package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// jobTimeout bounds a single refresh so a hung feed cannot pile up runs.
const jobTimeout = 20 * time.Second

// MarketRefresher is the part of the market service the refresh jobs drive.
type MarketRefresher interface {
	RefreshPrice(ctx context.Context) error
	RefreshExchangeRate(ctx context.Context) error
}

// PriceRefreshJob refetches the BTC price into the cache.
type PriceRefreshJob struct {
	market MarketRefresher
	log    zerolog.Logger
}

// NewPriceRefreshJob creates a new PriceRefreshJob
func NewPriceRefreshJob(market MarketRefresher, log zerolog.Logger) *PriceRefreshJob {
	return &PriceRefreshJob{
		market: market,
		log:    log.With().Str("job", "market-price-refresh").Logger(),
	}
}

// Name returns the job name
func (j *PriceRefreshJob) Name() string {
	return "market-price-refresh"
}

// Run executes the refresh
func (j *PriceRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	if err := j.market.RefreshPrice(ctx); err != nil {
		return err
	}
	j.log.Debug().Dur("duration", time.Since(start)).Msg("BTC price refreshed")
	return nil
}

// ExchangeRateRefreshJob refetches the USD/BRL rate into the cache.
type ExchangeRateRefreshJob struct {
	market MarketRefresher
	log    zerolog.Logger
}

// NewExchangeRateRefreshJob creates a new ExchangeRateRefreshJob
func NewExchangeRateRefreshJob(market MarketRefresher, log zerolog.Logger) *ExchangeRateRefreshJob {
	return &ExchangeRateRefreshJob{
		market: market,
		log:    log.With().Str("job", "exchange-rate-refresh").Logger(),
	}
}

// Name returns the job name
func (j *ExchangeRateRefreshJob) Name() string {
	return "exchange-rate-refresh"
}

// Run executes the refresh
func (j *ExchangeRateRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	if err := j.market.RefreshExchangeRate(ctx); err != nil {
		return err
	}
	j.log.Debug().Dur("duration", time.Since(start)).Msg("Exchange rate refreshed")
	return nil
}
