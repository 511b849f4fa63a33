package model

import "time"

// Where a MarketQuote value came from.
const (
	QuoteSourceLive     = "live"
	QuoteSourceCache    = "cache"
	QuoteSourceFallback = "fallback"
)

// MarketQuote is a single price or exchange-rate observation.
type MarketQuote struct {
	Symbol string    `json:"symbol"`
	Value  float64   `json:"value"`
	AsOf   time.Time `json:"asOf"`
	Source string    `json:"source"`
}

// MarketSnapshot is the BTC/USD price together with the USD/BRL rate.
// ExchangeRate is expressed as BRL per USD.
type MarketSnapshot struct {
	BTCPrice     MarketQuote `json:"btcPrice"`
	ExchangeRate MarketQuote `json:"exchangeRate"`
}

// Stale reports whether either value came from the persisted fallback.
func (s MarketSnapshot) Stale() bool {
	return s.BTCPrice.Source == QuoteSourceFallback || s.ExchangeRate.Source == QuoteSourceFallback
}

// PriceIn returns the BTC price converted into the given currency.
func (s MarketSnapshot) PriceIn(currency Currency) float64 {
	if currency == CurrencyBRL && s.ExchangeRate.Value > 0 {
		return s.BTCPrice.Value * s.ExchangeRate.Value
	}
	return s.BTCPrice.Value
}
