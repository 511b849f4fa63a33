package yahoo

import "time"

// Response represents the raw JSON response structure from the Yahoo Finance
// chart API. Only the fields needed to read the latest market price are mapped.
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart wraps the result list and the optional API error.
type Chart struct {
	Result []Result    `json:"result"`
	Error  *ChartError `json:"error"`
}

// ChartError is the error object Yahoo returns for unknown symbols and the like.
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Result holds one symbol's metadata and intraday series.
type Result struct {
	Meta       Meta                `json:"meta"`
	Timestamp  []int64             `json:"timestamp"`
	Indicators IndicatorsContainer `json:"indicators"`
}

// Meta carries the symbol metadata including the latest regular market price.
type Meta struct {
	Currency           string  `json:"currency"`
	Symbol             string  `json:"symbol"`
	ExchangeName       string  `json:"exchangeName"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	RegularMarketTime  int64   `json:"regularMarketTime"`
}

// IndicatorsContainer groups the OHLC series.
type IndicatorsContainer struct {
	Quote []Quote `json:"quote"`
}

// Quote is one OHLC series. Yahoo emits null for intervals without trades.
type Quote struct {
	Open  []*float64 `json:"open"`
	Close []*float64 `json:"close"`
	High  []*float64 `json:"high"`
	Low   []*float64 `json:"low"`
}

// MarketPrice is the parsed latest price of a symbol.
type MarketPrice struct {
	Symbol   string
	Currency string
	Price    float64
	AsOf     time.Time
}
