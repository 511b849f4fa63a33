package model

// PortfolioMetrics is the derived state of the BTC holdings at a point in time.
// It is never persisted. GainLoss is the sum of per-transaction gain/loss and
// is not guaranteed to equal CurrentValue - NetCost.
type PortfolioMetrics struct {
	TotalBTC     float64 `json:"totalBtc"`
	TotalCost    float64 `json:"totalCost"`
	TotalRevenue float64 `json:"totalRevenue"`
	NetCost      float64 `json:"netCost"`
	CurrentValue float64 `json:"currentValue"`
	GainLoss     float64 `json:"gainLoss"`
	AvgCostBasis float64 `json:"avgCostBasis"`
}

// PortfolioSummary is PortfolioMetrics plus the market inputs used to compute it.
type PortfolioSummary struct {
	PortfolioMetrics
	Currency         Currency `json:"currency"`
	BTCPrice         float64  `json:"btcPrice"`
	ExchangeRate     float64  `json:"exchangeRate"`
	TransactionCount int      `json:"transactionCount"`
	Stale            bool     `json:"stale"`

	QuantityUnit          QuantityUnit `json:"quantityUnit"`
	FormattedTotalBTC     string       `json:"formattedTotalBtc"`
	FormattedCurrentValue string       `json:"formattedCurrentValue"`
	FormattedGainLoss     string       `json:"formattedGainLoss"`
}
