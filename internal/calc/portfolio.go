package calc

import (
	"math"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
)

// dustThreshold is one satoshi; balances smaller than that are shown as zero.
const dustThreshold = 1e-8

// CalculatePortfolioMetrics folds transactions into holdings, cost, revenue
// and gain/loss as of currentPrice (BTC unit price in userCurrency).
// The result does not depend on the order of txs.
//
// GainLoss is the sum of the buy and sell gain/loss from TransactionGainLoss.
// Transfers move BTC in or out but never touch cost, revenue or gain/loss.
// TotalBTC is floored at zero and AvgCostBasis may be negative when sells
// brought in more than buys cost.
func CalculatePortfolioMetrics(txs []model.Transaction, currentPrice float64, userCurrency model.Currency, rate float64) model.PortfolioMetrics {
	var totalBTC, totalCost, totalRevenue, gainLoss float64

	for _, tx := range txs {
		switch tx.Type {
		case model.TransactionBuy:
			totalBTC += tx.Quantity
			totalCost += ConvertCurrency(tx.TotalSpent+tx.FeeAmount(), tx.Market, userCurrency, rate)
			gainLoss += TransactionGainLoss(tx, currentPrice, userCurrency, rate).Value
		case model.TransactionSell:
			totalBTC -= tx.Quantity
			totalRevenue += ConvertCurrency(tx.TotalSpent, tx.Market, userCurrency, rate)
			gainLoss += TransactionGainLoss(tx, currentPrice, userCurrency, rate).Value
		case model.TransactionTransfer:
			if tx.IsTransferIn() {
				totalBTC += tx.Quantity
			} else if tx.IsTransferOut() {
				totalBTC -= tx.Quantity
			}
		}
	}

	if totalBTC < 0 || math.Abs(totalBTC) < dustThreshold {
		totalBTC = 0
	}

	netCost := totalCost - totalRevenue
	avgCostBasis := 0.0
	if totalBTC > 0 {
		avgCostBasis = netCost / totalBTC
	}

	return model.PortfolioMetrics{
		TotalBTC:     totalBTC,
		TotalCost:    totalCost,
		TotalRevenue: totalRevenue,
		NetCost:      netCost,
		CurrentValue: totalBTC * currentPrice,
		GainLoss:     gainLoss,
		AvgCostBasis: avgCostBasis,
	}
}

// AvailableBTC returns the BTC balance left after txs, floored at zero.
// It is used to check that a sell does not exceed the holdings.
func AvailableBTC(txs []model.Transaction) float64 {
	return CalculatePortfolioMetrics(txs, 0, model.CurrencyUSD, 0).TotalBTC
}

// NetBTC returns the signed BTC balance of txs without the zero floor.
func NetBTC(txs []model.Transaction) float64 {
	var net float64
	for _, tx := range txs {
		net += tx.BalanceDelta()
	}
	return net
}
