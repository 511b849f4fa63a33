package calc

import "github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"

// GainLossStyle tells the UI how to color a gain/loss figure.
type GainLossStyle string

const (
	StyleGain    GainLossStyle = "gain"
	StyleLoss    GainLossStyle = "loss"
	StyleNeutral GainLossStyle = "neutral"
)

// GainLoss is a transaction's gain/loss in the user's currency.
type GainLoss struct {
	Value float64       `json:"value"`
	Style GainLossStyle `json:"style"`
}

// TransactionGainLoss computes the gain/loss shown next to a transaction.
// currentPrice is the BTC unit price in userCurrency and rate converts
// between the transaction's market and userCurrency (BRL per USD).
//
//   - buy: value of the bought BTC today minus what was paid, fees included.
//   - sell: proceeds minus the same quantity at the recorded unit price.
//   - transfer: current value of the moved BTC, always neutral.
func TransactionGainLoss(tx model.Transaction, currentPrice float64, userCurrency model.Currency, rate float64) GainLoss {
	convert := func(amount float64) float64 {
		return ConvertCurrency(amount, tx.Market, userCurrency, rate)
	}

	switch tx.Type {
	case model.TransactionBuy:
		return styled(tx.Quantity*currentPrice - convert(tx.TotalSpent+tx.FeeAmount()))
	case model.TransactionSell:
		return styled(convert(tx.TotalSpent) - tx.Quantity*convert(tx.PricePerCoin))
	case model.TransactionTransfer:
		return GainLoss{Value: tx.Quantity * currentPrice, Style: StyleNeutral}
	default:
		return GainLoss{Style: StyleNeutral}
	}
}

func styled(v float64) GainLoss {
	if v < 0 {
		return GainLoss{Value: v, Style: StyleLoss}
	}
	return GainLoss{Value: v, Style: StyleGain}
}
