package calc

import (
	"math"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
)

// ConvertCurrency converts amount between USD and BRL using rate, expressed
// as BRL per USD. USD to BRL multiplies, BRL to USD divides.
// Any other pair, or an unusable rate, returns amount unchanged.
func ConvertCurrency(amount float64, from, to model.Currency, rate float64) float64 {
	if from == to || !from.IsSupported() || !to.IsSupported() {
		return amount
	}
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return amount
	}
	if from == model.CurrencyUSD {
		return amount * rate
	}
	return amount / rate
}
