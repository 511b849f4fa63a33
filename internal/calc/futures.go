package calc

import (
	"math"
	"time"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
)

const (
	// FixedFeePercent is charged once per position (open + close), in percent of notional.
	FixedFeePercent = 0.055
	// DailyFundingFeePercent accrues for every full day a position stays open.
	DailyFundingFeePercent = 0.0026
)

// DaysOpen returns the number of whole days between from and to, never negative.
func DaysOpen(from, to time.Time) int {
	days := int(math.Floor(to.Sub(from).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// FeePercent is the holding cost of a position open for daysOpen days.
func FeePercent(daysOpen int) float64 {
	return FixedFeePercent + DailyFundingFeePercent*float64(daysOpen)
}

// UnrealizedGainPercent is the raw price move in the position's favour, in percent.
// LONG gains when price rises above entry, SHORT when it falls below.
func UnrealizedGainPercent(direction model.FutureDirection, entryPrice, price float64) float64 {
	if entryPrice <= 0 {
		return 0
	}
	if direction == model.DirectionShort {
		return (entryPrice - price) / entryPrice * 100
	}
	return (price - entryPrice) / entryPrice * 100
}

// CalculateFutureMetrics returns the metrics to show for f.
//
// OPEN positions are evaluated live against currentPrice (USD) at now.
// CLOSED positions return the values frozen by CloseFutureMetrics without
// looking at the price. STOP and CANCELLED positions have no metrics and
// report false.
func CalculateFutureMetrics(f model.Future, currentPrice float64, now time.Time) (model.FutureMetrics, bool) {
	switch f.Status {
	case model.FutureOpen:
		return metricsAt(f, currentPrice, now), true
	case model.FutureClosed:
		return storedMetrics(f), true
	default:
		return model.FutureMetrics{}, false
	}
}

// CloseFutureMetrics computes the metrics that get frozen onto a position
// when it is closed at exitPrice on closeDate.
func CloseFutureMetrics(f model.Future, exitPrice float64, closeDate time.Time) model.FutureMetrics {
	return metricsAt(f, exitPrice, closeDate)
}

func metricsAt(f model.Future, price float64, at time.Time) model.FutureMetrics {
	days := DaysOpen(f.BuyDate, at)
	feePercent := FeePercent(days)
	gainPercent := UnrealizedGainPercent(f.Direction, f.EntryPrice, price)
	netPercent := gainPercent - feePercent

	netPlSats := 0.0
	if price > 0 {
		netPlUSD := f.QuantityUSD * netPercent / 100
		netPlSats = math.Round(netPlUSD / price * model.SatsPerBTC)
	}

	return model.FutureMetrics{
		DaysOpen:              days,
		UnrealizedGainPercent: gainPercent,
		FeePercent:            feePercent,
		NetGainPercent:        netPercent,
		NetPlSats:             netPlSats,
		FeesPaidUSD:           f.QuantityUSD * feePercent / 100,
	}
}

func storedMetrics(f model.Future) model.FutureMetrics {
	gain := valueOrZero(f.PercentGain)
	fee := valueOrZero(f.PercentFee)

	days := 0
	if f.CloseDate != nil {
		days = DaysOpen(f.BuyDate, *f.CloseDate)
	}

	return model.FutureMetrics{
		DaysOpen:              days,
		UnrealizedGainPercent: gain,
		FeePercent:            fee,
		NetGainPercent:        gain - fee,
		NetPlSats:             valueOrZero(f.NetPlSats),
		FeesPaidUSD:           valueOrZero(f.FeesPaid),
	}
}

// SummarizeFutures aggregates open and closed positions. STOP and CANCELLED
// positions are ignored. WinRate is the percentage of closed positions with a
// positive net result.
func SummarizeFutures(futures []model.Future, currentPrice float64, now time.Time) model.FuturesSummary {
	var summary model.FuturesSummary
	wins := 0

	for _, f := range futures {
		m, ok := CalculateFutureMetrics(f, currentPrice, now)
		if !ok {
			continue
		}
		summary.TotalFeesUSD += m.FeesPaidUSD

		if f.Status == model.FutureOpen {
			summary.OpenPositions++
			summary.OpenNotionalUSD += f.QuantityUSD
			summary.UnrealizedPlSats += m.NetPlSats
			continue
		}

		summary.ClosedPositions++
		summary.RealizedPlSats += m.NetPlSats
		if m.NetPlSats > 0 {
			wins++
		}
	}

	if summary.ClosedPositions > 0 {
		summary.WinRate = float64(wins) / float64(summary.ClosedPositions) * 100
	}

	return summary
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
