package calc

import (
	"testing"
	"time"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var futuresNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func openFuture(direction model.FutureDirection, entry, notional float64, daysAgo int) model.Future {
	return model.Future{
		ID:          "f1",
		Direction:   direction,
		EntryPrice:  entry,
		QuantityUSD: notional,
		Status:      model.FutureOpen,
		BuyDate:     futuresNow.Add(-time.Duration(daysAgo)*24*time.Hour - time.Hour),
	}
}

func TestCalculateFutureMetrics_OpenLong(t *testing.T) {
	f := openFuture(model.DirectionLong, 50000, 1000, 10)

	m, ok := CalculateFutureMetrics(f, 55000, futuresNow)

	require.True(t, ok)
	assert.Equal(t, 10, m.DaysOpen)
	assert.InDelta(t, 10.0, m.UnrealizedGainPercent, 1e-9)
	assert.InDelta(t, 0.081, m.FeePercent, 1e-12)
	assert.InDelta(t, 9.919, m.NetGainPercent, 1e-9)
	assert.Equal(t, 180345.0, m.NetPlSats)
	assert.InDelta(t, 0.81, m.FeesPaidUSD, 1e-9)
}

func TestCalculateFutureMetrics_OpenShort(t *testing.T) {
	f := openFuture(model.DirectionShort, 50000, 2000, 0)

	m, ok := CalculateFutureMetrics(f, 45000, futuresNow)

	require.True(t, ok)
	assert.Equal(t, 0, m.DaysOpen)
	assert.InDelta(t, 10.0, m.UnrealizedGainPercent, 1e-9)
	assert.InDelta(t, FixedFeePercent, m.FeePercent, 1e-12)
	// (2000 * 9.945 / 100) / 45000 * 1e8
	assert.Equal(t, 442000.0, m.NetPlSats)
}

func TestCalculateFutureMetrics_Closed(t *testing.T) {
	closeDate := futuresNow.Add(-48 * time.Hour)
	f := model.Future{
		Direction:   model.DirectionLong,
		EntryPrice:  50000,
		QuantityUSD: 1000,
		Status:      model.FutureClosed,
		BuyDate:     futuresNow.Add(-30 * 24 * time.Hour),
		CloseDate:   &closeDate,
		ExitPrice:   ptr(52000.0),
		PercentGain: ptr(4.0),
		PercentFee:  ptr(0.1),
		FeesPaid:    ptr(1.0),
		NetPlSats:   ptr(7500.0),
	}

	// a wildly different live price must not matter
	m, ok := CalculateFutureMetrics(f, 10, futuresNow)

	require.True(t, ok)
	assert.Equal(t, 28, m.DaysOpen)
	assert.Equal(t, 4.0, m.UnrealizedGainPercent)
	assert.Equal(t, 0.1, m.FeePercent)
	assert.InDelta(t, 3.9, m.NetGainPercent, 1e-12)
	assert.Equal(t, 7500.0, m.NetPlSats)
	assert.Equal(t, 1.0, m.FeesPaidUSD)
}

func TestCalculateFutureMetrics_ClosedMissingValues(t *testing.T) {
	f := model.Future{Status: model.FutureClosed, EntryPrice: 50000, QuantityUSD: 1000}

	m, ok := CalculateFutureMetrics(f, 60000, futuresNow)

	require.True(t, ok)
	assert.Equal(t, model.FutureMetrics{}, m)
}

func TestCalculateFutureMetrics_TerminalStatesExcluded(t *testing.T) {
	for _, status := range []model.FutureStatus{model.FutureStop, model.FutureCancelled} {
		f := openFuture(model.DirectionLong, 50000, 1000, 3)
		f.Status = status

		_, ok := CalculateFutureMetrics(f, 60000, futuresNow)
		assert.False(t, ok, "status %s", status)
	}
}

func TestCalculateFutureMetrics_Guards(t *testing.T) {
	t.Run("zero entry price", func(t *testing.T) {
		m, ok := CalculateFutureMetrics(openFuture(model.DirectionLong, 0, 1000, 1), 60000, futuresNow)
		require.True(t, ok)
		assert.Zero(t, m.UnrealizedGainPercent)
	})

	t.Run("zero current price", func(t *testing.T) {
		m, ok := CalculateFutureMetrics(openFuture(model.DirectionLong, 50000, 1000, 1), 0, futuresNow)
		require.True(t, ok)
		assert.Zero(t, m.NetPlSats)
	})

	t.Run("buy date in the future", func(t *testing.T) {
		f := openFuture(model.DirectionLong, 50000, 1000, 0)
		f.BuyDate = futuresNow.Add(72 * time.Hour)
		m, _ := CalculateFutureMetrics(f, 50000, futuresNow)
		assert.Equal(t, 0, m.DaysOpen)
	})
}

func TestUnrealizedGainPercent_ReflectionSymmetry(t *testing.T) {
	entries := []float64{100, 25000, 50000, 68123.45}
	moves := []float64{-0.5, -0.1, -0.013, 0, 0.02, 0.3, 0.75}

	for _, e := range entries {
		for _, mv := range moves {
			p := e * (1 + mv)
			long := UnrealizedGainPercent(model.DirectionLong, e, p)
			short := UnrealizedGainPercent(model.DirectionShort, e, 2*e-p)
			assert.InDelta(t, long, short, 1e-9, "entry=%v price=%v", e, p)
		}
	}
}

func TestFeePercent_Monotonic(t *testing.T) {
	prev := FeePercent(0)
	assert.InDelta(t, FixedFeePercent, prev, 1e-12)

	for days := 1; days <= 400; days++ {
		fee := FeePercent(days)
		assert.Greater(t, fee, prev, "days=%d", days)
		prev = fee
	}
}

func TestDaysOpen(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysOpen(start, start.Add(23*time.Hour)))
	assert.Equal(t, 1, DaysOpen(start, start.Add(24*time.Hour)))
	assert.Equal(t, 1, DaysOpen(start, start.Add(47*time.Hour+59*time.Minute)))
	assert.Equal(t, 0, DaysOpen(start, start.Add(-5*24*time.Hour)))
}

func TestCloseFutureMetrics(t *testing.T) {
	f := openFuture(model.DirectionShort, 60000, 500, 0)
	f.BuyDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	closeDate := time.Date(2024, 1, 21, 6, 0, 0, 0, time.UTC)

	m := CloseFutureMetrics(f, 54000, closeDate)

	assert.Equal(t, 20, m.DaysOpen)
	assert.InDelta(t, 10.0, m.UnrealizedGainPercent, 1e-9)
	assert.InDelta(t, 0.055+0.052, m.FeePercent, 1e-12)
	assert.InDelta(t, 500*0.107/100, m.FeesPaidUSD, 1e-12)
}

func TestSummarizeFutures(t *testing.T) {
	closeDate := futuresNow.Add(-24 * time.Hour)
	winner := model.Future{Status: model.FutureClosed, QuantityUSD: 1000, CloseDate: &closeDate, NetPlSats: ptr(5000.0), FeesPaid: ptr(0.6)}
	loser := model.Future{Status: model.FutureClosed, QuantityUSD: 1000, CloseDate: &closeDate, NetPlSats: ptr(-2000.0), FeesPaid: ptr(0.7)}
	stopped := openFuture(model.DirectionLong, 50000, 9999, 1)
	stopped.Status = model.FutureStop
	open := openFuture(model.DirectionLong, 50000, 1000, 10)

	s := SummarizeFutures([]model.Future{winner, loser, stopped, open}, 55000, futuresNow)

	assert.Equal(t, 1, s.OpenPositions)
	assert.Equal(t, 2, s.ClosedPositions)
	assert.Equal(t, 1000.0, s.OpenNotionalUSD)
	assert.Equal(t, 180345.0, s.UnrealizedPlSats)
	assert.Equal(t, 3000.0, s.RealizedPlSats)
	assert.InDelta(t, 0.6+0.7+0.81, s.TotalFeesUSD, 1e-9)
	assert.InDelta(t, 50.0, s.WinRate, 1e-12)
}

func TestSummarizeFutures_Empty(t *testing.T) {
	assert.Equal(t, model.FuturesSummary{}, SummarizeFutures(nil, 60000, futuresNow))
}
