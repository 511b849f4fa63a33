package model

import "time"

// FutureDirection is the side of a leveraged position.
type FutureDirection string

const (
	DirectionLong  FutureDirection = "LONG"
	DirectionShort FutureDirection = "SHORT"
)

// FutureStatus is the lifecycle state of a futures order.
// OPEN moves to CLOSED, STOP or CANCELLED; the other three are terminal.
type FutureStatus string

const (
	FutureOpen      FutureStatus = "OPEN"
	FutureClosed    FutureStatus = "CLOSED"
	FutureStop      FutureStatus = "STOP"
	FutureCancelled FutureStatus = "CANCELLED"
)

// Future represents a single leveraged futures order.
// PercentGain, PercentFee, FeesPaid and NetPlSats are only set once the
// position is CLOSED and are never recomputed afterwards.
type Future struct {
	ID          string          `json:"id"`
	Direction   FutureDirection `json:"direction"`
	EntryPrice  float64         `json:"entryPrice"`
	ExitPrice   *float64        `json:"exitPrice,omitempty"`
	TargetPrice *float64        `json:"targetPrice,omitempty"`
	QuantityUSD float64         `json:"quantityUsd"`
	Status      FutureStatus    `json:"status"`
	BuyDate     time.Time       `json:"buyDate"`
	CloseDate   *time.Time      `json:"closeDate,omitempty"`
	PercentGain *float64        `json:"percentGain,omitempty"`
	PercentFee  *float64        `json:"percentFee,omitempty"`
	FeesPaid    *float64        `json:"feesPaid,omitempty"`
	NetPlSats   *float64        `json:"netPlSats,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
	UpdatedAt   time.Time       `json:"updatedAt,omitempty"`
}

// ReferenceExitPrice returns the exit price when set, otherwise the target price.
// The second value is false when neither is set.
func (f Future) ReferenceExitPrice() (float64, bool) {
	if f.ExitPrice != nil {
		return *f.ExitPrice, true
	}
	if f.TargetPrice != nil {
		return *f.TargetPrice, true
	}
	return 0, false
}

// FutureMetrics holds the P&L figures of a position.
type FutureMetrics struct {
	DaysOpen              int     `json:"daysOpen"`
	UnrealizedGainPercent float64 `json:"unrealizedGainPercent"`
	FeePercent            float64 `json:"feePercent"`
	NetGainPercent        float64 `json:"netGainPercent"`
	NetPlSats             float64 `json:"netPlSats"`
	FeesPaidUSD           float64 `json:"feesPaidUsd"`
}

// FutureResponse is a future together with the metrics shown for it.
// Metrics is nil for STOP and CANCELLED positions.
type FutureResponse struct {
	Future
	Metrics *FutureMetrics `json:"metrics,omitempty"`
}

// FuturesSummary aggregates all positions for the futures overview.
type FuturesSummary struct {
	OpenPositions    int     `json:"openPositions"`
	ClosedPositions  int     `json:"closedPositions"`
	OpenNotionalUSD  float64 `json:"openNotionalUsd"`
	UnrealizedPlSats float64 `json:"unrealizedPlSats"`
	RealizedPlSats   float64 `json:"realizedPlSats"`
	TotalFeesUSD     float64 `json:"totalFeesUsd"`
	WinRate          float64 `json:"winRate"`
}
