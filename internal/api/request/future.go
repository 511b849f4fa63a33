package request

type CreateFutureRequest struct {
	Direction   string   `json:"direction"`
	EntryPrice  float64  `json:"entryPrice"`
	TargetPrice *float64 `json:"targetPrice,omitempty"`
	ExitPrice   *float64 `json:"exitPrice,omitempty"`
	QuantityUSD float64  `json:"quantityUsd"`
	BuyDate     string   `json:"buyDate"`
	Notes       string   `json:"notes"`
}

type UpdateFutureRequest struct {
	Direction   *string  `json:"direction,omitempty"`
	EntryPrice  *float64 `json:"entryPrice,omitempty"`
	TargetPrice *float64 `json:"targetPrice,omitempty"`
	ExitPrice   *float64 `json:"exitPrice,omitempty"`
	QuantityUSD *float64 `json:"quantityUsd,omitempty"`
	BuyDate     *string  `json:"buyDate,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// CloseFutureRequest closes an OPEN position. CloseDate defaults to now and
// ExitPrice to the position's target price.
type CloseFutureRequest struct {
	ExitPrice *float64 `json:"exitPrice,omitempty"`
	CloseDate *string `json:"closeDate,omitempty"`
}

type SetFutureStatusRequest struct {
	Status string `json:"status"`
}
