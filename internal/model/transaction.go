package model

import "time"

// TransactionType is the kind of BTC movement a transaction records.
type TransactionType string

const (
	TransactionBuy      TransactionType = "buy"
	TransactionSell     TransactionType = "sell"
	TransactionTransfer TransactionType = "transfer"
)

// TransferDirection tells whether a transfer moved BTC into or out of the tracked holdings.
type TransferDirection string

const (
	TransferIn  TransferDirection = "in"
	TransferOut TransferDirection = "out"
)

// Transaction represents one buy, sell or transfer of BTC.
// Quantity is always non-negative; direction comes from Type and TransferType.
// TotalSpent, PricePerCoin and Fees are denominated in Market.
type Transaction struct {
	ID           string             `json:"id"`
	Type         TransactionType    `json:"type"`
	TransferType *TransferDirection `json:"transferType,omitempty"`
	Quantity     float64            `json:"quantity"`
	TotalSpent   float64            `json:"totalSpent"`
	PricePerCoin float64            `json:"pricePerCoin"`
	Market       Currency           `json:"market"`
	Fees         *float64           `json:"fees,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	Date         time.Time          `json:"date"`
	CreatedAt    time.Time          `json:"createdAt,omitempty"`
	UpdatedAt    time.Time          `json:"updatedAt,omitempty"`
}

// FeeAmount returns the recorded fee or zero when none was recorded.
func (t Transaction) FeeAmount() float64 {
	if t.Fees == nil {
		return 0
	}
	return *t.Fees
}

// IsTransferIn reports whether the transaction is an inbound transfer.
func (t Transaction) IsTransferIn() bool {
	return t.Type == TransactionTransfer && t.TransferType != nil && *t.TransferType == TransferIn
}

// IsTransferOut reports whether the transaction is an outbound transfer.
func (t Transaction) IsTransferOut() bool {
	return t.Type == TransactionTransfer && t.TransferType != nil && *t.TransferType == TransferOut
}

// BalanceDelta is the change in BTC held caused by the transaction.
func (t Transaction) BalanceDelta() float64 {
	switch {
	case t.Type == TransactionBuy || t.IsTransferIn():
		return t.Quantity
	case t.Type == TransactionSell || t.IsTransferOut():
		return -t.Quantity
	}
	return 0
}

// TransactionResponse is a transaction enriched with its gain/loss in the
// currency the caller asked for. The Formatted fields and DisplayDate follow
// the user's settings.
type TransactionResponse struct {
	Transaction
	GainLoss          float64  `json:"gainLoss"`
	GainLossStyle     string   `json:"gainLossStyle"`
	Currency          Currency `json:"currency"`
	FormattedGainLoss string   `json:"formattedGainLoss"`
	FormattedQuantity string   `json:"formattedQuantity"`
	DisplayDate       string   `json:"displayDate"`
}

// TransactionPage is one page of a transaction listing.
type TransactionPage struct {
	Items      []TransactionResponse `json:"items"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalItems int                   `json:"totalItems"`
	TotalPages int                   `json:"totalPages"`
}
