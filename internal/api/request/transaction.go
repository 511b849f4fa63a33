package request

type CreateTransactionRequest struct {
	Type         string   `json:"type"`
	TransferType *string  `json:"transferType,omitempty"`
	Quantity     float64  `json:"quantity"`
	TotalSpent   float64  `json:"totalSpent"`
	PricePerCoin float64  `json:"pricePerCoin"`
	Market       string   `json:"market"`
	Fees         *float64 `json:"fees,omitempty"`
	Notes        string   `json:"notes"`
	Date         string   `json:"date"`
}

type UpdateTransactionRequest struct {
	Type         *string  `json:"type,omitempty"`
	TransferType *string  `json:"transferType,omitempty"`
	Quantity     *float64 `json:"quantity,omitempty"`
	TotalSpent   *float64 `json:"totalSpent,omitempty"`
	PricePerCoin *float64 `json:"pricePerCoin,omitempty"`
	Market       *string  `json:"market,omitempty"`
	Fees         *float64 `json:"fees,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	Date         *string  `json:"date,omitempty"`
}
