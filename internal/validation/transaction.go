package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	"buy": true, "sell": true, "transfer": true,
}

// ValidTransferType contains the allowed transfer directions.
var ValidTransferType = map[string]bool{
	"in": true, "out": true,
}

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - type: Must be one of: buy, sell, transfer
//   - transferType: Required for transfers (in, out), rejected otherwise
//   - quantity: Must be positive
//   - totalSpent: Must be positive for buy and sell
//   - market: USD or BRL for buy and sell; optional for transfers
//   - date: YYYY-MM-DD or RFC3339
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	txType := strings.ToLower(strings.TrimSpace(req.Type))
	if txType == "" {
		errors["type"] = "type is required"
	} else if !ValidTransactionType[txType] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	validateTransferType(errors, txType, req.TransferType)
	validatePositive(errors, "quantity", req.Quantity)

	if txType == "buy" || txType == "sell" {
		validatePositive(errors, "totalSpent", req.TotalSpent)
		validateNonNegative(errors, "pricePerCoin", req.PricePerCoin)
		validateMarket(errors, req.Market, true)
	} else {
		validateMarket(errors, req.Market, false)
	}

	if req.Fees != nil {
		validateNonNegative(errors, "fees", *req.Fees)
	}

	validateDate(errors, "date", req.Date)

	return result(errors)
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same format
// constraints as create. Cross-field rules are checked on the merged
// transaction by ValidateTransaction.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Type != nil {
		txType := strings.ToLower(strings.TrimSpace(*req.Type))
		if txType == "" {
			errors["type"] = "type is required"
		} else if !ValidTransactionType[txType] {
			errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
		}
	}
	if req.TransferType != nil && !ValidTransferType[strings.ToLower(strings.TrimSpace(*req.TransferType))] {
		errors["transferType"] = fmt.Sprintf("invalid transferType: %s", *req.TransferType)
	}
	if req.Quantity != nil {
		validatePositive(errors, "quantity", *req.Quantity)
	}
	if req.TotalSpent != nil {
		validateNonNegative(errors, "totalSpent", *req.TotalSpent)
	}
	if req.PricePerCoin != nil {
		validateNonNegative(errors, "pricePerCoin", *req.PricePerCoin)
	}
	if req.Market != nil {
		validateMarket(errors, *req.Market, true)
	}
	if req.Fees != nil {
		validateNonNegative(errors, "fees", *req.Fees)
	}
	if req.Date != nil {
		validateDate(errors, "date", *req.Date)
	}

	return result(errors)
}

// ValidateTransaction checks the cross-field rules of a fully assembled
// transaction, used after a partial update has been applied.
func ValidateTransaction(tx model.Transaction) error {
	errors := make(map[string]string)

	switch tx.Type {
	case model.TransactionTransfer:
		if tx.TransferType == nil {
			errors["transferType"] = "transferType is required for transfers"
		}
	case model.TransactionBuy, model.TransactionSell:
		if tx.TransferType != nil {
			errors["transferType"] = "transferType is only allowed for transfers"
		}
		validatePositive(errors, "totalSpent", tx.TotalSpent)
	}

	return result(errors)
}

func validateTransferType(errors map[string]string, txType string, transferType *string) {
	if txType == "transfer" {
		if transferType == nil || strings.TrimSpace(*transferType) == "" {
			errors["transferType"] = "transferType is required for transfers"
		} else if !ValidTransferType[strings.ToLower(strings.TrimSpace(*transferType))] {
			errors["transferType"] = fmt.Sprintf("invalid transferType: %s", *transferType)
		}
		return
	}
	if transferType != nil && strings.TrimSpace(*transferType) != "" {
		errors["transferType"] = "transferType is only allowed for transfers"
	}
}

func validateMarket(errors map[string]string, market string, required bool) {
	if strings.TrimSpace(market) == "" {
		if required {
			errors["market"] = "market is required"
		}
		return
	}
	if !model.ParseCurrency(market).IsSupported() {
		errors["market"] = fmt.Sprintf("unsupported market currency: %s", market)
	}
}
