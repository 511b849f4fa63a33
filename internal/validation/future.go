package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/request"
)

// ValidDirection contains the allowed position directions.
var ValidDirection = map[string]bool{
	"LONG": true, "SHORT": true,
}

// ValidTerminalStatus lists the statuses a position may be moved to
// through the status endpoint. CLOSED goes through the close endpoint.
var ValidTerminalStatus = map[string]bool{
	"STOP": true, "CANCELLED": true,
}

// ValidateCreateFuture validates a futures position creation request.
func ValidateCreateFuture(req request.CreateFutureRequest) error {
	errors := make(map[string]string)

	validateDirection(errors, req.Direction)
	validatePositive(errors, "entryPrice", req.EntryPrice)
	validatePositive(errors, "quantityUsd", req.QuantityUSD)
	if req.TargetPrice != nil {
		validatePositive(errors, "targetPrice", *req.TargetPrice)
	}
	if req.ExitPrice != nil {
		validatePositive(errors, "exitPrice", *req.ExitPrice)
	}
	validateDate(errors, "buyDate", req.BuyDate)

	return result(errors)
}

// ValidateUpdateFuture validates the provided fields of an update request.
func ValidateUpdateFuture(req request.UpdateFutureRequest) error {
	errors := make(map[string]string)

	if req.Direction != nil {
		validateDirection(errors, *req.Direction)
	}
	if req.EntryPrice != nil {
		validatePositive(errors, "entryPrice", *req.EntryPrice)
	}
	if req.QuantityUSD != nil {
		validatePositive(errors, "quantityUsd", *req.QuantityUSD)
	}
	if req.TargetPrice != nil {
		validatePositive(errors, "targetPrice", *req.TargetPrice)
	}
	if req.ExitPrice != nil {
		validatePositive(errors, "exitPrice", *req.ExitPrice)
	}
	if req.BuyDate != nil {
		validateDate(errors, "buyDate", *req.BuyDate)
	}

	return result(errors)
}

// ValidateCloseFuture validates a close request.
func ValidateCloseFuture(req request.CloseFutureRequest) error {
	errors := make(map[string]string)

	if req.ExitPrice != nil {
		validatePositive(errors, "exitPrice", *req.ExitPrice)
	}
	if req.CloseDate != nil {
		validateDate(errors, "closeDate", *req.CloseDate)
	}

	return result(errors)
}

// ValidateSetFutureStatus validates a status change request.
func ValidateSetFutureStatus(req request.SetFutureStatusRequest) error {
	errors := make(map[string]string)

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status == "" {
		errors["status"] = "status is required"
	} else if !ValidTerminalStatus[status] {
		errors["status"] = fmt.Sprintf("invalid status: %s (allowed: STOP, CANCELLED)", req.Status)
	}

	return result(errors)
}

func validateDirection(errors map[string]string, direction string) {
	d := strings.ToUpper(strings.TrimSpace(direction))
	if d == "" {
		errors["direction"] = "direction is required"
	} else if !ValidDirection[d] {
		errors["direction"] = fmt.Sprintf("invalid direction: %s", direction)
	}
}
