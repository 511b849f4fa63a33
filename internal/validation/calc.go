package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/calc"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
)

// ValidateLinkedFields validates a linked-field recalculation request.
func ValidateLinkedFields(req request.LinkedFieldsRequest) error {
	errors := make(map[string]string)

	switch calc.LinkedField(req.Changed) {
	case calc.FieldTotal, calc.FieldQuantity, calc.FieldPricePerUnit:
	default:
		errors["changed"] = fmt.Sprintf("invalid changed field: %s (allowed: total, quantity, pricePerUnit)", req.Changed)
	}

	if req.Unit != "" {
		unit := model.QuantityUnit(strings.ToUpper(req.Unit))
		if unit != model.UnitBTC && unit != model.UnitSats {
			errors["unit"] = fmt.Sprintf("invalid unit: %s (allowed: BTC, SATS)", req.Unit)
		}
	}

	if strings.TrimSpace(req.Currency) == "" {
		errors["currency"] = "currency is required"
	}

	return result(errors)
}

// ValidateNormalize validates a decimal normalization request.
func ValidateNormalize(req request.NormalizeRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Currency) == "" {
		errors["currency"] = "currency is required"
	}

	return result(errors)
}
