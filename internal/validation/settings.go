package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
)

// ValidateUpdateSettings validates the provided settings fields.
func ValidateUpdateSettings(req request.UpdateSettingsRequest) error {
	errors := make(map[string]string)

	if req.Currency != nil && !model.ParseCurrency(*req.Currency).IsSupported() {
		errors["currency"] = fmt.Sprintf("unsupported currency: %s", *req.Currency)
	}
	if req.Timezone != nil {
		tz := strings.TrimSpace(*req.Timezone)
		if tz == "" {
			errors["timezone"] = "timezone cannot be empty"
		} else if _, err := time.LoadLocation(tz); err != nil {
			errors["timezone"] = fmt.Sprintf("unknown timezone: %s", tz)
		}
	}
	if req.QuantityUnit != nil {
		unit := model.QuantityUnit(strings.ToUpper(strings.TrimSpace(*req.QuantityUnit)))
		if unit != model.UnitBTC && unit != model.UnitSats {
			errors["quantityUnit"] = fmt.Sprintf("invalid quantityUnit: %s (allowed: BTC, SATS)", *req.QuantityUnit)
		}
	}

	return result(errors)
}
