package model

import "time"

// Settings are the user's display preferences.
type Settings struct {
	Currency     Currency     `json:"currency"`
	Timezone     string       `json:"timezone"`
	QuantityUnit QuantityUnit `json:"quantityUnit"`
	UpdatedAt    time.Time    `json:"updatedAt,omitempty"`
}

// DefaultSettings returns the preferences used before the user saves any.
func DefaultSettings() Settings {
	return Settings{
		Currency:     CurrencyUSD,
		Timezone:     "UTC",
		QuantityUnit: UnitBTC,
	}
}
