package request

type UpdateSettingsRequest struct {
	Currency     *string `json:"currency,omitempty"`
	Timezone     *string `json:"timezone,omitempty"`
	QuantityUnit *string `json:"quantityUnit,omitempty"`
}
