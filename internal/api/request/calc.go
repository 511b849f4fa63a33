package request

type NormalizeRequest struct {
	Input    string `json:"input"`
	Currency string `json:"currency"`
}

type LinkedFieldsRequest struct {
	Changed      string `json:"changed"`
	Total        string `json:"total"`
	Quantity     string `json:"quantity"`
	PricePerUnit string `json:"pricePerUnit"`
	Unit         string `json:"unit"`
	Currency     string `json:"currency"`
}
