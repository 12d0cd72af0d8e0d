package dto

type PriceResponse struct {
	USD    string `json:"usd"`
	Text   string `json:"text"`
	Period string `json:"period"`
}

type PreviewResponse struct {
	Country    string          `json:"country"`
	ResolvedBy string          `json:"resolved_by"`
	Currency   string          `json:"currency"`
	Rate       string          `json:"rate"`
	State      string          `json:"state"`
	Prices     []PriceResponse `json:"prices"`
}
