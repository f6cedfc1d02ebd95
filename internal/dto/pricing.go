package dto

// PriceTier is the derived cost for one standard lesson duration. Cost is a
// fixed two-decimal string so the rounding rule is applied exactly once,
// server side.
type PriceTier struct {
	DurationMinutes int    `json:"durationMinutes"`
	Duration        string `json:"duration"`
	Cost            string `json:"cost"`
}

// PricingResponse is the public pricing payload.
type PricingResponse struct {
	RatePerMinute float64     `json:"ratePerMinute"`
	Tiers         []PriceTier `json:"tiers"`
	Rows          interface{} `json:"pricing,omitempty"`
}
