package models

// PricingRow is one stored price entry: a dollar amount and the rate label it
// applies to (for example "per 30 minutes").
type PricingRow struct {
	Price float64 `db:"price" json:"price"`
	Rate  string  `db:"rate" json:"rate"`
}
