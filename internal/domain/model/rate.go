package model

// Rate is one carrier quote for a prospective booking.
type Rate struct {
	Carrier       string  `json:"carrier"`
	Service       string  `json:"service"`
	Price         float64 `json:"price"`
	EstimatedDays int     `json:"estimatedDays"`
}
