package model

import "time"

// Fund represents a single fund position as last published by its broker.
// Profit and ROI are derived at load time (market value minus capital, and
// profit over capital) rather than stored.
type Fund struct {
	ID          string    `json:"id"`
	Broker      string    `json:"broker"`
	Name        string    `json:"name"`
	Amount      int       `json:"amount"`
	Capital     float64   `json:"capital"`
	MarketValue float64   `json:"marketValue"`
	Price       float64   `json:"price"`
	Profit      float64   `json:"profit"`
	ROI         float64   `json:"roi"`
	Date        time.Time `json:"date"`
}

// FundSum aggregates a fund portfolio into a single line: total market value,
// total deployed capital and the resulting profit and ROI.
type FundSum struct {
	MarketValue float64 `json:"marketValue"`
	Capital     float64 `json:"capital"`
	Profit      float64 `json:"profit"`
	ROI         float64 `json:"roi"`
}
