package model

import "time"

// Quote is the latest known price for a symbol. FX pairs use the
// "CCY1CCY2=X" symbol convention, e.g. "USDJPY=X" for the USD to JPY rate.
type Quote struct {
	Symbol string    `json:"symbol"`
	Date   time.Time `json:"date"`
	Rate   float64   `json:"rate"`
}
