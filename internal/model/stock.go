package model

import "time"

// Trade sides for stock transactions. A SPLIT transaction carries the split
// ratio in the Shares field (1-to-N) and has no price.
const (
	SideBuy   = "BUY"
	SideSell  = "SELL"
	SideSplit = "SPLIT"
)

// Stock identifies a tradable instrument and the currency it is quoted in.
type Stock struct {
	Symbol   string `json:"symbol"`
	Currency string `json:"currency"`
}

// StockTransaction represents one buy, sell or split for a stock at a broker.
// Shares is always a magnitude; Side carries the direction. Transactions feed
// the balance calculation in ascending date order.
type StockTransaction struct {
	ID     string    `json:"id"`
	Broker string    `json:"broker"`
	Side   string    `json:"side"`
	Shares float64   `json:"shares"`
	Price  float64   `json:"price"`
	Fee    float64   `json:"fee"`
	Date   time.Time `json:"date"`
}

// StockWithTransactions pairs an instrument with its full, date-ordered
// transaction history across all brokers.
type StockWithTransactions struct {
	Stock        Stock              `json:"stock"`
	Transactions []StockTransaction `json:"transactions"`
}

// StockBalance is the derived state of a position after replaying its
// transactions: net shares, the volume-weighted average cost of the shares
// still open, cumulative fees, and the signed net cash realized so far
// (negative while capital is still deployed in the market).
//
// A balance whose fields are all NaN signals an unresolvable position
// (more shares sold than were ever bought); callers must check
// math.IsNaN(Shares) before using any field.
type StockBalance struct {
	Shares     float64 `json:"shares"`
	VWAP       float64 `json:"vwap"`
	Fee        float64 `json:"fee"`
	Liquidated float64 `json:"liquidated"`
}
