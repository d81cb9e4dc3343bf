package model

import "time"

// CashBalance represents the cash a broker holds in a single currency.
type CashBalance struct {
	Currency string  `json:"currency"`
	Balance  float64 `json:"balance"`
}

// Broker represents a brokerage account with its cash balances and the list
// of fund ids currently active at that broker. FundsUpdateDate is the day the
// broker last published fund valuations; it is nil when the broker carries no
// funds at all.
type Broker struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	CashBalances    []CashBalance `json:"cashBalances"`
	ActiveFundIDs   []string      `json:"activeFundIds"`
	FundsUpdateDate *time.Time    `json:"fundsUpdateDate,omitempty"`
}
