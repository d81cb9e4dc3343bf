package request

// CreateStockTransactionRequest is the payload for recording a stock
// transaction. For SPLIT transactions Shares carries the split ratio and
// Price and Fee are ignored.
type CreateStockTransactionRequest struct {
	Symbol   string  `json:"symbol"`
	Currency string  `json:"currency"`
	Broker   string  `json:"broker"`
	Side     string  `json:"side"`
	Shares   float64 `json:"shares"`
	Price    float64 `json:"price"`
	Fee      float64 `json:"fee"`
	Date     string  `json:"date,omitempty"`
}
