package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/twatanabe/Asset-Overview-Backend/internal/api/request"
	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
)

// ValidSide contains the allowed transaction side values.
var ValidSide = map[string]bool{
	model.SideBuy:   true,
	model.SideSell:  true,
	model.SideSplit: true,
}

// ValidateCreateStockTransaction validates a stock transaction creation
// request. Checks all required fields and validates their formats and
// constraints.
//
// Required fields:
//   - symbol: Must be a non-empty, whitespace-free ticker
//   - currency: Must be a three-letter uppercase currency code
//   - broker: Must be non-empty
//   - side: Must be one of: BUY, SELL, SPLIT
//   - shares: Must be positive (the split ratio for SPLIT)
//   - price: Must be non-negative; ignored for SPLIT
//
// The date is optional; if provided it must be in YYYY-MM-DD or RFC 3339
// format. An absent date means "now".
//
// Returns a validation Error with field-specific error messages if
// validation fails.
func ValidateCreateStockTransaction(req request.CreateStockTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateSymbol(req.Symbol); err != nil {
		errors["symbol"] = err.Error()
	}

	if err := ValidateCurrency(req.Currency); err != nil {
		errors["currency"] = err.Error()
	}

	if strings.TrimSpace(req.Broker) == "" {
		errors["broker"] = "broker is required"
	}

	if strings.TrimSpace(req.Side) == "" {
		errors["side"] = "side is required"
	} else if !ValidSide[req.Side] {
		errors["side"] = fmt.Sprintf("invalid side: %s", req.Side)
	}

	if req.Shares <= 0.0 {
		errors["shares"] = "shares must be positive"
	}

	if req.Price < 0.0 {
		errors["price"] = "price must not be negative"
	}

	if req.Fee < 0.0 {
		errors["fee"] = "fee must not be negative"
	}

	if req.Date != "" {
		if _, err := ParseTransactionDate(req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ParseTransactionDate parses a transaction date in YYYY-MM-DD or RFC 3339
// format.
func ParseTransactionDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
