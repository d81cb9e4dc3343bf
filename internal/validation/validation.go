// Package validation provides request validation for the asset overview API.
package validation

import (
	"fmt"
	"strings"
	"unicode"
)

// Common validation errors
var (
	ErrInvalidSymbol   = fmt.Errorf("invalid symbol format")
	ErrInvalidCurrency = fmt.Errorf("invalid currency code")
)

// ValidateSymbol checks that a ticker symbol is non-empty and free of
// whitespace. Symbols are passed to the quote provider verbatim, so the
// rest of their shape is not constrained here.
func ValidateSymbol(symbol string) error {
	if strings.TrimSpace(symbol) == "" {
		return fmt.Errorf("%w: symbol is empty", ErrInvalidSymbol)
	}
	for _, r := range symbol {
		if unicode.IsSpace(r) {
			return fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
		}
	}
	return nil
}

// ValidateCurrency checks that a currency code is three ASCII letters.
func ValidateCurrency(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
		}
	}
	return nil
}
