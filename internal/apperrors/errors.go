package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrBrokerNotFound indicates that a broker with the given name does not exist.
	ErrBrokerNotFound = errors.New("broker not found")

	// ErrStockNotFound indicates that a stock with the given symbol does not exist.
	ErrStockNotFound = errors.New("stock not found")

	// ErrQuoteNotFound indicates that no quote is known for the given symbol.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrFundNotFound indicates that a fund with the given ID does not exist.
	ErrFundNotFound = errors.New("fund not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidSide indicates a transaction side other than BUY, SELL or SPLIT.
	ErrInvalidSide = errors.New("invalid transaction side")

	// ErrInvalidGroupBy indicates an unknown grouping key in an overview query.
	ErrInvalidGroupBy = errors.New("invalid grouping key")

	// ErrInvalidCurrency indicates a missing or malformed currency code.
	ErrInvalidCurrency = errors.New("currency parameter is required")

	// ErrInvalidSymbol indicates a missing symbol parameter.
	ErrInvalidSymbol = errors.New("symbol is required")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")
)

// Snapshot state errors cover queries against asset data that has not been
// loaded (or failed to load). A snapshot is only published when all four
// sources completed; until then queries must fail rather than serve a
// partial view.
var (
	// ErrAssetsNotLoaded indicates that no complete asset snapshot is
	// available yet; callers should trigger a refresh first.
	ErrAssetsNotLoaded = errors.New("assets not loaded")
)

// Operation failure errors represent system-level failures when retrieving
// or processing data.
var (
	ErrFailedToRetrieveBrokers = errors.New("failed to retrieve brokers")
	ErrFailedToRetrieveFunds   = errors.New("failed to retrieve funds")
	ErrFailedToRetrieveStocks  = errors.New("failed to retrieve stock portfolio")
	ErrFailedToRetrieveQuotes  = errors.New("failed to retrieve quotes")
	ErrFailedToLoadAssets      = errors.New("failed to load assets")
)
