package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/twatanabe/Asset-Overview-Backend/internal/repository"
	"github.com/twatanabe/Asset-Overview-Backend/internal/service"
)

func NewTestBrokerService(t *testing.T, db *sql.DB) *service.BrokerService {
	t.Helper()

	return service.NewBrokerService(repository.NewBrokerRepository(db))
}

func NewTestFundService(t *testing.T, db *sql.DB) *service.FundService {
	t.Helper()

	return service.NewFundService(
		repository.NewFundRepository(db),
		repository.NewBrokerRepository(db),
	)
}

func NewTestStockService(t *testing.T, db *sql.DB) *service.StockService {
	t.Helper()

	return service.NewStockService(
		repository.NewStockRepository(db),
		repository.NewQuoteRepository(db),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// NewTestAssetLoader wires an asset loader over the SQLite repositories.
func NewTestAssetLoader(t *testing.T, db *sql.DB, fundCurrency string) *service.AssetLoader {
	t.Helper()

	return service.NewAssetLoader(
		repository.NewBrokerRepository(db),
		repository.NewFundRepository(db),
		repository.NewStockRepository(db),
		repository.NewQuoteRepository(db),
		fundCurrency,
	)
}

// NewTestAssetService wires an asset service with the given reporting
// currency. The snapshot is not loaded; call Refresh in the test.
func NewTestAssetService(t *testing.T, db *sql.DB, mainCurrency string) *service.AssetService {
	t.Helper()

	loader := NewTestAssetLoader(t, db, mainCurrency)
	return service.NewAssetService(loader, mainCurrency, 10*time.Second)
}

// NewTestQuoteService wires a quote service over the given fetcher.
func NewTestQuoteService(t *testing.T, db *sql.DB, fetcher service.QuoteFetcher, mainCurrency string) *service.QuoteService {
	t.Helper()

	return service.NewQuoteService(
		repository.NewQuoteRepository(db),
		repository.NewStockRepository(db),
		fetcher,
		mainCurrency,
	)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a stock ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("AAPL")
//	// Returns: "AAPL1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// MakeBrokerName generates a unique broker name for testing.
//
// Example usage:
//
//	name := testutil.MakeBrokerName("MyBroker")
//	// Returns: "MyBroker ABC123"
func MakeBrokerName(base string) string {
	if base == "" {
		base = "Broker"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeFundName generates a unique fund name for testing.
//
// Example usage:
//
//	name := testutil.MakeFundName("Tech Fund")
//	// Returns: "Tech Fund XYZ789"
func MakeFundName(base string) string {
	if base == "" {
		base = "Fund"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}

// Common test constants

var (
	// CommonCurrencies contains frequently used currency codes
	CommonCurrencies = []string{"USD", "EUR", "GBP", "JPY", "CAD", "CHF", "AUD"}
)

// RandomCurrency returns a random currency from CommonCurrencies.
func RandomCurrency() string {
	//nolint:gosec // G404: Using math/rand for test data generation is acceptable
	return CommonCurrencies[rand.Intn(len(CommonCurrencies))]
}
