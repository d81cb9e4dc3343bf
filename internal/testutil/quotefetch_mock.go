package testutil

import (
	"context"
	"time"

	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
)

// MockQuoteFetcher is a mock implementation of service.QuoteFetcher for
// testing. It returns predefined rates instead of calling the market-data
// API. Symbols without a configured rate are skipped, mirroring how the
// real fetcher drops failed symbols.
type MockQuoteFetcher struct {
	// Rates maps symbols to the rate the mock returns for them.
	Rates map[string]float64
	// QueryCount tracks how many times FetchLatestBatch was called.
	QueryCount int
	// Requested records every symbol list the mock was asked for.
	Requested [][]string
}

// NewMockQuoteFetcher creates a mock fetcher with the given rates.
func NewMockQuoteFetcher(rates map[string]float64) *MockQuoteFetcher {
	return &MockQuoteFetcher{Rates: rates}
}

// FetchLatestBatch returns a quote for every requested symbol that has a
// configured rate.
func (m *MockQuoteFetcher) FetchLatestBatch(_ context.Context, symbols []string) []model.Quote {
	m.QueryCount++
	m.Requested = append(m.Requested, symbols)

	quotes := []model.Quote{}
	for _, symbol := range symbols {
		rate, ok := m.Rates[symbol]
		if !ok {
			continue
		}
		quotes = append(quotes, model.Quote{
			Symbol: symbol,
			Date:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			Rate:   rate,
		})
	}
	return quotes
}
