package service

import (
	"context"

	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
)

// The four source interfaces are the aggregation engine's only view of the
// storage backend. Each has exactly one production implementation (the SQLite
// repositories), selected at startup; tests substitute in-memory stubs.

// BrokerSource supplies brokers with their cash balances and active fund ids.
type BrokerSource interface {
	ListBrokers(ctx context.Context) ([]model.Broker, error)
}

// FundSource supplies the fund positions selected by the brokers'
// active-fund lists.
type FundSource interface {
	ListFunds(ctx context.Context, fundIDs []string) ([]model.Fund, error)
}

// StockSource supplies instruments with their date-ordered transaction
// histories, and the set of known stock symbols (needed to tell stock
// quotes apart from FX pairs). Empty broker/symbol filters mean "all".
type StockSource interface {
	ListStockPortfolio(ctx context.Context, broker, symbol string) ([]model.StockWithTransactions, error)
	KnownStocks(ctx context.Context) ([]string, error)
}

// QuoteSource supplies the latest known quote per symbol. An empty symbols
// slice requests every stored quote.
type QuoteSource interface {
	LatestQuotes(ctx context.Context, symbols []string) ([]model.Quote, error)
}
