package service

import (
	"context"
	"fmt"

	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
	"golang.org/x/sync/errgroup"
)

// AssetSnapshot is one fully loaded, immutable view of all asset data. It is
// only ever published complete: if any source fails, no snapshot exists.
// Queries against a published snapshot are read-only and safe to run
// concurrently; a fresh load produces a new snapshot rather than mutating
// this one.
type AssetSnapshot struct {
	Items   []model.AssetItem
	Brokers []model.Broker
	Funds   []model.Fund
	Stocks  []model.StockWithTransactions
	Quotes  *QuoteIndex
}

// AssetLoader drives the four source loads needed before aggregation can run.
//
// Two dependency chains exist: stock valuation needs quotes, so the stock
// portfolio loads only after quotes completed; and fund selection needs each
// broker's active-fund list, so funds load only after brokers completed. The
// two chains run in parallel and join exactly once. Everything else may race
// freely.
type AssetLoader struct {
	brokers BrokerSource
	funds   FundSource
	stocks  StockSource
	quotes  QuoteSource
	builder AssetItemBuilder
}

// NewAssetLoader creates a new AssetLoader over the four data sources.
func NewAssetLoader(
	brokers BrokerSource,
	funds FundSource,
	stocks StockSource,
	quotes QuoteSource,
	fundCurrency string,
) *AssetLoader {
	return &AssetLoader{
		brokers: brokers,
		funds:   funds,
		stocks:  stocks,
		quotes:  quotes,
		builder: AssetItemBuilder{FundCurrency: fundCurrency},
	}
}

// Load runs all four loads to completion and returns the built snapshot.
// A failure in any source cancels the remaining loads via the group context
// and surfaces as an error; no partial snapshot is ever returned. Callers
// bound the whole load with the context's deadline.
func (l *AssetLoader) Load(ctx context.Context) (*AssetSnapshot, error) {
	var (
		brokers     []model.Broker
		funds       []model.Fund
		stocks      []model.StockWithTransactions
		quotes      []model.Quote
		knownStocks []string
	)

	g, gctx := errgroup.WithContext(ctx)

	// chain 1: quotes, then the stock portfolio they price
	g.Go(func() error {
		var err error
		quotes, err = l.quotes.LatestQuotes(gctx, nil)
		if err != nil {
			return fmt.Errorf("failed to load quotes: %w", err)
		}
		knownStocks, err = l.stocks.KnownStocks(gctx)
		if err != nil {
			return fmt.Errorf("failed to load known stocks: %w", err)
		}
		stocks, err = l.stocks.ListStockPortfolio(gctx, "", "")
		if err != nil {
			return fmt.Errorf("failed to load stock portfolio: %w", err)
		}
		return nil
	})

	// chain 2: brokers, then the funds their active lists select
	g.Go(func() error {
		var err error
		brokers, err = l.brokers.ListBrokers(gctx)
		if err != nil {
			return fmt.Errorf("failed to load brokers: %w", err)
		}
		funds, err = l.funds.ListFunds(gctx, activeFundIDs(brokers))
		if err != nil {
			return fmt.Errorf("failed to load funds: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	index := NewQuoteIndex(quotes, knownStocks)

	return &AssetSnapshot{
		Items:   l.builder.Build(brokers, funds, stocks, index),
		Brokers: brokers,
		Funds:   funds,
		Stocks:  stocks,
		Quotes:  index,
	}, nil
}

// activeFundIDs collects the deduplicated union of all brokers' active fund ids.
func activeFundIDs(brokers []model.Broker) []string {
	seen := make(map[string]bool)
	ids := []string{}
	for _, b := range brokers {
		for _, id := range b.ActiveFundIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
