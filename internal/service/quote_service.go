package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
	"github.com/twatanabe/Asset-Overview-Backend/internal/repository"
)

// QuoteFetcher retrieves current quotes from an external market-data API.
// The production implementation lives in internal/quotefetch.
type QuoteFetcher interface {
	FetchLatestBatch(ctx context.Context, symbols []string) []model.Quote
}

// QuoteService refreshes the stored quotes from the external market-data
// API: one quote per known stock plus the FX pairs needed to convert every
// traded currency into the reporting currency.
type QuoteService struct {
	quoteRepo    *repository.QuoteRepository
	stockRepo    *repository.StockRepository
	fetcher      QuoteFetcher
	mainCurrency string
}

// NewQuoteService creates a new QuoteService with the provided dependencies.
func NewQuoteService(
	quoteRepo *repository.QuoteRepository,
	stockRepo *repository.StockRepository,
	fetcher QuoteFetcher,
	mainCurrency string,
) *QuoteService {
	return &QuoteService{
		quoteRepo:    quoteRepo,
		stockRepo:    stockRepo,
		fetcher:      fetcher,
		mainCurrency: mainCurrency,
	}
}

// RefreshAll fetches and stores the latest quote for every known stock and
// for the FX pair of each traded currency against the main currency.
// Individual fetch failures are skipped by the fetcher; a complete fetch
// failure still stores whatever arrived. Returns the number of quotes stored.
func (s *QuoteService) RefreshAll(ctx context.Context) (int, error) {
	symbols, err := s.refreshSymbols(ctx)
	if err != nil {
		return 0, err
	}

	quotes := s.fetcher.FetchLatestBatch(ctx, symbols)
	for _, q := range quotes {
		if err := s.quoteRepo.UpsertQuote(ctx, q); err != nil {
			return 0, fmt.Errorf("failed to store quote for %s: %w", q.Symbol, err)
		}
	}

	log.Info().
		Int("requested", len(symbols)).
		Int("stored", len(quotes)).
		Msg("quote refresh finished")

	return len(quotes), nil
}

// refreshSymbols computes the refresh set: all known stock symbols plus one
// "{ccy}{main}=X" pair per distinct stock currency other than the main one.
func (s *QuoteService) refreshSymbols(ctx context.Context) ([]string, error) {
	portfolio, err := s.stockRepo.ListStockPortfolio(ctx, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks for quote refresh: %w", err)
	}

	symbols := []string{}
	seenCcy := make(map[string]bool)
	for _, swt := range portfolio {
		symbols = append(symbols, swt.Stock.Symbol)
		ccy := swt.Stock.Currency
		if ccy != s.mainCurrency && !seenCcy[ccy] {
			seenCcy[ccy] = true
			symbols = append(symbols, ccy+s.mainCurrency+"=X")
		}
	}

	return symbols, nil
}
