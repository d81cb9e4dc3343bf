package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/twatanabe/Asset-Overview-Backend/internal/apperrors"
	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
	"github.com/twatanabe/Asset-Overview-Backend/internal/repository"
)

// StockService handles stock-related business logic operations: position
// reporting off the lot-matching calculation and recording new transactions.
type StockService struct {
	stockRepo *repository.StockRepository
	quoteRepo *repository.QuoteRepository
}

// NewStockService creates a new StockService with the provided repository dependencies.
func NewStockService(stockRepo *repository.StockRepository, quoteRepo *repository.QuoteRepository) *StockService {
	return &StockService{
		stockRepo: stockRepo,
		quoteRepo: quoteRepo,
	}
}

// StockPosition is one instrument's state at one broker: the lot-matched
// balance plus, when a quote is known, its current market value and
// unrealized profit. Value and Profit are NaN for unquoted instruments.
type StockPosition struct {
	Symbol   string             `json:"symbol"`
	Currency string             `json:"currency"`
	Broker   string             `json:"broker"`
	Balance  model.StockBalance `json:"balance"`
	Value    float64            `json:"value"`
	Profit   float64            `json:"profit"`
}

// GetPositions computes the open positions for every (instrument, broker)
// pair, optionally filtered by broker and/or symbol. Fully closed positions
// are omitted; unresolvable histories (over-sold) are logged and dropped.
func (s *StockService) GetPositions(ctx context.Context, broker, symbol string) ([]StockPosition, error) {
	portfolio, err := s.stockRepo.ListStockPortfolio(ctx, broker, symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveStocks, err)
	}

	quotes, err := s.quoteRepo.LatestQuotes(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveQuotes, err)
	}
	knownStocks, err := s.stockRepo.KnownStocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveStocks, err)
	}
	index := NewQuoteIndex(quotes, knownStocks)

	positions := []StockPosition{}
	for _, swt := range portfolio {
		for _, group := range groupTransactionsByBroker(swt.Transactions) {
			balance := CalculateStockBalance(group.transactions)

			if math.IsNaN(balance.Shares) {
				log.Warn().
					Str("symbol", swt.Stock.Symbol).
					Str("broker", group.broker).
					Msg("skipping unresolvable stock position")
				continue
			}
			if balance.Shares == 0 {
				continue
			}

			price := index.Price(swt.Stock.Symbol)
			positions = append(positions, StockPosition{
				Symbol:   swt.Stock.Symbol,
				Currency: swt.Stock.Currency,
				Broker:   group.broker,
				Balance:  balance,
				Value:    round(price * balance.Shares),
				Profit:   round((price - balance.VWAP) * balance.Shares),
			})
		}
	}

	return positions, nil
}

// AddTransaction records a stock transaction after validating its side.
// The instrument is created on first use with the given currency.
func (s *StockService) AddTransaction(ctx context.Context, stock model.Stock, tx model.StockTransaction) (string, error) {
	switch tx.Side {
	case model.SideBuy, model.SideSell, model.SideSplit:
	default:
		return "", fmt.Errorf("%w: %s", apperrors.ErrInvalidSide, tx.Side)
	}

	if err := s.stockRepo.AddStock(ctx, stock); err != nil {
		return "", err
	}

	if tx.Date.IsZero() {
		tx.Date = time.Now().UTC()
	}

	return s.stockRepo.AddTransaction(ctx, stock.Symbol, tx)
}
