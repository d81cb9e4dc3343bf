package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
)

// QuoteRepository provides data access methods for the quote table, which
// holds the latest known quote per symbol (stocks and FX pairs alike). It is
// the production implementation of the aggregation engine's quote source.
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new QuoteRepository with the provided database connection.
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// LatestQuotes retrieves the latest quote for each of the given symbols.
// Symbols without a stored quote are simply absent from the result; the
// aggregation layer treats them as unpriced. An empty symbols slice returns
// every stored quote.
func (r *QuoteRepository) LatestQuotes(ctx context.Context, symbols []string) ([]model.Quote, error) {
	query := `
		SELECT symbol, date, rate
		FROM quote
	`

	args := []any{}
	if len(symbols) > 0 {
		placeholders := make([]string, len(symbols))
		for i := range placeholders {
			placeholders[i] = "?"
		}
		//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
		query += ` WHERE symbol IN (` + strings.Join(placeholders, ",") + `)`
		for _, s := range symbols {
			args = append(args, s)
		}
	}
	query += ` ORDER BY symbol ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote table: %w", err)
	}
	defer rows.Close()

	quotes := []model.Quote{}

	for rows.Next() {
		var q model.Quote
		var dateStr string

		if err := rows.Scan(&q.Symbol, &dateStr, &q.Rate); err != nil {
			return nil, fmt.Errorf("failed to scan quote table results: %w", err)
		}

		q.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse quote date: %w", err)
		}

		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quote table results: %w", err)
	}

	return quotes, nil
}

// UpsertQuote stores the latest quote for a symbol, replacing any previous one.
// Only the most recent quote per symbol is kept; history is not this system's
// concern.
func (r *QuoteRepository) UpsertQuote(ctx context.Context, q model.Quote) error {
	query := `
		INSERT INTO quote (symbol, date, rate)
		VALUES (?, ?, ?)
		ON CONFLICT (symbol) DO UPDATE SET date = excluded.date, rate = excluded.rate
	`

	_, err := r.db.ExecContext(ctx, query, q.Symbol, q.Date.UTC().Format(time.RFC3339), q.Rate)
	if err != nil {
		return fmt.Errorf("failed to upsert quote: %w", err)
	}
	return nil
}
