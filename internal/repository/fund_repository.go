package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
)

// FundRepository provides data access methods for the fund table. It is the
// production implementation of the aggregation engine's fund source.
type FundRepository struct {
	db *sql.DB
}

// NewFundRepository creates a new FundRepository with the provided database connection.
func NewFundRepository(db *sql.DB) *FundRepository {
	return &FundRepository{db: db}
}

// ListFunds retrieves the fund positions with the given ids, sorted by broker
// and then by name. If fundIDs is empty, an empty slice is returned: fund
// selection is driven entirely by the brokers' active-fund lists, so an empty
// selection means no fund rows, not all of them.
//
// Profit and ROI are not stored; they are derived by the service layer from
// market value and capital.
func (r *FundRepository) ListFunds(ctx context.Context, fundIDs []string) ([]model.Fund, error) {
	if len(fundIDs) == 0 {
		return []model.Fund{}, nil
	}

	placeholders := make([]string, len(fundIDs))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT id, broker, name, amount, capital, market_value, price, date
		FROM fund
		WHERE id IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY broker ASC, name ASC
	`

	args := make([]any, 0, len(fundIDs))
	for _, id := range fundIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund table: %w", err)
	}
	defer rows.Close()

	funds := []model.Fund{}

	for rows.Next() {
		var f model.Fund
		var dateStr string

		err := rows.Scan(
			&f.ID,
			&f.Broker,
			&f.Name,
			&f.Amount,
			&f.Capital,
			&f.MarketValue,
			&f.Price,
			&dateStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund table results: %w", err)
		}

		f.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse fund date: %w", err)
		}

		funds = append(funds, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fund table results: %w", err)
	}

	return funds, nil
}
