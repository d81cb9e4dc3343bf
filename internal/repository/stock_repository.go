package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
)

// StockRepository provides data access methods for the stock and
// stock_transaction tables. It is the production implementation of the
// aggregation engine's stock source.
type StockRepository struct {
	db *sql.DB
}

// NewStockRepository creates a new StockRepository with the provided database connection.
func NewStockRepository(db *sql.DB) *StockRepository {
	return &StockRepository{db: db}
}

// ListStockPortfolio retrieves every known stock together with its full
// transaction history, optionally filtered by broker and/or symbol. Empty
// filter values mean "all".
//
// Transactions are returned in ascending date order, which the balance
// calculation depends on. Row order within one date follows insertion order,
// keeping tie-handling deterministic. Stocks without matching transactions
// are returned with an empty history.
func (r *StockRepository) ListStockPortfolio(ctx context.Context, broker, symbol string) ([]model.StockWithTransactions, error) {
	stocks, err := r.listStocks(ctx, symbol)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, symbol, broker, side, shares, price, fee, date
		FROM stock_transaction
	`
	conditions := []string{}
	args := []any{}
	if broker != "" {
		conditions = append(conditions, "broker = ?")
		args = append(args, broker)
	}
	if symbol != "" {
		conditions = append(conditions, "symbol = ?")
		args = append(args, symbol)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY date ASC, rowid ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock_transaction table: %w", err)
	}
	defer rows.Close()

	txBySymbol := make(map[string][]model.StockTransaction)

	for rows.Next() {
		var tx model.StockTransaction
		var txSymbol, dateStr string

		err := rows.Scan(
			&tx.ID,
			&txSymbol,
			&tx.Broker,
			&tx.Side,
			&tx.Shares,
			&tx.Price,
			&tx.Fee,
			&dateStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock_transaction table results: %w", err)
		}

		tx.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transaction date: %w", err)
		}

		txBySymbol[txSymbol] = append(txBySymbol[txSymbol], tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stock_transaction table results: %w", err)
	}

	portfolio := make([]model.StockWithTransactions, 0, len(stocks))
	for _, s := range stocks {
		txs := txBySymbol[s.Symbol]
		if txs == nil {
			txs = []model.StockTransaction{}
		}
		portfolio = append(portfolio, model.StockWithTransactions{
			Stock:        s,
			Transactions: txs,
		})
	}

	return portfolio, nil
}

func (r *StockRepository) listStocks(ctx context.Context, symbol string) ([]model.Stock, error) {
	query := `SELECT symbol, currency FROM stock`
	args := []any{}
	if symbol != "" {
		query += " WHERE symbol = ?"
		args = append(args, symbol)
	}
	query += " ORDER BY symbol ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock table: %w", err)
	}
	defer rows.Close()

	stocks := []model.Stock{}
	for rows.Next() {
		var s model.Stock
		if err := rows.Scan(&s.Symbol, &s.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan stock table results: %w", err)
		}
		stocks = append(stocks, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stock table results: %w", err)
	}

	return stocks, nil
}

// KnownStocks returns the symbols of all instruments in the stock table.
// The quote index uses this set to tell stock quotes apart from FX pairs.
func (r *StockRepository) KnownStocks(ctx context.Context) ([]string, error) {
	query := `SELECT symbol FROM stock ORDER BY symbol ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock table: %w", err)
	}
	defer rows.Close()

	symbols := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan stock table results: %w", err)
		}
		symbols = append(symbols, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stock table results: %w", err)
	}

	return symbols, nil
}

// AddStock inserts an instrument if it is not already known.
func (r *StockRepository) AddStock(ctx context.Context, stock model.Stock) error {
	query := `
		INSERT INTO stock (symbol, currency)
		VALUES (?, ?)
		ON CONFLICT (symbol) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, stock.Symbol, stock.Currency); err != nil {
		return fmt.Errorf("failed to insert stock: %w", err)
	}
	return nil
}

// AddTransaction records a new stock transaction and returns its generated id.
// The referenced stock must already exist.
func (r *StockRepository) AddTransaction(ctx context.Context, symbol string, tx model.StockTransaction) (string, error) {
	id := tx.ID
	if id == "" {
		id = uuid.New().String()
	}

	query := `
		INSERT INTO stock_transaction (id, symbol, broker, side, shares, price, fee, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		id,
		symbol,
		tx.Broker,
		tx.Side,
		tx.Shares,
		tx.Price,
		tx.Fee,
		tx.Date.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert stock transaction: %w", err)
	}

	return id, nil
}
