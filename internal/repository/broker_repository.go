package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
)

// BrokerRepository provides data access methods for the broker, cash_balance
// and broker_active_fund tables. It is the production implementation of the
// aggregation engine's broker source.
type BrokerRepository struct {
	db *sql.DB
}

// NewBrokerRepository creates a new BrokerRepository with the provided database connection.
func NewBrokerRepository(db *sql.DB) *BrokerRepository {
	return &BrokerRepository{db: db}
}

// ListBrokers retrieves all brokers with their cash balances and active fund ids.
// Brokers without cash or funds are returned with empty slices; the aggregation
// layer treats those as contributing no items.
func (r *BrokerRepository) ListBrokers(ctx context.Context) ([]model.Broker, error) {
	query := `
		SELECT id, name, funds_update_date
		FROM broker
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query broker table: %w", err)
	}
	defer rows.Close()

	brokers := []model.Broker{}

	for rows.Next() {
		var b model.Broker
		var updateDate sql.NullString

		if err := rows.Scan(&b.ID, &b.Name, &updateDate); err != nil {
			return nil, fmt.Errorf("failed to scan broker table results: %w", err)
		}

		if updateDate.Valid && updateDate.String != "" {
			parsed, err := ParseTime(updateDate.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse funds update date: %w", err)
			}
			b.FundsUpdateDate = &parsed
		}

		brokers = append(brokers, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate broker table results: %w", err)
	}

	for i := range brokers {
		if err := r.loadCashBalances(ctx, &brokers[i]); err != nil {
			return nil, err
		}
		if err := r.loadActiveFunds(ctx, &brokers[i]); err != nil {
			return nil, err
		}
	}

	return brokers, nil
}

// GetBroker retrieves a single broker by name, including cash balances and
// active fund ids. Returns sql.ErrNoRows wrapped if the broker does not exist.
func (r *BrokerRepository) GetBroker(ctx context.Context, name string) (model.Broker, error) {
	query := `
		SELECT id, name, funds_update_date
		FROM broker
		WHERE name = ?
	`

	var b model.Broker
	var updateDate sql.NullString

	err := r.db.QueryRowContext(ctx, query, name).Scan(&b.ID, &b.Name, &updateDate)
	if err != nil {
		return model.Broker{}, fmt.Errorf("failed to query broker %s: %w", name, err)
	}

	if updateDate.Valid && updateDate.String != "" {
		parsed, err := ParseTime(updateDate.String)
		if err != nil {
			return model.Broker{}, fmt.Errorf("failed to parse funds update date: %w", err)
		}
		b.FundsUpdateDate = &parsed
	}

	if err := r.loadCashBalances(ctx, &b); err != nil {
		return model.Broker{}, err
	}
	if err := r.loadActiveFunds(ctx, &b); err != nil {
		return model.Broker{}, err
	}

	return b, nil
}

func (r *BrokerRepository) loadCashBalances(ctx context.Context, b *model.Broker) error {
	query := `
		SELECT currency, balance
		FROM cash_balance
		WHERE broker_id = ?
		ORDER BY currency ASC
	`

	rows, err := r.db.QueryContext(ctx, query, b.ID)
	if err != nil {
		return fmt.Errorf("failed to query cash_balance table: %w", err)
	}
	defer rows.Close()

	b.CashBalances = []model.CashBalance{}
	for rows.Next() {
		var cb model.CashBalance
		if err := rows.Scan(&cb.Currency, &cb.Balance); err != nil {
			return fmt.Errorf("failed to scan cash_balance table results: %w", err)
		}
		b.CashBalances = append(b.CashBalances, cb)
	}
	return rows.Err()
}

func (r *BrokerRepository) loadActiveFunds(ctx context.Context, b *model.Broker) error {
	query := `
		SELECT fund_id
		FROM broker_active_fund
		WHERE broker_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, b.ID)
	if err != nil {
		return fmt.Errorf("failed to query broker_active_fund table: %w", err)
	}
	defer rows.Close()

	b.ActiveFundIDs = []string{}
	for rows.Next() {
		var fundID string
		if err := rows.Scan(&fundID); err != nil {
			return fmt.Errorf("failed to scan broker_active_fund table results: %w", err)
		}
		b.ActiveFundIDs = append(b.ActiveFundIDs, fundID)
	}
	return rows.Err()
}
