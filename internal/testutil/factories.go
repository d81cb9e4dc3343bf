package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
)

// BrokerBuilder provides a fluent interface for creating test brokers.
//
// Example usage:
//
//	// Simple creation with defaults
//	broker := testutil.NewBroker().Build(t, db)
//
//	// Customized broker
//	broker := testutil.NewBroker().
//	    WithName("IB").
//	    WithCash("USD", 5000).
//	    WithActiveFund(fund.ID).
//	    Build(t, db)
type BrokerBuilder struct {
	ID              string
	Name            string
	CashBalances    []model.CashBalance
	ActiveFundIDs   []string
	FundsUpdateDate *time.Time
}

// NewBroker creates a BrokerBuilder with sensible defaults.
func NewBroker() *BrokerBuilder {
	return &BrokerBuilder{
		ID:   MakeID(),
		Name: MakeBrokerName("Test Broker"),
	}
}

// WithID sets a custom ID.
func (b *BrokerBuilder) WithID(id string) *BrokerBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *BrokerBuilder) WithName(name string) *BrokerBuilder {
	b.Name = name
	return b
}

// WithCash adds a cash balance in the given currency.
func (b *BrokerBuilder) WithCash(currency string, balance float64) *BrokerBuilder {
	b.CashBalances = append(b.CashBalances, model.CashBalance{Currency: currency, Balance: balance})
	return b
}

// WithActiveFund marks a fund as currently held by the broker.
func (b *BrokerBuilder) WithActiveFund(fundID string) *BrokerBuilder {
	b.ActiveFundIDs = append(b.ActiveFundIDs, fundID)
	return b
}

// WithFundsUpdateDate sets the day the broker's fund valuations were last refreshed.
func (b *BrokerBuilder) WithFundsUpdateDate(date time.Time) *BrokerBuilder {
	b.FundsUpdateDate = &date
	return b
}

// Build creates the broker in the database and returns it.
func (b *BrokerBuilder) Build(t *testing.T, db *sql.DB) model.Broker {
	t.Helper()

	var updateDate interface{}
	if b.FundsUpdateDate != nil {
		updateDate = b.FundsUpdateDate.UTC().Format("2006-01-02")
	}

	_, err := db.Exec(
		`INSERT INTO broker (id, name, funds_update_date) VALUES (?, ?, ?)`,
		b.ID, b.Name, updateDate,
	)
	if err != nil {
		t.Fatalf("Failed to create test broker: %v", err)
	}

	for _, cb := range b.CashBalances {
		_, err := db.Exec(
			`INSERT INTO cash_balance (id, broker_id, currency, balance) VALUES (?, ?, ?, ?)`,
			MakeID(), b.ID, cb.Currency, cb.Balance,
		)
		if err != nil {
			t.Fatalf("Failed to create test cash balance: %v", err)
		}
	}

	for _, fundID := range b.ActiveFundIDs {
		_, err := db.Exec(
			`INSERT INTO broker_active_fund (broker_id, fund_id) VALUES (?, ?)`,
			b.ID, fundID,
		)
		if err != nil {
			t.Fatalf("Failed to create test active fund link: %v", err)
		}
	}

	return model.Broker{
		ID:              b.ID,
		Name:            b.Name,
		CashBalances:    b.CashBalances,
		ActiveFundIDs:   b.ActiveFundIDs,
		FundsUpdateDate: b.FundsUpdateDate,
	}
}

// FundBuilder provides a fluent interface for creating test fund positions.
//
// Example usage:
//
//	fund := testutil.NewFund().
//	    WithBroker("IB").
//	    WithCapital(10000).
//	    WithMarketValue(12000).
//	    Build(t, db)
type FundBuilder struct {
	ID          string
	Broker      string
	Name        string
	Amount      int
	Capital     float64
	MarketValue float64
	Price       float64
	Date        time.Time
}

// NewFund creates a FundBuilder with sensible defaults.
func NewFund() *FundBuilder {
	return &FundBuilder{
		ID:          MakeID(),
		Broker:      "Test Broker",
		Name:        MakeFundName("Test Fund"),
		Amount:      100,
		Capital:     10000,
		MarketValue: 11000,
		Price:       110,
		Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

// WithBroker sets the broker the position is held at.
func (b *FundBuilder) WithBroker(broker string) *FundBuilder {
	b.Broker = broker
	return b
}

// WithName sets a custom name.
func (b *FundBuilder) WithName(name string) *FundBuilder {
	b.Name = name
	return b
}

// WithAmount sets the number of units held.
func (b *FundBuilder) WithAmount(amount int) *FundBuilder {
	b.Amount = amount
	return b
}

// WithCapital sets the deployed capital.
func (b *FundBuilder) WithCapital(capital float64) *FundBuilder {
	b.Capital = capital
	return b
}

// WithMarketValue sets the current market value.
func (b *FundBuilder) WithMarketValue(value float64) *FundBuilder {
	b.MarketValue = value
	return b
}

// WithPrice sets the unit price.
func (b *FundBuilder) WithPrice(price float64) *FundBuilder {
	b.Price = price
	return b
}

// WithDate sets the valuation date.
func (b *FundBuilder) WithDate(date time.Time) *FundBuilder {
	b.Date = date
	return b
}

// Build creates the fund position in the database and returns it.
// Profit and ROI are left zero; they are derived by the service layer.
func (b *FundBuilder) Build(t *testing.T, db *sql.DB) model.Fund {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO fund (id, broker, name, amount, capital, market_value, price, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Broker, b.Name, b.Amount, b.Capital, b.MarketValue, b.Price,
		b.Date.UTC().Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test fund: %v", err)
	}

	return model.Fund{
		ID:          b.ID,
		Broker:      b.Broker,
		Name:        b.Name,
		Amount:      b.Amount,
		Capital:     b.Capital,
		MarketValue: b.MarketValue,
		Price:       b.Price,
		Date:        b.Date,
	}
}

// CreateStock creates an instrument row.
//
// Example usage:
//
//	testutil.CreateStock(t, db, "AAPL", "USD")
func CreateStock(t *testing.T, db *sql.DB, symbol, currency string) model.Stock {
	t.Helper()

	_, err := db.Exec(`INSERT INTO stock (symbol, currency) VALUES (?, ?)`, symbol, currency)
	if err != nil {
		t.Fatalf("Failed to create test stock: %v", err)
	}
	return model.Stock{Symbol: symbol, Currency: currency}
}

// TransactionBuilder provides a fluent interface for creating test stock
// transactions. The instrument row must exist first (see CreateStock).
//
// Example usage:
//
//	testutil.NewTransaction("AAPL").
//	    Buy(10, 100).
//	    WithBroker("IB").
//	    OnDate(day(1)).
//	    Build(t, db)
type TransactionBuilder struct {
	ID     string
	Symbol string
	Broker string
	Side   string
	Shares float64
	Price  float64
	Fee    float64
	Date   time.Time
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction(symbol string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:     MakeID(),
		Symbol: symbol,
		Broker: "Test Broker",
		Side:   model.SideBuy,
		Shares: 1,
		Price:  100,
		Date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Buy makes the transaction a purchase of the given shares at the given price.
func (b *TransactionBuilder) Buy(shares, price float64) *TransactionBuilder {
	b.Side = model.SideBuy
	b.Shares = shares
	b.Price = price
	return b
}

// Sell makes the transaction a sale of the given shares at the given price.
func (b *TransactionBuilder) Sell(shares, price float64) *TransactionBuilder {
	b.Side = model.SideSell
	b.Shares = shares
	b.Price = price
	return b
}

// Split makes the transaction a 1-to-ratio share split.
func (b *TransactionBuilder) Split(ratio float64) *TransactionBuilder {
	b.Side = model.SideSplit
	b.Shares = ratio
	b.Price = 0
	return b
}

// WithBroker sets the broker the transaction happened at.
func (b *TransactionBuilder) WithBroker(broker string) *TransactionBuilder {
	b.Broker = broker
	return b
}

// WithFee sets the transaction fee.
func (b *TransactionBuilder) WithFee(fee float64) *TransactionBuilder {
	b.Fee = fee
	return b
}

// OnDate sets the transaction date.
func (b *TransactionBuilder) OnDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.StockTransaction {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO stock_transaction (id, symbol, broker, side, shares, price, fee, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Symbol, b.Broker, b.Side, b.Shares, b.Price, b.Fee,
		b.Date.UTC().Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.StockTransaction{
		ID:     b.ID,
		Broker: b.Broker,
		Side:   b.Side,
		Shares: b.Shares,
		Price:  b.Price,
		Fee:    b.Fee,
		Date:   b.Date,
	}
}

// SetQuote stores the latest quote for a symbol, replacing any existing one.
//
// Example usage:
//
//	testutil.SetQuote(t, db, "AAPL", 150)
//	testutil.SetQuote(t, db, "USDJPY=X", 100)
func SetQuote(t *testing.T, db *sql.DB, symbol string, rate float64) model.Quote {
	t.Helper()

	date := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	_, err := db.Exec(
		`INSERT INTO quote (symbol, date, rate) VALUES (?, ?, ?)
		 ON CONFLICT (symbol) DO UPDATE SET date = excluded.date, rate = excluded.rate`,
		symbol, date.UTC().Format(time.RFC3339), rate,
	)
	if err != nil {
		t.Fatalf("Failed to create test quote: %v", err)
	}
	return model.Quote{Symbol: symbol, Date: date, Rate: rate}
}
