package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Broker table
		CREATE TABLE broker (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			funds_update_date DATE
		);

		-- Cash balances per broker and currency
		CREATE TABLE cash_balance (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			broker_id VARCHAR(36) NOT NULL,
			currency VARCHAR(3) NOT NULL,
			balance REAL NOT NULL,
			UNIQUE (broker_id, currency),
			FOREIGN KEY (broker_id) REFERENCES broker (id)
		);

		-- Fund ids currently active at a broker
		CREATE TABLE broker_active_fund (
			broker_id VARCHAR(36) NOT NULL,
			fund_id VARCHAR(36) NOT NULL,
			PRIMARY KEY (broker_id, fund_id),
			FOREIGN KEY (broker_id) REFERENCES broker (id)
		);

		-- Fund positions as last published per broker
		CREATE TABLE fund (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			broker VARCHAR(100) NOT NULL,
			name VARCHAR(100) NOT NULL,
			amount INTEGER NOT NULL,
			capital REAL NOT NULL,
			market_value REAL NOT NULL,
			price REAL NOT NULL,
			date DATETIME NOT NULL
		);

		-- Tradable instruments
		CREATE TABLE stock (
			symbol VARCHAR(20) NOT NULL PRIMARY KEY,
			currency VARCHAR(3) NOT NULL
		);

		-- Stock transactions (BUY / SELL / SPLIT)
		CREATE TABLE stock_transaction (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			symbol VARCHAR(20) NOT NULL,
			broker VARCHAR(100) NOT NULL,
			side VARCHAR(5) NOT NULL,
			shares REAL NOT NULL,
			price REAL NOT NULL,
			fee REAL NOT NULL,
			date DATETIME NOT NULL,
			FOREIGN KEY (symbol) REFERENCES stock (symbol)
		);

		CREATE INDEX idx_stock_transaction_symbol_date ON stock_transaction (symbol, date);

		-- Latest quote per symbol (stocks and FX pairs)
		CREATE TABLE quote (
			symbol VARCHAR(20) NOT NULL PRIMARY KEY,
			date DATETIME NOT NULL,
			rate REAL NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}
