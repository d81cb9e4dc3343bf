package service_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/twatanabe/Asset-Overview-Backend/internal/apperrors"
	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
	"github.com/twatanabe/Asset-Overview-Backend/internal/testutil"
)

// TestStockService_GetPositions tests position reporting off stored
// transaction histories.
//
// WHY: Positions are the user-facing view of the lot matching. The report
// must value off the latest quote, keep unquoted positions visible with
// null figures, and honor the broker and symbol filters.
func TestStockService_GetPositions(t *testing.T) {
	t.Run("computes value and profit from the latest quote", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.CreateStock(t, db, "AAPL", "USD")
		testutil.NewTransaction("AAPL").Buy(10, 100).WithBroker("IB").OnDate(day(1)).Build(t, db)
		testutil.NewTransaction("AAPL").Sell(4, 120).WithBroker("IB").OnDate(day(2)).Build(t, db)
		testutil.SetQuote(t, db, "AAPL", 150)

		svc := testutil.NewTestStockService(t, db)

		// Execute
		positions, err := svc.GetPositions(context.Background(), "", "")

		// Assert
		if err != nil {
			t.Fatalf("GetPositions() returned unexpected error: %v", err)
		}
		if len(positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(positions))
		}
		p := positions[0]
		if p.Symbol != "AAPL" || p.Broker != "IB" || p.Currency != "USD" {
			t.Fatalf("Unexpected position identity: %+v", p)
		}
		if !floatEquals(p.Balance.Shares, 6) {
			t.Errorf("Expected 6 shares, got %v", p.Balance.Shares)
		}
		if !floatEquals(p.Value, 900) {
			t.Errorf("Expected value 900, got %v", p.Value)
		}
		// (150 - 100) * 6
		if !floatEquals(p.Profit, 300) {
			t.Errorf("Expected profit 300, got %v", p.Profit)
		}
	})

	t.Run("unquoted positions report NaN value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateStock(t, db, "OBSCURE", "USD")
		testutil.NewTransaction("OBSCURE").Buy(10, 100).Build(t, db)

		svc := testutil.NewTestStockService(t, db)

		positions, err := svc.GetPositions(context.Background(), "", "")
		if err != nil {
			t.Fatalf("GetPositions() returned unexpected error: %v", err)
		}
		if len(positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(positions))
		}
		if !math.IsNaN(positions[0].Value) || !math.IsNaN(positions[0].Profit) {
			t.Errorf("Expected NaN value and profit, got %+v", positions[0])
		}
	})

	t.Run("filters by broker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateStock(t, db, "AAPL", "USD")
		testutil.NewTransaction("AAPL").Buy(10, 100).WithBroker("IB").OnDate(day(1)).Build(t, db)
		testutil.NewTransaction("AAPL").Buy(3, 100).WithBroker("Nomura").OnDate(day(2)).Build(t, db)
		testutil.SetQuote(t, db, "AAPL", 150)

		svc := testutil.NewTestStockService(t, db)

		positions, err := svc.GetPositions(context.Background(), "Nomura", "")
		if err != nil {
			t.Fatalf("GetPositions() returned unexpected error: %v", err)
		}
		if len(positions) != 1 || positions[0].Broker != "Nomura" {
			t.Errorf("Expected only the Nomura position, got %+v", positions)
		}
		if !floatEquals(positions[0].Balance.Shares, 3) {
			t.Errorf("Expected 3 shares, got %v", positions[0].Balance.Shares)
		}
	})

	t.Run("closed positions are omitted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateStock(t, db, "AAPL", "USD")
		testutil.NewTransaction("AAPL").Buy(10, 100).OnDate(day(1)).Build(t, db)
		testutil.NewTransaction("AAPL").Sell(10, 170).OnDate(day(2)).Build(t, db)

		svc := testutil.NewTestStockService(t, db)

		positions, err := svc.GetPositions(context.Background(), "", "")
		if err != nil {
			t.Fatalf("GetPositions() returned unexpected error: %v", err)
		}
		if len(positions) != 0 {
			t.Errorf("Expected no positions, got %+v", positions)
		}
	})
}

// TestStockService_AddTransaction tests transaction recording.
//
// WHY: Writes are the only mutation path in the stock module. The side
// must be validated, the instrument auto-created once, and the stored row
// must replay into the expected balance.
func TestStockService_AddTransaction(t *testing.T) {
	t.Run("rejects an unknown side", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db)

		_, err := svc.AddTransaction(context.Background(),
			model.Stock{Symbol: "AAPL", Currency: "USD"},
			model.StockTransaction{Broker: "IB", Side: "SHORT", Shares: 1, Price: 100},
		)

		if !errors.Is(err, apperrors.ErrInvalidSide) {
			t.Errorf("Expected ErrInvalidSide, got %v", err)
		}
	})

	t.Run("creates the instrument on first use", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db)

		id, err := svc.AddTransaction(context.Background(),
			model.Stock{Symbol: "AAPL", Currency: "USD"},
			model.StockTransaction{Broker: "IB", Side: model.SideBuy, Shares: 10, Price: 100, Date: day(1)},
		)
		if err != nil {
			t.Fatalf("AddTransaction() returned unexpected error: %v", err)
		}
		if id == "" {
			t.Fatal("Expected a transaction ID")
		}

		// A second transaction against the same symbol must not conflict.
		_, err = svc.AddTransaction(context.Background(),
			model.Stock{Symbol: "AAPL", Currency: "USD"},
			model.StockTransaction{Broker: "IB", Side: model.SideBuy, Shares: 5, Price: 110, Date: day(2)},
		)
		if err != nil {
			t.Fatalf("Second AddTransaction() returned unexpected error: %v", err)
		}

		positions, err := svc.GetPositions(context.Background(), "", "AAPL")
		if err != nil {
			t.Fatalf("GetPositions() returned unexpected error: %v", err)
		}
		if len(positions) != 1 || !floatEquals(positions[0].Balance.Shares, 15) {
			t.Errorf("Expected a 15 share position, got %+v", positions)
		}
	})
}
