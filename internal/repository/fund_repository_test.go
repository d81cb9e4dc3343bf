package repository_test

import (
	"context"
	"testing"

	"github.com/twatanabe/Asset-Overview-Backend/internal/repository"
	"github.com/twatanabe/Asset-Overview-Backend/internal/testutil"
)

// TestFundRepository_ListFunds tests fund selection by ID list.
//
// WHY: Fund rows are only reachable through the brokers' active-fund
// lists. An empty selection must mean "no funds", never "all funds", or
// retired positions would reappear in the overview.
func TestFundRepository_ListFunds(t *testing.T) {
	t.Run("empty id list selects nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewFundRepository(db)

		testutil.NewFund().Build(t, db)

		funds, err := repo.ListFunds(context.Background(), nil)

		if err != nil {
			t.Fatalf("ListFunds() returned unexpected error: %v", err)
		}
		if len(funds) != 0 {
			t.Errorf("Expected no funds for an empty selection, got %d", len(funds))
		}
	})

	t.Run("selects exactly the requested ids", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewFundRepository(db)

		f1 := testutil.NewFund().WithBroker("Nomura").WithCapital(10000).WithMarketValue(11000).Build(t, db)
		f2 := testutil.NewFund().WithBroker("IB").Build(t, db)
		testutil.NewFund().Build(t, db) // not selected

		funds, err := repo.ListFunds(context.Background(), []string{f1.ID, f2.ID})

		if err != nil {
			t.Fatalf("ListFunds() returned unexpected error: %v", err)
		}
		if len(funds) != 2 {
			t.Fatalf("Expected 2 funds, got %d", len(funds))
		}
		// Broker ordering: IB before Nomura.
		if funds[0].ID != f2.ID || funds[1].ID != f1.ID {
			t.Errorf("Unexpected order: %s, %s", funds[0].ID, funds[1].ID)
		}
		if funds[1].Capital != 10000 || funds[1].MarketValue != 11000 {
			t.Errorf("Unexpected fund amounts: %+v", funds[1])
		}
	})

	t.Run("unknown ids are ignored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewFundRepository(db)

		f := testutil.NewFund().Build(t, db)

		funds, err := repo.ListFunds(context.Background(), []string{f.ID, testutil.MakeID()})
		if err != nil {
			t.Fatalf("ListFunds() returned unexpected error: %v", err)
		}
		if len(funds) != 1 {
			t.Errorf("Expected 1 fund, got %d", len(funds))
		}
	})
}
