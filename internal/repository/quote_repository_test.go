package repository_test

import (
	"context"
	"testing"

	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
	"github.com/twatanabe/Asset-Overview-Backend/internal/repository"
	"github.com/twatanabe/Asset-Overview-Backend/internal/testutil"
)

// TestQuoteRepository tests quote storage and retrieval.
//
// WHY: The quote table keeps exactly one row per symbol. The upsert must
// replace old rates in place and a filtered read must return only the
// requested symbols, silently omitting unknown ones.
func TestQuoteRepository(t *testing.T) {
	t.Run("upsert replaces the stored rate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewQuoteRepository(db)

		first := model.Quote{Symbol: "AAPL", Date: day(1), Rate: 150}
		if err := repo.UpsertQuote(context.Background(), first); err != nil {
			t.Fatalf("UpsertQuote() returned unexpected error: %v", err)
		}
		second := model.Quote{Symbol: "AAPL", Date: day(2), Rate: 175}
		if err := repo.UpsertQuote(context.Background(), second); err != nil {
			t.Fatalf("UpsertQuote() returned unexpected error: %v", err)
		}

		quotes, err := repo.LatestQuotes(context.Background(), []string{"AAPL"})
		if err != nil {
			t.Fatalf("LatestQuotes() returned unexpected error: %v", err)
		}
		if len(quotes) != 1 {
			t.Fatalf("Expected 1 quote, got %d", len(quotes))
		}
		if quotes[0].Rate != 175 {
			t.Errorf("Expected replaced rate 175, got %v", quotes[0].Rate)
		}
		if !quotes[0].Date.Equal(day(2)) {
			t.Errorf("Expected replaced date %v, got %v", day(2), quotes[0].Date)
		}
	})

	t.Run("empty symbol list returns every quote", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewQuoteRepository(db)

		testutil.SetQuote(t, db, "AAPL", 150)
		testutil.SetQuote(t, db, "USDJPY=X", 100)

		quotes, err := repo.LatestQuotes(context.Background(), nil)
		if err != nil {
			t.Fatalf("LatestQuotes() returned unexpected error: %v", err)
		}
		if len(quotes) != 2 {
			t.Errorf("Expected 2 quotes, got %d", len(quotes))
		}
	})

	t.Run("symbols without quotes are absent, not errors", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewQuoteRepository(db)

		testutil.SetQuote(t, db, "AAPL", 150)

		quotes, err := repo.LatestQuotes(context.Background(), []string{"AAPL", "MSFT"})
		if err != nil {
			t.Fatalf("LatestQuotes() returned unexpected error: %v", err)
		}
		if len(quotes) != 1 || quotes[0].Symbol != "AAPL" {
			t.Errorf("Expected only AAPL, got %v", quotes)
		}
	})
}
