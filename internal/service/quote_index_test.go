package service_test

import (
	"math"
	"testing"
	"time"

	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
	"github.com/twatanabe/Asset-Overview-Backend/internal/service"
)

func quote(symbol string, rate float64) model.Quote {
	return model.Quote{
		Symbol: symbol,
		Date:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Rate:   rate,
	}
}

// TestQuoteIndex_ToMainCurrency tests FX conversion through quoted pairs.
//
// WHY: Every overview figure depends on currency conversion. The direct
// pair must multiply, the inverse pair must divide, and an unquoted pair
// must yield NaN instead of a silently wrong number.
func TestQuoteIndex_ToMainCurrency(t *testing.T) {
	t.Run("same currency is identity", func(t *testing.T) {
		idx := service.NewQuoteIndex(nil, nil)

		if got := idx.ToMainCurrency(1234.5, "JPY", "JPY"); !floatEquals(got, 1234.5) {
			t.Errorf("Expected identity conversion, got %v", got)
		}
	})

	t.Run("direct pair multiplies", func(t *testing.T) {
		idx := service.NewQuoteIndex([]model.Quote{quote("USDJPY=X", 150)}, nil)

		if got := idx.ToMainCurrency(10, "USD", "JPY"); !floatEquals(got, 1500) {
			t.Errorf("Expected 1500, got %v", got)
		}
	})

	t.Run("inverse pair divides", func(t *testing.T) {
		// Only USDJPY=X is quoted; converting JPY into USD must go
		// through the inverse.
		idx := service.NewQuoteIndex([]model.Quote{quote("USDJPY=X", 150)}, nil)

		if got := idx.ToMainCurrency(1500, "JPY", "USD"); !floatEquals(got, 10) {
			t.Errorf("Expected 10, got %v", got)
		}
	})

	t.Run("direct pair wins over inverse", func(t *testing.T) {
		idx := service.NewQuoteIndex([]model.Quote{
			quote("USDJPY=X", 150),
			quote("JPYUSD=X", 0.008), // deliberately inconsistent
		}, nil)

		if got := idx.ToMainCurrency(1000, "JPY", "USD"); !floatEquals(got, 8) {
			t.Errorf("Expected the direct JPYUSD=X pair to be used, got %v", got)
		}
	})

	t.Run("round trip through a pair restores the value", func(t *testing.T) {
		idx := service.NewQuoteIndex([]model.Quote{quote("USDJPY=X", 149.5)}, nil)

		converted := idx.ToMainCurrency(321.25, "USD", "JPY")
		back := idx.ToMainCurrency(converted, "JPY", "USD")

		if !floatEquals(back, 321.25) {
			t.Errorf("Expected round trip to restore 321.25, got %v", back)
		}
	})

	t.Run("unquoted pair yields NaN", func(t *testing.T) {
		idx := service.NewQuoteIndex([]model.Quote{quote("USDJPY=X", 150)}, nil)

		if got := idx.ToMainCurrency(100, "EUR", "JPY"); !math.IsNaN(got) {
			t.Errorf("Expected NaN for unquoted pair, got %v", got)
		}
	})

	t.Run("NaN input stays NaN", func(t *testing.T) {
		idx := service.NewQuoteIndex([]model.Quote{quote("USDJPY=X", 150)}, nil)

		if got := idx.ToMainCurrency(math.NaN(), "USD", "JPY"); !math.IsNaN(got) {
			t.Errorf("Expected NaN to propagate, got %v", got)
		}
	})
}

// TestQuoteIndex_Price tests symbol price lookup.
//
// WHY: A missing quote must surface as NaN, not zero. A zero would value
// the position at nothing and silently distort every sum above it.
func TestQuoteIndex_Price(t *testing.T) {
	idx := service.NewQuoteIndex([]model.Quote{quote("AAPL", 182.5)}, []string{"AAPL"})

	t.Run("returns the quoted rate", func(t *testing.T) {
		if got := idx.Price("AAPL"); !floatEquals(got, 182.5) {
			t.Errorf("Expected 182.5, got %v", got)
		}
	})

	t.Run("returns NaN for an unquoted symbol", func(t *testing.T) {
		if got := idx.Price("MSFT"); !math.IsNaN(got) {
			t.Errorf("Expected NaN, got %v", got)
		}
	})
}

// TestQuoteIndex_CurrencyPairs tests FX pair classification by exclusion.
//
// WHY: The quote store mixes stock quotes and FX pairs in one table; pairs
// are whatever is quoted but not a known stock. The split must be exact or
// stocks leak into the FX listing.
func TestQuoteIndex_CurrencyPairs(t *testing.T) {
	idx := service.NewQuoteIndex([]model.Quote{
		quote("AAPL", 182.5),
		quote("USDJPY=X", 150),
		quote("EURJPY=X", 160),
	}, []string{"AAPL", "MSFT"})

	pairs := idx.CurrencyPairs()

	if len(pairs) != 2 {
		t.Fatalf("Expected 2 FX pairs, got %d", len(pairs))
	}
	seen := map[string]bool{}
	for _, p := range pairs {
		seen[p.Symbol] = true
	}
	if !seen["USDJPY=X"] || !seen["EURJPY=X"] {
		t.Errorf("Expected USDJPY=X and EURJPY=X, got %v", seen)
	}
}

// TestQuoteIndex_Latest tests exact symbol lookup.
func TestQuoteIndex_Latest(t *testing.T) {
	idx := service.NewQuoteIndex([]model.Quote{quote("AAPL", 182.5)}, []string{"AAPL"})

	if _, ok := idx.Latest("AAPL"); !ok {
		t.Error("Expected AAPL quote to be found")
	}
	if _, ok := idx.Latest("aapl"); ok {
		t.Error("Expected symbol matching to be case sensitive")
	}
}
