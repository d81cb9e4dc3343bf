package service_test

import (
	"math"
	"testing"

	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
	"github.com/twatanabe/Asset-Overview-Backend/internal/service"
)

func findItem(items []model.AssetItem, assetType, broker, currency string) (model.AssetItem, bool) {
	for _, item := range items {
		if item.AssetType == assetType && item.Broker == broker && item.Currency == currency {
			return item, true
		}
	}
	return model.AssetItem{}, false
}

// TestAssetItemBuilder_Build tests normalization of the loaded data sets
// into asset items.
//
// WHY: The item list is the single input of every overview query. A wrong
// merge or a dropped position here corrupts every report downstream.
func TestAssetItemBuilder_Build(t *testing.T) {
	builder := service.AssetItemBuilder{FundCurrency: "JPY"}

	t.Run("cash becomes one item per broker and currency", func(t *testing.T) {
		brokers := []model.Broker{
			{Name: "IB", CashBalances: []model.CashBalance{
				{Currency: "USD", Balance: 1000},
				{Currency: "JPY", Balance: 50000},
			}},
			{Name: "Nomura", CashBalances: []model.CashBalance{
				{Currency: "JPY", Balance: 20000},
			}},
		}

		items := builder.Build(brokers, nil, nil, service.NewQuoteIndex(nil, nil))

		if len(items) != 3 {
			t.Fatalf("Expected 3 cash items, got %d", len(items))
		}
		item, ok := findItem(items, model.AssetTypeCash, "IB", "USD")
		if !ok {
			t.Fatal("Expected IB USD cash item")
		}
		if !floatEquals(item.Value, 1000) || !floatEquals(item.Profit, 0) {
			t.Errorf("Expected value 1000 profit 0, got %+v", item)
		}
	})

	t.Run("funds sum per broker in the fund currency", func(t *testing.T) {
		funds := []model.Fund{
			{Broker: "Nomura", Name: "Fund A", Capital: 10000, MarketValue: 12000},
			{Broker: "Nomura", Name: "Fund B", Capital: 5000, MarketValue: 4500},
			{Broker: "IB", Name: "Fund C", Capital: 1000, MarketValue: 1100},
		}

		items := builder.Build(nil, funds, nil, service.NewQuoteIndex(nil, nil))

		item, ok := findItem(items, model.AssetTypeFunds, "Nomura", "JPY")
		if !ok {
			t.Fatal("Expected Nomura fund item in JPY")
		}
		if !floatEquals(item.Value, 16500) {
			t.Errorf("Expected summed value 16500, got %v", item.Value)
		}
		if !floatEquals(item.Profit, 1500) {
			t.Errorf("Expected summed profit 1500, got %v", item.Profit)
		}
	})

	t.Run("stock positions merge per broker and currency", func(t *testing.T) {
		stocks := []model.StockWithTransactions{
			{
				Stock:        model.Stock{Symbol: "AAPL", Currency: "USD"},
				Transactions: []model.StockTransaction{buy(10, 100, 0, 1)},
			},
			{
				Stock:        model.Stock{Symbol: "MSFT", Currency: "USD"},
				Transactions: []model.StockTransaction{buy(5, 200, 0, 1)},
			},
		}
		quotes := service.NewQuoteIndex([]model.Quote{
			quote("AAPL", 150),
			quote("MSFT", 300),
		}, []string{"AAPL", "MSFT"})

		items := builder.Build(nil, nil, stocks, quotes)

		if len(items) != 1 {
			t.Fatalf("Expected one merged stock item, got %d", len(items))
		}
		item := items[0]
		if item.AssetType != model.AssetTypeStock || item.Broker != "IB" || item.Currency != "USD" {
			t.Fatalf("Unexpected merged item: %+v", item)
		}
		// 10*150 + 5*300
		if !floatEquals(item.Value, 3000) {
			t.Errorf("Expected merged value 3000, got %v", item.Value)
		}
		// (150-100)*10 + (300-200)*5
		if !floatEquals(item.Profit, 1000) {
			t.Errorf("Expected merged profit 1000, got %v", item.Profit)
		}
	})

	t.Run("same symbol at two brokers stays separate", func(t *testing.T) {
		stocks := []model.StockWithTransactions{
			{
				Stock: model.Stock{Symbol: "AAPL", Currency: "USD"},
				Transactions: []model.StockTransaction{
					buy(10, 100, 0, 1),
					{Broker: "Nomura", Side: model.SideBuy, Shares: 3, Price: 110, Date: day(2)},
				},
			},
		}
		quotes := service.NewQuoteIndex([]model.Quote{quote("AAPL", 150)}, []string{"AAPL"})

		items := builder.Build(nil, nil, stocks, quotes)

		if len(items) != 2 {
			t.Fatalf("Expected 2 items (one per broker), got %d", len(items))
		}
		if _, ok := findItem(items, model.AssetTypeStock, "Nomura", "USD"); !ok {
			t.Error("Expected a Nomura stock item")
		}
	})

	t.Run("unquoted stock keeps its item with NaN figures", func(t *testing.T) {
		stocks := []model.StockWithTransactions{
			{
				Stock:        model.Stock{Symbol: "OBSCURE", Currency: "USD"},
				Transactions: []model.StockTransaction{buy(10, 100, 0, 1)},
			},
		}

		items := builder.Build(nil, nil, stocks, service.NewQuoteIndex(nil, []string{"OBSCURE"}))

		if len(items) != 1 {
			t.Fatalf("Expected the unpriced item to survive, got %d items", len(items))
		}
		if !math.IsNaN(items[0].Value) || !math.IsNaN(items[0].Profit) {
			t.Errorf("Expected NaN value and profit, got %+v", items[0])
		}
	})

	t.Run("fully closed positions are skipped", func(t *testing.T) {
		stocks := []model.StockWithTransactions{
			{
				Stock: model.Stock{Symbol: "AAPL", Currency: "USD"},
				Transactions: []model.StockTransaction{
					buy(10, 100, 0, 1),
					sell(10, 170, 0, 2),
				},
			},
		}
		quotes := service.NewQuoteIndex([]model.Quote{quote("AAPL", 150)}, []string{"AAPL"})

		items := builder.Build(nil, nil, stocks, quotes)

		if len(items) != 0 {
			t.Errorf("Expected no items for a closed position, got %d", len(items))
		}
	})

	t.Run("rebuilding from the same inputs yields the same items", func(t *testing.T) {
		brokers := []model.Broker{
			{Name: "IB", CashBalances: []model.CashBalance{{Currency: "USD", Balance: 1000}}},
		}
		funds := []model.Fund{
			{Broker: "Nomura", Name: "Fund A", Capital: 10000, MarketValue: 12000},
		}
		stocks := []model.StockWithTransactions{
			{
				Stock:        model.Stock{Symbol: "AAPL", Currency: "USD"},
				Transactions: []model.StockTransaction{buy(10, 100, 0, 1)},
			},
		}
		quotes := service.NewQuoteIndex([]model.Quote{quote("AAPL", 150)}, []string{"AAPL"})

		first := builder.Build(brokers, funds, stocks, quotes)
		second := builder.Build(brokers, funds, stocks, quotes)

		if len(first) != len(second) {
			t.Fatalf("Expected equal item counts, got %d and %d", len(first), len(second))
		}
		for _, item := range first {
			match, ok := findItem(second, item.AssetType, item.Broker, item.Currency)
			if !ok {
				t.Fatalf("Item %+v missing from the rebuild", item)
			}
			if !floatEquals(match.Value, item.Value) || !floatEquals(match.Profit, item.Profit) {
				t.Errorf("Rebuilt item differs: %+v vs %+v", item, match)
			}
		}
	})

	t.Run("oversold positions are dropped without poisoning others", func(t *testing.T) {
		stocks := []model.StockWithTransactions{
			{
				Stock: model.Stock{Symbol: "BAD", Currency: "USD"},
				Transactions: []model.StockTransaction{
					buy(1, 100, 0, 1),
					sell(5, 100, 0, 2),
				},
			},
			{
				Stock:        model.Stock{Symbol: "AAPL", Currency: "USD"},
				Transactions: []model.StockTransaction{buy(10, 100, 0, 1)},
			},
		}
		quotes := service.NewQuoteIndex([]model.Quote{quote("AAPL", 150)}, []string{"AAPL", "BAD"})

		items := builder.Build(nil, nil, stocks, quotes)

		if len(items) != 1 {
			t.Fatalf("Expected only the healthy position, got %d items", len(items))
		}
		if !floatEquals(items[0].Value, 1500) {
			t.Errorf("Expected value 1500, got %v", items[0].Value)
		}
	})
}
