package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/twatanabe/Asset-Overview-Backend/internal/testutil"
)

func TestStocksHandler_Positions(t *testing.T) {
	t.Run("lists open positions with quote derived figures", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateStock(t, db, "AAPL", "USD")
		testutil.NewTransaction("AAPL").Buy(10, 100).WithBroker("IB").Build(t, db)
		testutil.SetQuote(t, db, "AAPL", 150)

		handler := NewStocksHandler(
			testutil.NewTestStockService(t, db),
			testutil.NewTestAssetService(t, db, "JPY"),
		)

		req := httptest.NewRequest(http.MethodGet, "/api/stocks", nil)
		w := httptest.NewRecorder()

		handler.Positions(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var positions []StockPositionResponse
		if err := json.NewDecoder(w.Body).Decode(&positions); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(positions))
		}
		p := positions[0]
		if p.Symbol != "AAPL" || p.Broker != "IB" {
			t.Errorf("Unexpected position: %+v", p)
		}
		if float64(p.Balance.Shares) != 10 || float64(p.Value) != 1500 {
			t.Errorf("Unexpected figures: %+v", p)
		}
	})

	t.Run("unquoted position figures render as null", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateStock(t, db, "OBSCURE", "USD")
		testutil.NewTransaction("OBSCURE").Buy(1, 100).Build(t, db)

		handler := NewStocksHandler(
			testutil.NewTestStockService(t, db),
			testutil.NewTestAssetService(t, db, "JPY"),
		)

		req := httptest.NewRequest(http.MethodGet, "/api/stocks", nil)
		w := httptest.NewRecorder()

		handler.Positions(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"value":null`) {
			t.Errorf("Expected null value in body: %s", w.Body.String())
		}
	})
}

func TestStocksHandler_Quote(t *testing.T) {
	setupHandler := func(t *testing.T) *StocksHandler {
		t.Helper()
		db := testutil.SetupTestDB(t)
		testutil.CreateStock(t, db, "AAPL", "USD")
		testutil.NewTransaction("AAPL").Buy(1, 100).Build(t, db)
		testutil.SetQuote(t, db, "AAPL", 150)

		assetService := testutil.NewTestAssetService(t, db, "JPY")
		if err := assetService.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh() returned unexpected error: %v", err)
		}
		return NewStocksHandler(testutil.NewTestStockService(t, db), assetService)
	}

	t.Run("returns the latest quote", func(t *testing.T) {
		handler := setupHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/stocks/AAPL/quote",
			map[string]string{"symbol": "AAPL"})
		w := httptest.NewRecorder()

		handler.Quote(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var quote QuoteResponse
		if err := json.NewDecoder(w.Body).Decode(&quote); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if quote.Symbol != "AAPL" || float64(quote.Rate) != 150 {
			t.Errorf("Unexpected quote: %+v", quote)
		}
	})

	t.Run("returns 404 for an unquoted symbol", func(t *testing.T) {
		handler := setupHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/stocks/MSFT/quote",
			map[string]string{"symbol": "MSFT"})
		w := httptest.NewRecorder()

		handler.Quote(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for a missing symbol", func(t *testing.T) {
		handler := setupHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/stocks//quote", nil)
		w := httptest.NewRecorder()

		handler.Quote(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestStocksHandler_CreateTransaction(t *testing.T) {
	setupHandler := func(t *testing.T) *StocksHandler {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewStocksHandler(
			testutil.NewTestStockService(t, db),
			testutil.NewTestAssetService(t, db, "JPY"),
		)
	}

	t.Run("records a valid transaction", func(t *testing.T) {
		handler := setupHandler(t)

		body := `{
			"symbol": "AAPL",
			"currency": "USD",
			"broker": "IB",
			"side": "BUY",
			"shares": 10,
			"price": 100,
			"fee": 1.5,
			"date": "2024-01-05"
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/stocks/transactions", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var response CreateTransactionResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.ID == "" {
			t.Error("Expected a transaction ID")
		}
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		handler := setupHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/stocks/transactions", strings.NewReader("{"))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects validation failures", func(t *testing.T) {
		handler := setupHandler(t)

		body := `{
			"symbol": "AAPL",
			"currency": "usd",
			"broker": "",
			"side": "SHORT",
			"shares": -1,
			"price": 100
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/stocks/transactions", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "validation failed") {
			t.Errorf("Expected a validation error body, got %s", w.Body.String())
		}
	})
}
