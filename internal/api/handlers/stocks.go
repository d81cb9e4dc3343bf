package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/twatanabe/Asset-Overview-Backend/internal/api/request"
	"github.com/twatanabe/Asset-Overview-Backend/internal/api/response"
	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
	"github.com/twatanabe/Asset-Overview-Backend/internal/service"
	"github.com/twatanabe/Asset-Overview-Backend/internal/validation"
)

// StocksHandler handles stock-related HTTP requests: position queries,
// quote lookups and transaction recording.
type StocksHandler struct {
	stockService *service.StockService
	assetService *service.AssetService
}

// NewStocksHandler creates a new StocksHandler
func NewStocksHandler(stockService *service.StockService, assetService *service.AssetService) *StocksHandler {
	return &StocksHandler{
		stockService: stockService,
		assetService: assetService,
	}
}

// StockBalanceResponse is the lot-matched state of one position. All fields
// are null when the transaction history cannot be resolved (more shares sold
// than bought).
type StockBalanceResponse struct {
	Shares     response.Float `json:"shares"`
	VWAP       response.Float `json:"vwap"`
	Fee        response.Float `json:"fee"`
	Liquidated response.Float `json:"liquidated"`
}

// StockPositionResponse is one instrument's position at one broker.
// Value and Profit are null when no quote is known for the instrument.
type StockPositionResponse struct {
	Symbol   string               `json:"symbol"`
	Currency string               `json:"currency"`
	Broker   string               `json:"broker"`
	Balance  StockBalanceResponse `json:"balance"`
	Value    response.Float       `json:"value"`
	Profit   response.Float       `json:"profit"`
}

// CreateTransactionResponse returns the ID of a recorded transaction.
type CreateTransactionResponse struct {
	ID string `json:"id"`
}

// Positions handles GET requests for open stock positions.
//
// Endpoint: GET /api/stocks
// Query parameters:
//   - broker: restrict to one broker (optional)
//   - symbol: restrict to one instrument (optional)
//
// Response: 200 OK with a list of StockPositionResponse
func (h *StocksHandler) Positions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	positions, err := h.stockService.GetPositions(r.Context(), q.Get("broker"), q.Get("symbol"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := make([]StockPositionResponse, 0, len(positions))
	for _, p := range positions {
		resp = append(resp, toStockPositionResponse(p))
	}
	respondJSON(w, http.StatusOK, resp)
}

// Quote handles GET requests for the latest known quote of one instrument.
//
// Endpoint: GET /api/stocks/{symbol}/quote
// Response: 200 OK with QuoteResponse
// Error: 400 Bad Request on a malformed symbol
// Error: 404 Not Found when no quote is known for the symbol
// Error: 503 Service Unavailable when no snapshot has been loaded yet
func (h *StocksHandler) Quote(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if err := validation.ValidateSymbol(symbol); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid symbol", err.Error())
		return
	}

	quote, err := h.assetService.LatestQuote(symbol)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toQuoteResponse(quote))
}

// CreateTransaction handles POST requests to record a stock transaction.
// The instrument is created on first use with the request's currency.
//
// Endpoint: POST /api/stocks/transactions
// Request body: CreateStockTransactionRequest
// Response: 201 Created with CreateTransactionResponse
// Error: 400 Bad Request on a malformed body or failed validation
func (h *StocksHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req request.CreateStockTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateStockTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	var date time.Time
	if req.Date != "" {
		// Validated above, cannot fail here.
		date, _ = validation.ParseTransactionDate(req.Date)
	}

	stock := model.Stock{Symbol: req.Symbol, Currency: req.Currency}
	tx := model.StockTransaction{
		Broker: req.Broker,
		Side:   req.Side,
		Shares: req.Shares,
		Price:  req.Price,
		Fee:    req.Fee,
		Date:   date,
	}

	id, err := h.stockService.AddTransaction(r.Context(), stock, tx)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, CreateTransactionResponse{ID: id})
}

func toStockPositionResponse(p service.StockPosition) StockPositionResponse {
	return StockPositionResponse{
		Symbol:   p.Symbol,
		Currency: p.Currency,
		Broker:   p.Broker,
		Balance: StockBalanceResponse{
			Shares:     response.Float(p.Balance.Shares),
			VWAP:       response.Float(p.Balance.VWAP),
			Fee:        response.Float(p.Balance.Fee),
			Liquidated: response.Float(p.Balance.Liquidated),
		},
		Value:  response.Float(p.Value),
		Profit: response.Float(p.Profit),
	}
}
