package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
	"github.com/twatanabe/Asset-Overview-Backend/internal/service"
)

// BrokersHandler handles broker-related HTTP requests
type BrokersHandler struct {
	brokerService *service.BrokerService
}

// NewBrokersHandler creates a new BrokersHandler
func NewBrokersHandler(brokerService *service.BrokerService) *BrokersHandler {
	return &BrokersHandler{
		brokerService: brokerService,
	}
}

// CashBalanceResponse is one currency's cash balance at a broker.
type CashBalanceResponse struct {
	Currency string  `json:"currency"`
	Balance  float64 `json:"balance"`
}

// BrokerResponse represents one broker with its cash balances and the set
// of funds it currently holds.
type BrokerResponse struct {
	Name            string                `json:"name"`
	CashBalances    []CashBalanceResponse `json:"cashBalances"`
	ActiveFundIDs   []string              `json:"activeFundIds"`
	FundsUpdateDate *string               `json:"fundsUpdateDate"`
}

// List handles GET requests for all brokers.
//
// Endpoint: GET /api/brokers
// Response: 200 OK with a list of BrokerResponse
func (h *BrokersHandler) List(w http.ResponseWriter, r *http.Request) {
	brokers, err := h.brokerService.GetAllBrokers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := make([]BrokerResponse, 0, len(brokers))
	for _, b := range brokers {
		resp = append(resp, toBrokerResponse(b))
	}
	respondJSON(w, http.StatusOK, resp)
}

// Get handles GET requests for a single broker by name.
//
// Endpoint: GET /api/brokers/{name}
// Response: 200 OK with BrokerResponse
// Error: 404 Not Found when no broker has that name
func (h *BrokersHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	broker, err := h.brokerService.GetBroker(r.Context(), name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toBrokerResponse(broker))
}

func toBrokerResponse(b model.Broker) BrokerResponse {
	balances := make([]CashBalanceResponse, 0, len(b.CashBalances))
	for _, cb := range b.CashBalances {
		balances = append(balances, CashBalanceResponse{
			Currency: cb.Currency,
			Balance:  cb.Balance,
		})
	}

	var updated *string
	if b.FundsUpdateDate != nil {
		s := b.FundsUpdateDate.Format(time.RFC3339)
		updated = &s
	}

	return BrokerResponse{
		Name:            b.Name,
		CashBalances:    balances,
		ActiveFundIDs:   b.ActiveFundIDs,
		FundsUpdateDate: updated,
	}
}
