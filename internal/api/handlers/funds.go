package handlers

import (
	"net/http"
	"time"

	"github.com/twatanabe/Asset-Overview-Backend/internal/api/response"
	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
	"github.com/twatanabe/Asset-Overview-Backend/internal/service"
)

// FundsHandler handles fund-related HTTP requests
type FundsHandler struct {
	fundService *service.FundService
}

// NewFundsHandler creates a new FundsHandler
func NewFundsHandler(fundService *service.FundService) *FundsHandler {
	return &FundsHandler{
		fundService: fundService,
	}
}

// FundResponse represents one active mutual fund position.
// ROI is null when the fund has no capital recorded.
type FundResponse struct {
	ID          string         `json:"id"`
	Broker      string         `json:"broker"`
	Name        string         `json:"name"`
	Amount      int            `json:"amount"`
	Capital     float64        `json:"capital"`
	MarketValue float64        `json:"marketValue"`
	Price       float64        `json:"price"`
	Profit      response.Float `json:"profit"`
	ROI         response.Float `json:"roi"`
	Date        string         `json:"date"`
}

// FundSumResponse aggregates all active fund positions.
type FundSumResponse struct {
	MarketValue response.Float `json:"marketValue"`
	Capital     response.Float `json:"capital"`
	Profit      response.Float `json:"profit"`
	ROI         response.Float `json:"roi"`
}

// FundListResponse is the funds endpoint payload: the active positions plus
// their aggregate.
type FundListResponse struct {
	Funds []FundResponse  `json:"funds"`
	Sum   FundSumResponse `json:"sum"`
}

// List handles GET requests for the active fund positions across all brokers.
//
// Endpoint: GET /api/funds
// Response: 200 OK with FundListResponse
func (h *FundsHandler) List(w http.ResponseWriter, r *http.Request) {
	funds, err := h.fundService.GetActiveFunds(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	sum := h.fundService.SumFunds(funds)

	resp := FundListResponse{
		Funds: make([]FundResponse, 0, len(funds)),
		Sum: FundSumResponse{
			MarketValue: response.Float(sum.MarketValue),
			Capital:     response.Float(sum.Capital),
			Profit:      response.Float(sum.Profit),
			ROI:         response.Float(sum.ROI),
		},
	}
	for _, f := range funds {
		resp.Funds = append(resp.Funds, toFundResponse(f))
	}
	respondJSON(w, http.StatusOK, resp)
}

func toFundResponse(f model.Fund) FundResponse {
	return FundResponse{
		ID:          f.ID,
		Broker:      f.Broker,
		Name:        f.Name,
		Amount:      f.Amount,
		Capital:     f.Capital,
		MarketValue: f.MarketValue,
		Price:       f.Price,
		Profit:      response.Float(f.Profit),
		ROI:         response.Float(f.ROI),
		Date:        f.Date.Format(time.RFC3339),
	}
}
