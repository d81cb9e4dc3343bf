package handlers

import (
	"net/http"
	"time"

	"github.com/twatanabe/Asset-Overview-Backend/internal/api/response"
	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
	"github.com/twatanabe/Asset-Overview-Backend/internal/service"
)

// AssetsHandler handles HTTP requests against the loaded asset snapshot:
// refresh, overview, sum-group and currency queries.
type AssetsHandler struct {
	assetService *service.AssetService
}

// NewAssetsHandler creates a new AssetsHandler
func NewAssetsHandler(assetService *service.AssetService) *AssetsHandler {
	return &AssetsHandler{
		assetService: assetService,
	}
}

// OverviewItemResponse is one leaf of the overview tree, or one row of a
// flat sum group. Converted figures are null when no FX pair covers the
// item's currency.
type OverviewItemResponse struct {
	Name            string         `json:"name"`
	Currency        string         `json:"currency"`
	Value           response.Float `json:"value"`
	ValueInMainCcy  response.Float `json:"valueInMainCcy"`
	Profit          response.Float `json:"profit"`
	ProfitInMainCcy response.Float `json:"profitInMainCcy"`
}

// OverviewContainerResponse is a level-2 node of the overview tree.
type OverviewContainerResponse struct {
	Name            string                 `json:"name"`
	ItemName        string                 `json:"itemName"`
	ValueSumInMain  response.Float         `json:"valueSumInMainCcy"`
	ProfitSumInMain response.Float         `json:"profitSumInMainCcy"`
	Items           []OverviewItemResponse `json:"items"`
}

// OverviewGroupResponse is a level-1 node of the overview tree.
type OverviewGroupResponse struct {
	Name            string                      `json:"name"`
	ItemName        string                      `json:"itemName"`
	ValueSumInMain  response.Float              `json:"valueSumInMainCcy"`
	ProfitSumInMain response.Float              `json:"profitSumInMainCcy"`
	Containers      []OverviewContainerResponse `json:"containers"`
}

// OverviewResponse is the full three-level grouped summary.
type OverviewResponse struct {
	ItemName        string                  `json:"itemName"`
	MainCurrency    string                  `json:"mainCurrency"`
	ValueSumInMain  response.Float          `json:"valueSumInMainCcy"`
	ProfitSumInMain response.Float          `json:"profitSumInMainCcy"`
	Groups          []OverviewGroupResponse `json:"groups"`
}

// QuoteResponse represents one quote or FX pair rate.
type QuoteResponse struct {
	Symbol string         `json:"symbol"`
	Date   string         `json:"date"`
	Rate   response.Float `json:"rate"`
}

// Refresh handles POST requests to reload the asset snapshot from all
// sources. The reload is synchronous; the response reports the new state.
//
// Endpoint: POST /api/assets/refresh
// Response: 204 No Content on success
// Error: 500 Internal Server Error if any source fails (the previous
// snapshot, if one exists, stays in place)
func (h *AssetsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.assetService.Refresh(r.Context()); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Overview handles GET requests for the three-level grouped asset summary.
//
// Endpoint: GET /api/assets/overview
// Query parameters:
//   - mainCcy: reporting currency (optional, defaults to the configured one)
//   - level1, level2, level3: grouping keys, each one of asset|broker|currency
//     (optional, default asset/broker/currency)
//
// Response: 200 OK with OverviewResponse
// Error: 400 Bad Request on an unknown grouping key
// Error: 503 Service Unavailable when no snapshot has been loaded yet
func (h *AssetsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	level1 := groupByParam(q.Get("level1"), model.ByAssetType)
	level2 := groupByParam(q.Get("level2"), model.ByBroker)
	level3 := groupByParam(q.Get("level3"), model.ByCurrency)

	overview, err := h.assetService.Overview(q.Get("mainCcy"), level1, level2, level3)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toOverviewResponse(overview))
}

// Sum handles GET requests for a flat single-level asset summary.
//
// Endpoint: GET /api/assets/sum
// Query parameters:
//   - mainCcy: reporting currency (optional, defaults to the configured one)
//   - groupBy: grouping key, one of asset|broker|currency (optional,
//     default asset)
//
// Response: 200 OK with a list of OverviewItemResponse
// Error: 400 Bad Request on an unknown grouping key
// Error: 503 Service Unavailable when no snapshot has been loaded yet
func (h *AssetsHandler) Sum(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	group := groupByParam(q.Get("groupBy"), model.ByAssetType)

	items, err := h.assetService.SumGroup(q.Get("mainCcy"), group)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	rows := make([]OverviewItemResponse, 0, len(items))
	for _, item := range items {
		rows = append(rows, toOverviewItemResponse(item))
	}
	respondJSON(w, http.StatusOK, rows)
}

// Currencies handles GET requests for the set of currencies appearing in
// the loaded asset items.
//
// Endpoint: GET /api/assets/currencies
// Response: 200 OK with a list of currency codes
// Error: 503 Service Unavailable when no snapshot has been loaded yet
func (h *AssetsHandler) Currencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.assetService.Currencies()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, currencies)
}

// CurrencyPairs handles GET requests for the FX pair quotes known to the
// loaded snapshot.
//
// Endpoint: GET /api/assets/currency-pairs
// Response: 200 OK with a list of QuoteResponse
// Error: 503 Service Unavailable when no snapshot has been loaded yet
func (h *AssetsHandler) CurrencyPairs(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.assetService.CurrencyPairQuotes()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	quotes := make([]QuoteResponse, 0, len(pairs))
	for _, q := range pairs {
		quotes = append(quotes, toQuoteResponse(q))
	}
	respondJSON(w, http.StatusOK, quotes)
}

// groupByParam parses a grouping key query parameter, defaulting when absent.
// Unknown values pass through unchanged so the service layer rejects them
// with a single error path.
func groupByParam(raw string, fallback model.GroupBy) model.GroupBy {
	if raw == "" {
		return fallback
	}
	return model.GroupBy(raw)
}

func toOverviewItemResponse(item model.OverviewItem) OverviewItemResponse {
	return OverviewItemResponse{
		Name:            item.Name,
		Currency:        item.Currency,
		Value:           response.Float(item.Value),
		ValueInMainCcy:  response.Float(item.ValueInMainCcy),
		Profit:          response.Float(item.Profit),
		ProfitInMainCcy: response.Float(item.ProfitInMainCcy),
	}
}

func toOverviewResponse(overview *model.Overview) OverviewResponse {
	groups := make([]OverviewGroupResponse, 0, len(overview.Groups))
	for _, g := range overview.Groups {
		containers := make([]OverviewContainerResponse, 0, len(g.Containers))
		for _, c := range g.Containers {
			items := make([]OverviewItemResponse, 0, len(c.Items))
			for _, item := range c.Items {
				items = append(items, toOverviewItemResponse(item))
			}
			containers = append(containers, OverviewContainerResponse{
				Name:            c.Name,
				ItemName:        c.ItemName,
				ValueSumInMain:  response.Float(c.ValueSumInMain),
				ProfitSumInMain: response.Float(c.ProfitSumInMain),
				Items:           items,
			})
		}
		groups = append(groups, OverviewGroupResponse{
			Name:            g.Name,
			ItemName:        g.ItemName,
			ValueSumInMain:  response.Float(g.ValueSumInMain),
			ProfitSumInMain: response.Float(g.ProfitSumInMain),
			Containers:      containers,
		})
	}

	return OverviewResponse{
		ItemName:        overview.ItemName,
		MainCurrency:    overview.MainCurrency,
		ValueSumInMain:  response.Float(overview.ValueSumInMain),
		ProfitSumInMain: response.Float(overview.ProfitSumInMain),
		Groups:          groups,
	}
}

func toQuoteResponse(q model.Quote) QuoteResponse {
	return QuoteResponse{
		Symbol: q.Symbol,
		Date:   q.Date.Format(time.RFC3339),
		Rate:   response.Float(q.Rate),
	}
}
