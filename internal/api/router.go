// Package api wires the HTTP surface of the asset overview service.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/twatanabe/Asset-Overview-Backend/internal/api/handlers"
	custommiddleware "github.com/twatanabe/Asset-Overview-Backend/internal/api/middleware"
	"github.com/twatanabe/Asset-Overview-Backend/internal/config"
	"github.com/twatanabe/Asset-Overview-Backend/internal/service"
)

// Services bundles the service-layer dependencies of the router.
type Services struct {
	System *service.SystemService
	Asset  *service.AssetService
	Broker *service.BrokerService
	Fund   *service.FundService
	Stock  *service.StockService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		// Snapshot queries
		r.Route("/assets", func(r chi.Router) {
			assetsHandler := handlers.NewAssetsHandler(svc.Asset)
			r.Post("/refresh", assetsHandler.Refresh)
			r.Get("/overview", assetsHandler.Overview)
			r.Get("/sum", assetsHandler.Sum)
			r.Get("/currencies", assetsHandler.Currencies)
			r.Get("/currency-pairs", assetsHandler.CurrencyPairs)
		})

		r.Route("/brokers", func(r chi.Router) {
			brokersHandler := handlers.NewBrokersHandler(svc.Broker)
			r.Get("/", brokersHandler.List)
			r.Get("/{name}", brokersHandler.Get)
		})

		r.Route("/funds", func(r chi.Router) {
			fundsHandler := handlers.NewFundsHandler(svc.Fund)
			r.Get("/", fundsHandler.List)
		})

		r.Route("/stocks", func(r chi.Router) {
			stocksHandler := handlers.NewStocksHandler(svc.Stock, svc.Asset)
			r.Get("/", stocksHandler.Positions)
			r.Get("/{symbol}/quote", stocksHandler.Quote)
			r.Post("/transactions", stocksHandler.CreateTransaction)
		})
	})

	return r
}
