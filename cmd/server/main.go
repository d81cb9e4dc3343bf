package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/twatanabe/Asset-Overview-Backend/internal/api"
	"github.com/twatanabe/Asset-Overview-Backend/internal/config"
	"github.com/twatanabe/Asset-Overview-Backend/internal/database"
	"github.com/twatanabe/Asset-Overview-Backend/internal/logging"
	"github.com/twatanabe/Asset-Overview-Backend/internal/quotefetch"
	"github.com/twatanabe/Asset-Overview-Backend/internal/repository"
	"github.com/twatanabe/Asset-Overview-Backend/internal/scheduler"
	"github.com/twatanabe/Asset-Overview-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Pretty)

	// Open database connection and apply pending migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	log.Info().Str("path", cfg.Database.Path).Msg("connected to database")

	// Create repositories
	brokerRepo := repository.NewBrokerRepository(db)
	fundRepo := repository.NewFundRepository(db)
	stockRepo := repository.NewStockRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	brokerService := service.NewBrokerService(brokerRepo)
	fundService := service.NewFundService(fundRepo, brokerRepo)
	stockService := service.NewStockService(stockRepo, quoteRepo)

	fetcher := quotefetch.New(cfg.Quotes.APIBaseURL, cfg.Quotes.APITimeout)
	quoteService := service.NewQuoteService(quoteRepo, stockRepo, fetcher, cfg.Assets.MainCurrency)

	loader := service.NewAssetLoader(brokerRepo, fundRepo, stockRepo, quoteRepo, cfg.Assets.FundCurrency)
	assetService := service.NewAssetService(loader, cfg.Assets.MainCurrency, cfg.Assets.LoadTimeout)

	// Load the initial snapshot; an empty database is fine, a broken one is not.
	if err := assetService.Refresh(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("initial asset load failed")
	}

	// Schedule periodic quote refreshes
	sched := scheduler.New(log.Logger)
	if cfg.Quotes.RefreshSchedule != "" {
		job := scheduler.NewQuoteRefreshJob(quoteService, assetService, cfg.Assets.LoadTimeout)
		if err := sched.AddJob(cfg.Quotes.RefreshSchedule, job); err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.Quotes.RefreshSchedule).Msg("failed to schedule quote refresh")
		}
	}
	sched.Start()
	defer sched.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System: systemService,
		Asset:  assetService,
		Broker: brokerService,
		Fund:   fundService,
		Stock:  stockService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
