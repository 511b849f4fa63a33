package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/config"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/crypto"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/database"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/logger"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/scheduler"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/service"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/version"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	appLog := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobalLogger(appLog)

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		appLog.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		appLog.Fatal().Err(err).Msg("Failed to migrate database")
	}

	appLog.Info().Str("path", cfg.Database.Path).Str("version", version.Version).Msg("Connected to database")

	cipher, err := crypto.NewCipher(cfg.Security.EncryptionKey)
	if err != nil {
		appLog.Fatal().Err(err).Msg("Invalid encryption key")
	}
	if !cipher.Enabled() {
		appLog.Warn().Msg("ENCRYPTION_KEY not set, notes are stored in plain text")
	}

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db, cipher)
	futureRepo := repository.NewFutureRepository(db, cipher)
	settingsRepo := repository.NewSettingsRepository(db)
	marketRepo := repository.NewMarketRepository(db)

	// Create services
	yahooClient := yahoo.NewFinanceClient(cfg.Market.RequestsPerSecond)
	marketService := service.NewMarketService(
		yahooClient,
		marketRepo,
		cfg.Market.PriceTTL,
		cfg.Market.ExchangeRateTTL,
		appLog,
	)
	settingsService := service.NewSettingsService(settingsRepo, cfg.Market.DefaultCurrency)
	transactionService := service.NewTransactionService(
		db,
		transactionRepo,
		marketService,
		settingsService,
	)
	portfolioService := service.NewPortfolioService(
		transactionService,
		marketService,
		settingsService,
	)
	futureService := service.NewFutureService(futureRepo, marketService)
	systemService := service.NewSystemService(db, cipher)

	// Background market refresh
	sched := scheduler.New(appLog)
	priceJob := scheduler.NewPriceRefreshJob(marketService, appLog)
	rateJob := scheduler.NewExchangeRateRefreshJob(marketService, appLog)
	if err := sched.AddJob(cfg.Market.PriceSchedule, priceJob); err != nil {
		appLog.Fatal().Err(err).Msg("Failed to schedule price refresh")
	}
	if err := sched.AddJob(cfg.Market.RateSchedule, rateJob); err != nil {
		appLog.Fatal().Err(err).Msg("Failed to schedule exchange rate refresh")
	}
	sched.Start()

	// Warm the cache so the first requests do not wait on the feed.
	go func() {
		if err := sched.RunNow(priceJob); err != nil {
			appLog.Warn().Err(err).Msg("Initial price refresh failed")
		}
		if err := sched.RunNow(rateJob); err != nil {
			appLog.Warn().Err(err).Msg("Initial exchange rate refresh failed")
		}
	}()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Market:      marketService,
		Settings:    settingsService,
		Portfolio:   portfolioService,
		Transaction: transactionService,
		Future:      futureService,
	}, cfg, appLog)

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
		appLog.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info().Msg("Shutting down server...")
	sched.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	appLog.Info().Msg("Server exited")
}
