package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/config"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/service"
)

// Services groups the service layer the router dispatches to.
type Services struct {
	System      *service.SystemService
	Market      *service.MarketService
	Settings    *service.SettingsService
	Portfolio   *service.PortfolioService
	Transaction *service.TransactionService
	Future      *service.FutureService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	r.Use(custommiddleware.NewCORS(cfg.CORS))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/market", func(r chi.Router) {
			marketHandler := handlers.NewMarketHandler(services.Market)
			r.Get("/", marketHandler.Snapshot)
			r.Post("/refresh", marketHandler.Refresh)
		})

		r.Route("/settings", func(r chi.Router) {
			settingsHandler := handlers.NewSettingsHandler(services.Settings)
			r.Get("/", settingsHandler.GetSettings)
			r.Put("/", settingsHandler.UpdateSettings)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(services.Portfolio)
			r.Get("/summary", portfolioHandler.PortfolioSummary)
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(services.Transaction)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/future", func(r chi.Router) {
			futureHandler := handlers.NewFutureHandler(services.Future)
			r.Get("/", futureHandler.AllFutures)
			r.Post("/", futureHandler.CreateFuture)
			r.Get("/summary", futureHandler.FutureSummary)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", futureHandler.GetFuture)
				r.Put("/", futureHandler.UpdateFuture)
				r.Delete("/", futureHandler.DeleteFuture)
				r.Post("/close", futureHandler.CloseFuture)
				r.Post("/status", futureHandler.SetFutureStatus)
			})
		})

		r.Route("/calc", func(r chi.Router) {
			calcHandler := handlers.NewCalcHandler()
			r.Post("/normalize", calcHandler.Normalize)
			r.Post("/linked-fields", calcHandler.LinkedFields)
		})
	})

	return r
}
