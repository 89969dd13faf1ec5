package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mdevries/portfolio-tracker-backend/internal/api/handlers"
	custommiddleware "github.com/mdevries/portfolio-tracker-backend/internal/api/middleware"
	"github.com/mdevries/portfolio-tracker-backend/internal/config"
	"github.com/mdevries/portfolio-tracker-backend/internal/service"
)

// Services bundles the service layer for router construction.
type Services struct {
	System    *service.SystemService
	Portfolio *service.PortfolioService
	Asset     *service.AssetService
	Refresh   *service.RefreshService
	Price     *service.PriceService
	Analytics *service.AnalyticsService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
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
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(services.Portfolio)
			analyticsHandler := handlers.NewAnalyticsHandler(services.Analytics)
			priceHandler := handlers.NewPriceHandler(services.Refresh, services.Price)

			r.Get("/", portfolioHandler.Portfolios)
			r.Post("/", portfolioHandler.CreatePortfolio)
			r.Get("/default", portfolioHandler.DefaultPortfolio)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.Portfolio)
				r.Put("/", portfolioHandler.UpdatePortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)
				r.Get("/analytics", analyticsHandler.PortfolioAnalytics)
				r.Post("/update-prices", priceHandler.UpdatePrices)
			})
		})

		r.Route("/asset", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(services.Asset)

			r.Post("/", assetHandler.CreateAsset)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", assetHandler.Asset)
				r.Put("/", assetHandler.UpdateAsset)
				r.Delete("/", assetHandler.DeleteAsset)
			})
		})

		r.Route("/prices", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(services.Refresh, services.Price)

			r.Get("/latest", priceHandler.LatestPrices)
			r.Get("/{symbol}/history", priceHandler.History)
		})
	})

	return r
}
