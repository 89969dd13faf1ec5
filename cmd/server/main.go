package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mdevries/portfolio-tracker-backend/internal/api"
	"github.com/mdevries/portfolio-tracker-backend/internal/config"
	"github.com/mdevries/portfolio-tracker-backend/internal/database"
	"github.com/mdevries/portfolio-tracker-backend/internal/pricing"
	"github.com/mdevries/portfolio-tracker-backend/internal/repository"
	"github.com/mdevries/portfolio-tracker-backend/internal/repository/memory"
	"github.com/mdevries/portfolio-tracker-backend/internal/repository/sqlite"
	"github.com/mdevries/portfolio-tracker-backend/internal/scheduler"
	"github.com/mdevries/portfolio-tracker-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Select the storage backend once; everything downstream depends only
	// on the repository interfaces.
	var (
		db               *sql.DB
		portfolioRepo    repository.PortfolioRepository
		assetRepo        repository.AssetRepository
		priceHistoryRepo repository.PriceHistoryRepository
	)

	switch cfg.Storage.Backend {
	case config.StorageSQLite:
		db, err = database.Open(cfg.Storage.Path)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		log.Printf("Connected to database: %s", cfg.Storage.Path)

		portfolioRepo = sqlite.NewPortfolioRepository(db)
		assetRepo = sqlite.NewAssetRepository(db)
		priceHistoryRepo = sqlite.NewPriceHistoryRepository(db)

	case config.StorageMemory:
		store := memory.NewStore()
		portfolioRepo = memory.NewPortfolioRepository(store)
		assetRepo = memory.NewAssetRepository(store)
		priceHistoryRepo = memory.NewPriceHistoryRepository(store)

		log.Println("Using in-memory storage; data will not survive a restart")
	}

	// Create services
	priceProvider := pricing.NewService(cfg.Pricing.ProviderTimeout)
	valuationEngine := service.NewValuationEngine()

	systemService := service.NewSystemService(db, cfg.Storage.Backend)
	portfolioService := service.NewPortfolioService(portfolioRepo, assetRepo)
	assetService := service.NewAssetService(assetRepo, portfolioService, priceProvider, valuationEngine)
	refreshService := service.NewRefreshService(
		assetRepo,
		priceHistoryRepo,
		portfolioService,
		priceProvider,
		valuationEngine,
		cfg.Pricing.LookupDelay,
	)
	priceService := service.NewPriceService(priceHistoryRepo)
	analyticsService := service.NewAnalyticsService(portfolioRepo, assetRepo)

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		Portfolio: portfolioService,
		Asset:     assetService,
		Refresh:   refreshService,
		Price:     priceService,
		Analytics: analyticsService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Background price refresh
	var refreshScheduler *scheduler.Scheduler
	if cfg.Pricing.RefreshEnabled {
		refreshScheduler = scheduler.New(refreshService, cfg.Pricing.RefreshSchedule)
		if err := refreshScheduler.Start(); err != nil {
			log.Fatalf("Failed to start price refresh scheduler: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down server...")

		if refreshScheduler != nil {
			refreshScheduler.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
