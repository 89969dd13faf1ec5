package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/money"
	"github.com/mdevries/portfolio-tracker-backend/internal/pricing"
	"github.com/mdevries/portfolio-tracker-backend/internal/repository"
)

// RefreshService runs the bulk price-refresh pass: sequentially revalue
// every asset in a portfolio from fresh quotes, then aggregate exactly once.
//
// The pass is deliberately sequential with a throttle between external
// lookups; the spacing keeps third-party providers from rate-banning us.
// Per-asset lookup failures leave that asset's valuation unchanged and do
// not abort the pass.
type RefreshService struct {
	assetRepo        repository.AssetRepository
	historyRepo      repository.PriceHistoryRepository
	portfolioService *PortfolioService
	provider         pricing.Provider
	engine           *ValuationEngine
	limiter          *rate.Limiter
}

// NewRefreshService creates a RefreshService. lookupDelay is the minimum
// spacing between external price lookups.
func NewRefreshService(
	assetRepo repository.AssetRepository,
	historyRepo repository.PriceHistoryRepository,
	portfolioService *PortfolioService,
	provider pricing.Provider,
	engine *ValuationEngine,
	lookupDelay time.Duration,
) *RefreshService {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if lookupDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(lookupDelay), 1)
	}

	return &RefreshService{
		assetRepo:        assetRepo,
		historyRepo:      historyRepo,
		portfolioService: portfolioService,
		provider:         provider,
		engine:           engine,
		limiter:          limiter,
	}
}

// RefreshPortfolioPrices refreshes every asset of one portfolio and
// aggregates the portfolio once at the end. The pass runs to completion even
// if the caller disconnects: there is no cancellation of an in-flight
// refresh, only at-least-once semantics.
func (s *RefreshService) RefreshPortfolioPrices(ctx context.Context, portfolioID string) (model.PriceRefreshResponse, error) {
	if _, err := s.portfolioService.GetPortfolio(portfolioID); err != nil {
		return model.PriceRefreshResponse{}, err
	}

	assets, err := s.assetRepo.ListByPortfolio(portfolioID)
	if err != nil {
		return model.PriceRefreshResponse{}, fmt.Errorf("failed to load assets for refresh: %w", err)
	}

	// Detach from the request context so a client disconnect does not
	// leave the portfolio half-refreshed.
	ctx = context.WithoutCancel(ctx)

	response := model.PriceRefreshResponse{
		PortfolioID:   portfolioID,
		UpdatedAssets: []model.RefreshedAsset{},
		Errors:        []model.RefreshAssetError{},
	}

	for _, asset := range assets {
		if err := s.limiter.Wait(ctx); err != nil {
			return model.PriceRefreshResponse{}, fmt.Errorf("failed to wait for lookup throttle: %w", err)
		}

		quote, err := s.provider.FetchPrice(ctx, asset.Symbol, asset.AssetType)
		if err != nil {
			// Soft failure: the asset keeps its prior valuation.
			response.Errors = append(response.Errors, model.RefreshAssetError{
				AssetID: asset.ID,
				Symbol:  asset.Symbol,
				Error:   err.Error(),
			})
			continue
		}

		s.engine.Revalue(asset, quote).Apply(&asset)

		if err := s.assetRepo.Update(ctx, &asset); err != nil {
			response.Errors = append(response.Errors, model.RefreshAssetError{
				AssetID: asset.ID,
				Symbol:  asset.Symbol,
				Error:   err.Error(),
			})
			continue
		}

		if err := s.recordQuote(ctx, asset.Symbol, quote); err != nil {
			// History is for charting only; a failed append must not fail
			// the valuation that already succeeded.
			log.Printf("failed to record price history for %s: %v", asset.Symbol, err)
		}

		response.UpdatedAssets = append(response.UpdatedAssets, model.RefreshedAsset{
			AssetID: asset.ID,
			Symbol:  asset.Symbol,
			Price:   money.FormatCurrency(quote.Price),
			Source:  quote.Source,
		})
	}

	response.TotalUpdated = len(response.UpdatedAssets)
	response.TotalErrors = len(response.Errors)
	response.Success = response.TotalUpdated > 0

	// Exactly one aggregation per pass, after all assets were visited.
	if err := s.portfolioService.OnAssetChanged(ctx, portfolioID); err != nil {
		return model.PriceRefreshResponse{}, err
	}

	return response, nil
}

// RefreshAllPortfolios runs the refresh pass over every portfolio. Used by
// the background scheduler; per-portfolio failures are logged and do not
// stop the sweep.
func (s *RefreshService) RefreshAllPortfolios(ctx context.Context) error {
	portfolios, err := s.portfolioService.GetAllPortfolios()
	if err != nil {
		return fmt.Errorf("failed to list portfolios for refresh: %w", err)
	}

	for _, portfolio := range portfolios {
		response, err := s.RefreshPortfolioPrices(ctx, portfolio.ID)
		if err != nil {
			log.Printf("scheduled refresh failed for portfolio %s: %v", portfolio.ID, err)
			continue
		}
		log.Printf("scheduled refresh for portfolio %s: %d updated, %d errors",
			portfolio.ID, response.TotalUpdated, response.TotalErrors)
	}

	return nil
}

// recordQuote appends one OHLCV record derived from a quote snapshot. With
// only the current price and the 24h movement available, open is derived as
// price minus change and volume is unknown.
func (s *RefreshService) recordQuote(ctx context.Context, symbol string, quote pricing.Quote) error {
	open := quote.Price.Sub(quote.Change24h)
	high := decimal.Max(open, quote.Price)
	low := decimal.Min(open, quote.Price)

	return s.historyRepo.Insert(ctx, model.PriceHistory{
		ID:        uuid.New().String(),
		Symbol:    symbol,
		Timestamp: time.Now().UTC(),
		Open:      open,
		High:      high,
		Low:       low,
		Close:     quote.Price,
		Volume:    decimal.Zero,
	})
}
