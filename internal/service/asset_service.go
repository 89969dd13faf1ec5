package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mdevries/portfolio-tracker-backend/internal/api/request"
	"github.com/mdevries/portfolio-tracker-backend/internal/apperrors"
	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/money"
	"github.com/mdevries/portfolio-tracker-backend/internal/pricing"
	"github.com/mdevries/portfolio-tracker-backend/internal/repository"
)

// AssetService handles asset CRUD. Every mutation revalues the asset where
// needed and then re-aggregates the owning portfolio through the
// OnAssetChanged hook.
type AssetService struct {
	assetRepo        repository.AssetRepository
	portfolioService *PortfolioService
	provider         pricing.Provider
	engine           *ValuationEngine
}

// NewAssetService creates a new AssetService with the provided dependencies.
func NewAssetService(
	assetRepo repository.AssetRepository,
	portfolioService *PortfolioService,
	provider pricing.Provider,
	engine *ValuationEngine,
) *AssetService {
	return &AssetService{
		assetRepo:        assetRepo,
		portfolioService: portfolioService,
		provider:         provider,
		engine:           engine,
	}
}

// GetAsset retrieves a single asset by ID.
func (s *AssetService) GetAsset(id string) (model.Asset, error) {
	return s.assetRepo.Get(id)
}

// CreateAsset creates an asset, runs its initial valuation and re-aggregates
// the owning portfolio. If no price source produces a quote the asset starts
// valued at its purchase price with zero daily movement.
func (s *AssetService) CreateAsset(ctx context.Context, req request.CreateAssetRequest) (*model.Asset, error) {
	if _, err := s.portfolioService.GetPortfolio(req.PortfolioID); err != nil {
		return nil, err
	}

	quantity, err := money.ParseQuantity(req.Quantity)
	if err != nil {
		return nil, err
	}
	purchasePrice, err := money.ParseCurrency(req.PurchasePrice)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	asset := &model.Asset{
		ID:            uuid.New().String(),
		PortfolioID:   req.PortfolioID,
		Symbol:        strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Name:          req.Name,
		AssetType:     model.AssetType(req.AssetType),
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		Metadata:      req.Metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	quote, err := s.provider.FetchPrice(ctx, asset.Symbol, asset.AssetType)
	if errors.Is(err, apperrors.ErrPriceUnavailable) {
		// No source produced a price; start from the cost basis.
		quote = pricing.Quote{
			Price:            purchasePrice,
			Change24h:        decimal.Zero,
			ChangePercent24h: decimal.Zero,
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to fetch initial price: %w", err)
	}

	s.engine.Revalue(*asset, quote).Apply(asset)

	if err := s.assetRepo.Insert(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	if err := s.portfolioService.OnAssetChanged(ctx, asset.PortfolioID); err != nil {
		return nil, err
	}

	return asset, nil
}

// UpdateAsset updates an asset's mutable fields, revalues it against its
// current price and re-aggregates the owning portfolio. Symbol and asset
// type are immutable after creation.
func (s *AssetService) UpdateAsset(ctx context.Context, id string, req request.UpdateAssetRequest) (*model.Asset, error) {
	asset, err := s.assetRepo.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Quantity != nil {
		quantity, err := money.ParseQuantity(*req.Quantity)
		if err != nil {
			return nil, err
		}
		asset.Quantity = quantity
	}
	if req.PurchasePrice != nil {
		purchasePrice, err := money.ParseCurrency(*req.PurchasePrice)
		if err != nil {
			return nil, err
		}
		asset.PurchasePrice = purchasePrice
	}
	if req.Metadata != nil {
		asset.Metadata = req.Metadata
	}

	// Re-derive against the already-known price; the bulk refresh pass is
	// the only path that consults the provider for existing assets.
	s.engine.Revalue(asset, pricing.Quote{
		Price:            asset.CurrentPrice,
		Change24h:        asset.DailyChange,
		ChangePercent24h: asset.DailyChangePercent,
	}).Apply(&asset)

	if err := s.assetRepo.Update(ctx, &asset); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}

	if err := s.portfolioService.OnAssetChanged(ctx, asset.PortfolioID); err != nil {
		return nil, err
	}

	return &asset, nil
}

// DeleteAsset removes an asset and re-aggregates the owning portfolio.
// Price history for the symbol is kept for charting.
func (s *AssetService) DeleteAsset(ctx context.Context, id string) error {
	asset, err := s.assetRepo.Get(id)
	if err != nil {
		return err
	}

	if err := s.assetRepo.Delete(ctx, id); err != nil {
		return err
	}

	return s.portfolioService.OnAssetChanged(ctx, asset.PortfolioID)
}
