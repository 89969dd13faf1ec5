package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mdevries/portfolio-tracker-backend/internal/api/request"
	"github.com/mdevries/portfolio-tracker-backend/internal/apperrors"
	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/repository"
)

// PortfolioService handles portfolio-related business logic. It owns the
// aggregation hook: every asset mutation path calls OnAssetChanged so the
// portfolio totals are re-derived before the request completes.
type PortfolioService struct {
	portfolioRepo repository.PortfolioRepository
	assetRepo     repository.AssetRepository
}

// NewPortfolioService creates a new PortfolioService with the provided repositories.
func NewPortfolioService(
	portfolioRepo repository.PortfolioRepository,
	assetRepo repository.AssetRepository,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		assetRepo:     assetRepo,
	}
}

// GetAllPortfolios retrieves all portfolios.
func (s *PortfolioService) GetAllPortfolios() ([]model.Portfolio, error) {
	return s.portfolioRepo.List()
}

// GetPortfolio retrieves a single portfolio by ID.
func (s *PortfolioService) GetPortfolio(id string) (model.Portfolio, error) {
	return s.portfolioRepo.Get(id)
}

// GetPortfolioAssets retrieves all assets belonging to a portfolio.
func (s *PortfolioService) GetPortfolioAssets(portfolioID string) ([]model.Asset, error) {
	if _, err := s.portfolioRepo.Get(portfolioID); err != nil {
		return nil, err
	}
	return s.assetRepo.ListByPortfolio(portfolioID)
}

// CreatePortfolio creates a new portfolio with zeroed totals.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, req request.CreatePortfolioRequest) (*model.Portfolio, error) {
	now := time.Now().UTC()
	portfolio := &model.Portfolio{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     model.GuestOwner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.portfolioRepo.Insert(ctx, portfolio); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	return portfolio, nil
}

// EnsureDefaultPortfolio returns the guest portfolio, creating it on first
// visit if none exists yet.
func (s *PortfolioService) EnsureDefaultPortfolio(ctx context.Context) (model.Portfolio, error) {
	portfolio, err := s.portfolioRepo.FirstByOwner(model.GuestOwner)
	if err == nil {
		return portfolio, nil
	}
	if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
		return model.Portfolio{}, err
	}

	created, err := s.CreatePortfolio(ctx, request.CreatePortfolioRequest{
		Name:        "My Portfolio",
		Description: "Auto-provisioned portfolio",
	})
	if err != nil {
		return model.Portfolio{}, err
	}
	return *created, nil
}

// UpdatePortfolio updates a portfolio's name and/or description.
// Only provided fields are changed.
func (s *PortfolioService) UpdatePortfolio(ctx context.Context, id string, req request.UpdatePortfolioRequest) (*model.Portfolio, error) {
	portfolio, err := s.portfolioRepo.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		portfolio.Name = *req.Name
	}
	if req.Description != nil {
		portfolio.Description = *req.Description
	}

	if err := s.portfolioRepo.UpdateMeta(ctx, id, portfolio.Name, portfolio.Description); err != nil {
		return nil, fmt.Errorf("failed to update portfolio: %w", err)
	}

	updated, err := s.portfolioRepo.Get(id)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePortfolio removes a portfolio. Contained assets are deleted with it;
// price history for their symbols is kept for charting.
func (s *PortfolioService) DeletePortfolio(ctx context.Context, id string) error {
	return s.portfolioRepo.Delete(ctx, id)
}

// OnAssetChanged re-aggregates a portfolio's totals after any asset
// mutation. All mutation paths call this hook; skipping it would leave the
// persisted totals stale past the request boundary, which is a correctness
// bug, not an optimization.
//
// A missing portfolio is a no-op: the hook also runs after portfolio
// deletion cascades.
func (s *PortfolioService) OnAssetChanged(ctx context.Context, portfolioID string) error {
	assets, err := s.assetRepo.ListByPortfolio(portfolioID)
	if err != nil {
		return fmt.Errorf("failed to load assets for aggregation: %w", err)
	}

	totals := Aggregate(assets)

	err = s.portfolioRepo.UpdateTotals(ctx, portfolioID, totals)
	if errors.Is(err, apperrors.ErrPortfolioNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to persist portfolio totals: %w", err)
	}
	return nil
}
