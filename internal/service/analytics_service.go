package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/money"
	"github.com/mdevries/portfolio-tracker-backend/internal/repository"
)

// AnalyticsService builds the analytics read model: current aggregates plus
// the best/worst daily performer and the allocation breakdown by asset type.
type AnalyticsService struct {
	portfolioRepo repository.PortfolioRepository
	assetRepo     repository.AssetRepository
}

// NewAnalyticsService creates a new AnalyticsService with the provided repositories.
func NewAnalyticsService(
	portfolioRepo repository.PortfolioRepository,
	assetRepo repository.AssetRepository,
) *AnalyticsService {
	return &AnalyticsService{
		portfolioRepo: portfolioRepo,
		assetRepo:     assetRepo,
	}
}

// GetPortfolioAnalytics computes the analytics read model for one portfolio.
// It reads the persisted aggregates rather than recomputing them; the
// mutation paths keep those current through the aggregation hook.
func (s *AnalyticsService) GetPortfolioAnalytics(portfolioID string) (model.PortfolioAnalytics, error) {
	portfolio, err := s.portfolioRepo.Get(portfolioID)
	if err != nil {
		return model.PortfolioAnalytics{}, err
	}

	assets, err := s.assetRepo.ListByPortfolio(portfolioID)
	if err != nil {
		return model.PortfolioAnalytics{}, err
	}

	analytics := model.PortfolioAnalytics{
		PortfolioID:          portfolio.ID,
		TotalValue:           portfolio.TotalValue,
		TotalGainLoss:        portfolio.TotalGainLoss,
		TotalGainLossPercent: portfolio.TotalGainLossPercent,
		DailyChange:          portfolio.DailyChange,
		DailyChangePercent:   portfolio.DailyChangePercent,
		AssetCount:           len(assets),
		Allocation:           allocationByType(assets, portfolio.TotalValue),
	}

	analytics.BestPerformer, analytics.WorstPerformer = dailyPerformers(assets)

	return analytics, nil
}

// dailyPerformers picks the assets with the highest and lowest daily change
// percentage. Both are nil for an empty portfolio.
func dailyPerformers(assets []model.Asset) (best, worst *model.AssetPerformance) {
	for i := range assets {
		a := assets[i]
		if best == nil || a.DailyChangePercent.GreaterThan(best.DailyChangePercent) {
			best = performanceOf(a)
		}
		if worst == nil || a.DailyChangePercent.LessThan(worst.DailyChangePercent) {
			worst = performanceOf(a)
		}
	}
	return best, worst
}

func performanceOf(a model.Asset) *model.AssetPerformance {
	return &model.AssetPerformance{
		AssetID:            a.ID,
		Symbol:             a.Symbol,
		Name:               a.Name,
		DailyChange:        a.DailyChange,
		DailyChangePercent: a.DailyChangePercent,
	}
}

// allocationByType groups assets by type with each group's value, share of
// the portfolio total and asset count, ordered by descending value.
func allocationByType(assets []model.Asset, totalValue decimal.Decimal) []model.TypeAllocation {
	grouped := make(map[model.AssetType]*model.TypeAllocation)

	for _, a := range assets {
		entry, ok := grouped[a.AssetType]
		if !ok {
			entry = &model.TypeAllocation{AssetType: a.AssetType, Value: decimal.Zero}
			grouped[a.AssetType] = entry
		}
		entry.Value = entry.Value.Add(a.TotalValue)
		entry.Count++
	}

	allocation := make([]model.TypeAllocation, 0, len(grouped))
	for _, entry := range grouped {
		entry.Value = money.Currency(entry.Value)
		if totalValue.IsPositive() {
			entry.Percentage = money.Percent(
				entry.Value.Div(totalValue).Mul(decimal.NewFromInt(100)),
			)
		} else {
			entry.Percentage = decimal.Zero
		}
		allocation = append(allocation, *entry)
	}

	sort.Slice(allocation, func(i, j int) bool {
		if allocation[i].Value.Equal(allocation[j].Value) {
			return allocation[i].AssetType < allocation[j].AssetType
		}
		return allocation[i].Value.GreaterThan(allocation[j].Value)
	})

	return allocation
}
