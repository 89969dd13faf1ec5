package memory

import (
	"context"
	"sort"
	"time"

	"github.com/mdevries/portfolio-tracker-backend/internal/apperrors"
	"github.com/mdevries/portfolio-tracker-backend/internal/model"
)

// PortfolioRepository is the in-memory implementation of
// repository.PortfolioRepository.
type PortfolioRepository struct {
	store *Store
}

// NewPortfolioRepository creates a portfolio repository backed by the store.
func NewPortfolioRepository(store *Store) *PortfolioRepository {
	return &PortfolioRepository{store: store}
}

// Insert stores a new portfolio.
func (r *PortfolioRepository) Insert(_ context.Context, p *model.Portfolio) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.portfolios[p.ID] = *p
	return nil
}

// Get retrieves a portfolio by ID.
func (r *PortfolioRepository) Get(id string) (model.Portfolio, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.portfolios[id]
	if !ok {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	return p, nil
}

// List retrieves all portfolios ordered by creation time.
func (r *PortfolioRepository) List() ([]model.Portfolio, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	portfolios := []model.Portfolio{}
	for _, p := range r.store.portfolios {
		portfolios = append(portfolios, p)
	}
	sort.Slice(portfolios, func(i, j int) bool {
		if portfolios[i].CreatedAt.Equal(portfolios[j].CreatedAt) {
			return portfolios[i].ID < portfolios[j].ID
		}
		return portfolios[i].CreatedAt.Before(portfolios[j].CreatedAt)
	})
	return portfolios, nil
}

// FirstByOwner retrieves the oldest portfolio owned by ownerID.
func (r *PortfolioRepository) FirstByOwner(ownerID string) (model.Portfolio, error) {
	portfolios, err := r.List()
	if err != nil {
		return model.Portfolio{}, err
	}
	for _, p := range portfolios {
		if p.OwnerID == ownerID {
			return p, nil
		}
	}
	return model.Portfolio{}, apperrors.ErrPortfolioNotFound
}

// UpdateMeta updates the portfolio's name and description.
func (r *PortfolioRepository) UpdateMeta(_ context.Context, id, name, description string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.portfolios[id]
	if !ok {
		return apperrors.ErrPortfolioNotFound
	}
	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now().UTC()
	r.store.portfolios[id] = p
	return nil
}

// UpdateTotals persists one complete aggregation result for the portfolio.
func (r *PortfolioRepository) UpdateTotals(_ context.Context, id string, totals model.PortfolioTotals) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.portfolios[id]
	if !ok {
		return apperrors.ErrPortfolioNotFound
	}
	p.TotalValue = totals.TotalValue
	p.TotalGainLoss = totals.TotalGainLoss
	p.TotalGainLossPercent = totals.TotalGainLossPercent
	p.DailyChange = totals.DailyChange
	p.DailyChangePercent = totals.DailyChangePercent
	p.UpdatedAt = time.Now().UTC()
	r.store.portfolios[id] = p
	return nil
}

// Delete removes the portfolio and cascades to its assets, mirroring the
// sqlite backend's foreign-key cascade.
func (r *PortfolioRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.portfolios[id]; !ok {
		return apperrors.ErrPortfolioNotFound
	}
	delete(r.store.portfolios, id)

	for assetID, a := range r.store.assets {
		if a.PortfolioID == id {
			delete(r.store.assets, assetID)
		}
	}
	return nil
}
