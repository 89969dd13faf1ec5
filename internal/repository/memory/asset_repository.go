package memory

import (
	"context"
	"time"

	"github.com/mdevries/portfolio-tracker-backend/internal/apperrors"
	"github.com/mdevries/portfolio-tracker-backend/internal/model"
)

// AssetRepository is the in-memory implementation of
// repository.AssetRepository.
type AssetRepository struct {
	store *Store
}

// NewAssetRepository creates an asset repository backed by the store.
func NewAssetRepository(store *Store) *AssetRepository {
	return &AssetRepository{store: store}
}

// Insert stores a new asset.
func (r *AssetRepository) Insert(_ context.Context, a *model.Asset) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.assets[a.ID] = copyAsset(*a)
	return nil
}

// Get retrieves an asset by ID.
func (r *AssetRepository) Get(id string) (model.Asset, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.assets[id]
	if !ok {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	return copyAsset(a), nil
}

// ListByPortfolio retrieves all assets belonging to a portfolio, ordered by
// creation time.
func (r *AssetRepository) ListByPortfolio(portfolioID string) ([]model.Asset, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	assets := r.store.assetsOfPortfolio(portfolioID)
	for i := range assets {
		assets[i] = copyAsset(assets[i])
	}
	return assets, nil
}

// Update persists the full asset, valuation fields included.
func (r *AssetRepository) Update(_ context.Context, a *model.Asset) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.assets[a.ID]
	if !ok {
		return apperrors.ErrAssetNotFound
	}

	updated := copyAsset(*a)
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.store.assets[a.ID] = updated
	return nil
}

// Delete removes an asset. Price history for the symbol is kept.
func (r *AssetRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.assets[id]; !ok {
		return apperrors.ErrAssetNotFound
	}
	delete(r.store.assets, id)
	return nil
}
