package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mdevries/portfolio-tracker-backend/internal/apperrors"
	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/money"
)

// AssetRepository provides data access methods for the asset table.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `
	id, portfolio_id, symbol, name, asset_type,
	quantity, purchase_price, current_price,
	total_value, gain_loss, gain_loss_percent,
	daily_change, daily_change_percent,
	metadata, created_at, updated_at
`

// Insert stores a new asset row.
func (r *AssetRepository) Insert(ctx context.Context, a *model.Asset) error {
	metadata, err := encodeMetadata(a.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO asset (` + assetColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		a.ID,
		a.PortfolioID,
		a.Symbol,
		a.Name,
		string(a.AssetType),
		money.FormatQuantity(a.Quantity),
		money.FormatCurrency(a.PurchasePrice),
		money.FormatCurrency(a.CurrentPrice),
		money.FormatCurrency(a.TotalValue),
		money.FormatCurrency(a.GainLoss),
		money.FormatPercent(a.GainLossPercent),
		money.FormatCurrency(a.DailyChange),
		money.FormatPercent(a.DailyChangePercent),
		metadata,
		a.CreatedAt.UTC(),
		a.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}

	return nil
}

// Get retrieves an asset by ID.
func (r *AssetRepository) Get(id string) (model.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM asset WHERE id = ?`

	a, err := r.scanAsset(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to query asset: %w", err)
	}

	return a, nil
}

// ListByPortfolio retrieves all assets belonging to a portfolio, ordered by
// creation time. Returns an empty slice when the portfolio has no assets.
func (r *AssetRepository) ListByPortfolio(portfolioID string) ([]model.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM asset WHERE portfolio_id = ? ORDER BY created_at`

	rows, err := r.db.Query(query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}

	for rows.Next() {
		a, err := r.scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset table results: %w", err)
		}
		assets = append(assets, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

// Update persists the full asset row, valuation fields included.
func (r *AssetRepository) Update(ctx context.Context, a *model.Asset) error {
	metadata, err := encodeMetadata(a.Metadata)
	if err != nil {
		return err
	}

	query := `
		UPDATE asset
		SET symbol = ?,
			name = ?,
			asset_type = ?,
			quantity = ?,
			purchase_price = ?,
			current_price = ?,
			total_value = ?,
			gain_loss = ?,
			gain_loss_percent = ?,
			daily_change = ?,
			daily_change_percent = ?,
			metadata = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		a.Symbol,
		a.Name,
		string(a.AssetType),
		money.FormatQuantity(a.Quantity),
		money.FormatCurrency(a.PurchasePrice),
		money.FormatCurrency(a.CurrentPrice),
		money.FormatCurrency(a.TotalValue),
		money.FormatCurrency(a.GainLoss),
		money.FormatPercent(a.GainLossPercent),
		money.FormatCurrency(a.DailyChange),
		money.FormatPercent(a.DailyChangePercent),
		metadata,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	return requireOneRow(result, apperrors.ErrAssetNotFound)
}

// Delete removes an asset. Price history for the symbol is kept.
func (r *AssetRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM asset WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	return requireOneRow(result, apperrors.ErrAssetNotFound)
}

func (r *AssetRepository) scanAsset(row rowScanner) (model.Asset, error) {
	var a model.Asset
	var assetType, metadata string
	var quantity, purchasePrice, currentPrice string
	var totalValue, gainLoss, gainLossPercent, dailyChange, dailyChangePercent string

	err := row.Scan(
		&a.ID,
		&a.PortfolioID,
		&a.Symbol,
		&a.Name,
		&assetType,
		&quantity,
		&purchasePrice,
		&currentPrice,
		&totalValue,
		&gainLoss,
		&gainLossPercent,
		&dailyChange,
		&dailyChangePercent,
		&metadata,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return model.Asset{}, err
	}

	a.AssetType = model.AssetType(assetType)

	if a.Metadata, err = decodeMetadata(metadata); err != nil {
		return model.Asset{}, err
	}
	if a.Quantity, err = parseDecimal(quantity, "quantity"); err != nil {
		return model.Asset{}, err
	}
	if a.PurchasePrice, err = parseDecimal(purchasePrice, "purchase_price"); err != nil {
		return model.Asset{}, err
	}
	if a.CurrentPrice, err = parseDecimal(currentPrice, "current_price"); err != nil {
		return model.Asset{}, err
	}
	if a.TotalValue, err = parseDecimal(totalValue, "total_value"); err != nil {
		return model.Asset{}, err
	}
	if a.GainLoss, err = parseDecimal(gainLoss, "gain_loss"); err != nil {
		return model.Asset{}, err
	}
	if a.GainLossPercent, err = parseDecimal(gainLossPercent, "gain_loss_percent"); err != nil {
		return model.Asset{}, err
	}
	if a.DailyChange, err = parseDecimal(dailyChange, "daily_change"); err != nil {
		return model.Asset{}, err
	}
	if a.DailyChangePercent, err = parseDecimal(dailyChangePercent, "daily_change_percent"); err != nil {
		return model.Asset{}, err
	}

	return a, nil
}
