package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mdevries/portfolio-tracker-backend/internal/apperrors"
	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/money"
)

// PortfolioRepository provides data access methods for the portfolio table.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

const portfolioColumns = `
	id, name, description, owner_id,
	total_value, total_gain_loss, total_gain_loss_percent,
	daily_change, daily_change_percent,
	created_at, updated_at
`

// Insert stores a new portfolio row.
func (r *PortfolioRepository) Insert(ctx context.Context, p *model.Portfolio) error {
	query := `
		INSERT INTO portfolio (` + portfolioColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.OwnerID,
		money.FormatCurrency(p.TotalValue),
		money.FormatCurrency(p.TotalGainLoss),
		money.FormatPercent(p.TotalGainLossPercent),
		money.FormatCurrency(p.DailyChange),
		money.FormatPercent(p.DailyChangePercent),
		p.CreatedAt.UTC(),
		p.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}

	return nil
}

// Get retrieves a portfolio by ID.
func (r *PortfolioRepository) Get(id string) (model.Portfolio, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio WHERE id = ?`

	p, err := r.scanPortfolio(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}

	return p, nil
}

// List retrieves all portfolios ordered by creation time.
func (r *PortfolioRepository) List() ([]model.Portfolio, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio ORDER BY created_at`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}

	for rows.Next() {
		p, err := r.scanPortfolio(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}
		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}

// FirstByOwner retrieves the oldest portfolio owned by ownerID.
func (r *PortfolioRepository) FirstByOwner(ownerID string) (model.Portfolio, error) {
	query := `
		SELECT ` + portfolioColumns + `
		FROM portfolio
		WHERE owner_id = ?
		ORDER BY created_at
		LIMIT 1
	`

	p, err := r.scanPortfolio(r.db.QueryRow(query, ownerID))
	if err == sql.ErrNoRows {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio by owner: %w", err)
	}

	return p, nil
}

// UpdateMeta updates the portfolio's name and description.
func (r *PortfolioRepository) UpdateMeta(ctx context.Context, id, name, description string) error {
	query := `
		UPDATE portfolio
		SET name = ?, description = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, name, description, id)
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}

	return requireOneRow(result, apperrors.ErrPortfolioNotFound)
}

// UpdateTotals persists one complete aggregation result for the portfolio.
func (r *PortfolioRepository) UpdateTotals(ctx context.Context, id string, totals model.PortfolioTotals) error {
	query := `
		UPDATE portfolio
		SET total_value = ?,
			total_gain_loss = ?,
			total_gain_loss_percent = ?,
			daily_change = ?,
			daily_change_percent = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		money.FormatCurrency(totals.TotalValue),
		money.FormatCurrency(totals.TotalGainLoss),
		money.FormatPercent(totals.TotalGainLossPercent),
		money.FormatCurrency(totals.DailyChange),
		money.FormatPercent(totals.DailyChangePercent),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update portfolio totals: %w", err)
	}

	return requireOneRow(result, apperrors.ErrPortfolioNotFound)
}

// Delete removes a portfolio. The asset foreign key cascades the delete to
// all contained assets.
func (r *PortfolioRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM portfolio WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}

	return requireOneRow(result, apperrors.ErrPortfolioNotFound)
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PortfolioRepository) scanPortfolio(row rowScanner) (model.Portfolio, error) {
	var p model.Portfolio
	var totalValue, totalGainLoss, totalGainLossPercent, dailyChange, dailyChangePercent string

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.OwnerID,
		&totalValue,
		&totalGainLoss,
		&totalGainLossPercent,
		&dailyChange,
		&dailyChangePercent,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return model.Portfolio{}, err
	}

	if p.TotalValue, err = parseDecimal(totalValue, "total_value"); err != nil {
		return model.Portfolio{}, err
	}
	if p.TotalGainLoss, err = parseDecimal(totalGainLoss, "total_gain_loss"); err != nil {
		return model.Portfolio{}, err
	}
	if p.TotalGainLossPercent, err = parseDecimal(totalGainLossPercent, "total_gain_loss_percent"); err != nil {
		return model.Portfolio{}, err
	}
	if p.DailyChange, err = parseDecimal(dailyChange, "daily_change"); err != nil {
		return model.Portfolio{}, err
	}
	if p.DailyChangePercent, err = parseDecimal(dailyChangePercent, "daily_change_percent"); err != nil {
		return model.Portfolio{}, err
	}

	return p, nil
}

// requireOneRow converts a zero-row UPDATE/DELETE into the not-found sentinel.
func requireOneRow(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
