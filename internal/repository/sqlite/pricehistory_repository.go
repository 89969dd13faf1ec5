package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mdevries/portfolio-tracker-backend/internal/model"
	"github.com/mdevries/portfolio-tracker-backend/internal/money"
)

// PriceHistoryRepository provides data access methods for the price_history
// table. Rows are append-only.
type PriceHistoryRepository struct {
	db *sql.DB
}

// NewPriceHistoryRepository creates a new PriceHistoryRepository with the provided database connection.
func NewPriceHistoryRepository(db *sql.DB) *PriceHistoryRepository {
	return &PriceHistoryRepository{db: db}
}

// Insert appends one OHLCV record.
func (r *PriceHistoryRepository) Insert(ctx context.Context, record model.PriceHistory) error {
	query := `
		INSERT INTO price_history (id, symbol, timestamp, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.Symbol,
		record.Timestamp.UTC(),
		money.FormatCurrency(record.Open),
		money.FormatCurrency(record.High),
		money.FormatCurrency(record.Low),
		money.FormatCurrency(record.Close),
		record.Volume.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert price history: %w", err)
	}

	return nil
}

// ListBySymbol retrieves records for a symbol in ascending timestamp order.
// Zero start/end times leave that side of the range unbounded.
func (r *PriceHistoryRepository) ListBySymbol(symbol string, start, end time.Time) ([]model.PriceHistory, error) {
	query := `
		SELECT id, symbol, timestamp, open, high, low, close, volume
		FROM price_history
		WHERE symbol = ?
	`
	args := []any{symbol}

	if !start.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, start.UTC())
	}
	if !end.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, end.UTC())
	}
	query += " ORDER BY timestamp"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query price_history table: %w", err)
	}
	defer rows.Close()

	records := []model.PriceHistory{}

	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price_history table results: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price_history table: %w", err)
	}

	return records, nil
}

// LatestBySymbols retrieves the most recent close per symbol. Symbols with no
// recorded history are skipped, so the result may cover a subset of the input.
func (r *PriceHistoryRepository) LatestBySymbols(symbols []string) ([]model.LatestPrice, error) {
	if len(symbols) == 0 {
		return []model.LatestPrice{}, nil
	}

	placeholders := make([]string, len(symbols))
	args := make([]any, len(symbols))
	for i, symbol := range symbols {
		placeholders[i] = "?"
		args[i] = symbol
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT ph.symbol, ph.close, ph.timestamp
		FROM price_history ph
		JOIN (
			SELECT symbol, MAX(timestamp) AS max_ts
			FROM price_history
			WHERE symbol IN (` + strings.Join(placeholders, ",") + `)
			GROUP BY symbol
		) latest ON latest.symbol = ph.symbol AND latest.max_ts = ph.timestamp
	`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest prices: %w", err)
	}
	defer rows.Close()

	prices := []model.LatestPrice{}

	for rows.Next() {
		var lp model.LatestPrice
		var closePrice string

		if err := rows.Scan(&lp.Symbol, &closePrice, &lp.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan latest price results: %w", err)
		}
		if lp.Price, err = parseDecimal(closePrice, "close"); err != nil {
			return nil, err
		}

		prices = append(prices, lp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating latest price results: %w", err)
	}

	return prices, nil
}

func (r *PriceHistoryRepository) scanRecord(row rowScanner) (model.PriceHistory, error) {
	var record model.PriceHistory
	var open, high, low, closePrice, volume string

	err := row.Scan(
		&record.ID,
		&record.Symbol,
		&record.Timestamp,
		&open,
		&high,
		&low,
		&closePrice,
		&volume,
	)
	if err != nil {
		return model.PriceHistory{}, err
	}

	if record.Open, err = parseDecimal(open, "open"); err != nil {
		return model.PriceHistory{}, err
	}
	if record.High, err = parseDecimal(high, "high"); err != nil {
		return model.PriceHistory{}, err
	}
	if record.Low, err = parseDecimal(low, "low"); err != nil {
		return model.PriceHistory{}, err
	}
	if record.Close, err = parseDecimal(closePrice, "close"); err != nil {
		return model.PriceHistory{}, err
	}
	if record.Volume, err = parseDecimal(volume, "volume"); err != nil {
		return model.PriceHistory{}, err
	}

	return record, nil
}
