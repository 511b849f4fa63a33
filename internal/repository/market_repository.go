package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/apperrors"
)

// MarketRepository persists the last good value of each market symbol so the
// API can keep answering while the live feed is down.
type MarketRepository struct {
	db *sql.DB
}

// NewMarketRepository creates a new MarketRepository with the provided database connection.
func NewMarketRepository(db *sql.DB) *MarketRepository {
	return &MarketRepository{db: db}
}

// GetSnapshot returns the persisted value for symbol.
// Returns ErrSnapshotNotFound if the symbol was never stored.
func (r *MarketRepository) GetSnapshot(ctx context.Context, symbol string) (float64, time.Time, error) {
	var value float64
	var asOfStr string

	err := r.db.QueryRowContext(ctx, `SELECT value, as_of FROM market_snapshot WHERE symbol = ?`, symbol).Scan(&value, &asOfStr)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, time.Time{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to query market_snapshot: %w", err)
	}

	asOf, err := ParseTime(asOfStr)
	if err != nil {
		return 0, time.Time{}, err
	}

	return value, asOf, nil
}

// SaveSnapshot upserts the latest value for symbol.
func (r *MarketRepository) SaveSnapshot(ctx context.Context, symbol string, value float64, asOf time.Time) error {
	query := `
		INSERT INTO market_snapshot (symbol, value, as_of)
		VALUES (?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			value = excluded.value,
			as_of = excluded.as_of
	`

	if _, err := r.db.ExecContext(ctx, query, symbol, value, formatTime(asOf)); err != nil {
		return fmt.Errorf("failed to save market_snapshot: %w", err)
	}

	return nil
}
