package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/crypto"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
)

// FutureRepository provides data access methods for the future table.
type FutureRepository struct {
	db     *sql.DB
	cipher *crypto.Cipher
}

// NewFutureRepository creates a new FutureRepository with the provided database connection.
func NewFutureRepository(db *sql.DB, cipher *crypto.Cipher) *FutureRepository {
	return &FutureRepository{db: db, cipher: cipher}
}

const futureColumns = `
	id, direction, entry_price, exit_price, target_price, quantity_usd, status,
	buy_date, close_date, percent_gain, percent_fee, fees_paid, net_pl_sats,
	notes, created_at, updated_at
`

// GetFutures retrieves every position, most recently opened first.
func (r *FutureRepository) GetFutures(ctx context.Context) ([]model.Future, error) {
	query := `SELECT ` + futureColumns + ` FROM future ORDER BY buy_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query future table: %w", err)
	}
	defer rows.Close()

	futures := []model.Future{}
	for rows.Next() {
		f, err := r.scanFuture(rows)
		if err != nil {
			return nil, err
		}
		futures = append(futures, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating future table: %w", err)
	}

	return futures, nil
}

// GetFuture retrieves a single position by its ID.
// Returns ErrFutureNotFound if no record with the given ID exists.
func (r *FutureRepository) GetFuture(ctx context.Context, id string) (model.Future, error) {
	query := `SELECT ` + futureColumns + ` FROM future WHERE id = ?`

	f, err := r.scanFuture(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Future{}, apperrors.ErrFutureNotFound
	}
	if err != nil {
		return model.Future{}, err
	}
	return f, nil
}

// InsertFuture stores a new position. ID and timestamps must be set by the caller.
func (r *FutureRepository) InsertFuture(ctx context.Context, f model.Future) error {
	notes, err := r.cipher.Seal(f.Notes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO future (` + futureColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		f.ID,
		f.Direction,
		f.EntryPrice,
		nullFloat(f.ExitPrice),
		nullFloat(f.TargetPrice),
		f.QuantityUSD,
		f.Status,
		formatTime(f.BuyDate),
		nullTime(f.CloseDate),
		nullFloat(f.PercentGain),
		nullFloat(f.PercentFee),
		nullFloat(f.FeesPaid),
		nullFloat(f.NetPlSats),
		notes,
		formatTime(f.CreatedAt),
		formatTime(f.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert future: %w", err)
	}

	return nil
}

// UpdateFuture overwrites every mutable column of an existing position.
// Returns ErrFutureNotFound if no record with the given ID exists.
func (r *FutureRepository) UpdateFuture(ctx context.Context, f model.Future) error {
	notes, err := r.cipher.Seal(f.Notes)
	if err != nil {
		return err
	}

	query := `
		UPDATE future
		SET direction = ?, entry_price = ?, exit_price = ?, target_price = ?, quantity_usd = ?,
			status = ?, buy_date = ?, close_date = ?, percent_gain = ?, percent_fee = ?,
			fees_paid = ?, net_pl_sats = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		f.Direction,
		f.EntryPrice,
		nullFloat(f.ExitPrice),
		nullFloat(f.TargetPrice),
		f.QuantityUSD,
		f.Status,
		formatTime(f.BuyDate),
		nullTime(f.CloseDate),
		nullFloat(f.PercentGain),
		nullFloat(f.PercentFee),
		nullFloat(f.FeesPaid),
		nullFloat(f.NetPlSats),
		notes,
		formatTime(f.UpdatedAt),
		f.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update future: %w", err)
	}

	return checkRowsAffected(result, apperrors.ErrFutureNotFound)
}

// DeleteFuture removes a position by its ID.
// Returns ErrFutureNotFound if no record with the given ID exists.
func (r *FutureRepository) DeleteFuture(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM future WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete future: %w", err)
	}

	return checkRowsAffected(result, apperrors.ErrFutureNotFound)
}

func (r *FutureRepository) scanFuture(row rowScanner) (model.Future, error) {
	var f model.Future
	var exitPrice, targetPrice, percentGain, percentFee, feesPaid, netPlSats sql.NullFloat64
	var closeDate, notes sql.NullString
	var buyDateStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&f.ID,
		&f.Direction,
		&f.EntryPrice,
		&exitPrice,
		&targetPrice,
		&f.QuantityUSD,
		&f.Status,
		&buyDateStr,
		&closeDate,
		&percentGain,
		&percentFee,
		&feesPaid,
		&netPlSats,
		&notes,
		&createdAtStr,
		&updatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Future{}, err
	}
	if err != nil {
		return model.Future{}, fmt.Errorf("failed to scan future table results: %w", err)
	}

	f.ExitPrice = floatPtr(exitPrice)
	f.TargetPrice = floatPtr(targetPrice)
	f.PercentGain = floatPtr(percentGain)
	f.PercentFee = floatPtr(percentFee)
	f.FeesPaid = floatPtr(feesPaid)
	f.NetPlSats = floatPtr(netPlSats)

	if f.Notes, err = r.cipher.Open(notes.String); err != nil {
		return model.Future{}, fmt.Errorf("%w: notes of future %s: %v", apperrors.ErrDataInconsistency, f.ID, err)
	}

	if f.BuyDate, err = ParseTime(buyDateStr); err != nil {
		return model.Future{}, err
	}
	if f.CloseDate, err = parseNullTime(closeDate); err != nil {
		return model.Future{}, err
	}
	if f.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Future{}, err
	}
	if f.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return model.Future{}, err
	}

	return f, nil
}
