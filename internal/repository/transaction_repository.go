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

// TransactionRepository provides data access methods for the transaction table.
// Notes are sealed with the configured cipher before they are written and
// opened again when read.
type TransactionRepository struct {
	db     *sql.DB
	tx     *sql.Tx
	cipher *crypto.Cipher
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
// A nil cipher stores notes in plain text.
func NewTransactionRepository(db *sql.DB, cipher *crypto.Cipher) *TransactionRepository {
	return &TransactionRepository{db: db, cipher: cipher}
}

// WithTx returns a new TransactionRepository scoped to the provided transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db:     r.db,
		tx:     tx,
		cipher: r.cipher,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const transactionColumns = `
	id, type, transfer_type, quantity, total_spent, price_per_coin,
	market, fees, notes, date, created_at, updated_at
`

// GetTransactions retrieves every transaction ordered by date, oldest first.
func (r *TransactionRepository) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM "transaction" ORDER BY date ASC, created_at ASC`
	return r.queryTransactions(ctx, query)
}

// GetTransactionsPage retrieves one page of transactions, newest first.
func (r *TransactionRepository) GetTransactionsPage(ctx context.Context, limit, offset int) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM "transaction" ORDER BY date DESC, created_at DESC LIMIT ? OFFSET ?`
	return r.queryTransactions(ctx, query, limit, offset)
}

// CountTransactions returns the number of stored transactions.
func (r *TransactionRepository) CountTransactions(ctx context.Context) (int, error) {
	var count int
	if err := r.getQuerier().QueryRowContext(ctx, `SELECT COUNT(*) FROM "transaction"`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// GetTransaction retrieves a single transaction by its ID.
// Returns ErrTransactionNotFound if no record with the given ID exists.
func (r *TransactionRepository) GetTransaction(ctx context.Context, id string) (model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM "transaction" WHERE id = ?`

	t, err := r.scanTransaction(r.getQuerier().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// InsertTransaction stores a new transaction. ID and timestamps must be set by the caller.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t model.Transaction) error {
	notes, err := r.cipher.Seal(t.Notes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO "transaction" (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.Type,
		transferTypeValue(t.TransferType),
		t.Quantity,
		t.TotalSpent,
		t.PricePerCoin,
		t.Market,
		nullFloat(t.Fees),
		notes,
		formatTime(t.Date),
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// UpdateTransaction overwrites every mutable column of an existing transaction.
// Returns ErrTransactionNotFound if no record with the given ID exists.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, t model.Transaction) error {
	notes, err := r.cipher.Seal(t.Notes)
	if err != nil {
		return err
	}

	query := `
		UPDATE "transaction"
		SET type = ?, transfer_type = ?, quantity = ?, total_spent = ?, price_per_coin = ?,
			market = ?, fees = ?, notes = ?, date = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		t.Type,
		transferTypeValue(t.TransferType),
		t.Quantity,
		t.TotalSpent,
		t.PricePerCoin,
		t.Market,
		nullFloat(t.Fees),
		notes,
		formatTime(t.Date),
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	return checkRowsAffected(result, apperrors.ErrTransactionNotFound)
}

// DeleteTransaction removes a transaction by its ID.
// Returns ErrTransactionNotFound if no record with the given ID exists.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, id string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return checkRowsAffected(result, apperrors.ErrTransactionNotFound)
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := r.scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

func (r *TransactionRepository) scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var transferType, notes sql.NullString
	var fees sql.NullFloat64
	var dateStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&t.ID,
		&t.Type,
		&transferType,
		&t.Quantity,
		&t.TotalSpent,
		&t.PricePerCoin,
		&t.Market,
		&fees,
		&notes,
		&dateStr,
		&createdAtStr,
		&updatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	if transferType.Valid && transferType.String != "" {
		direction := model.TransferDirection(transferType.String)
		t.TransferType = &direction
	}
	t.Fees = floatPtr(fees)

	if t.Notes, err = r.cipher.Open(notes.String); err != nil {
		return model.Transaction{}, fmt.Errorf("%w: notes of transaction %s: %v", apperrors.ErrDataInconsistency, t.ID, err)
	}

	if t.Date, err = ParseTime(dateStr); err != nil {
		return model.Transaction{}, err
	}
	if t.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Transaction{}, err
	}
	if t.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

func transferTypeValue(direction *model.TransferDirection) sql.NullString {
	if direction == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*direction), Valid: true}
}
