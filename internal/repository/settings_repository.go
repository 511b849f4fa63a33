package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
)

// settingsRowID is the primary key of the single user_setting row.
const settingsRowID = 1

// SettingsRepository provides data access methods for the user_setting table.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository with the provided database connection.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSettings returns the stored settings. The second value is false when the
// user never saved any.
func (r *SettingsRepository) GetSettings(ctx context.Context) (model.Settings, bool, error) {
	query := `
		SELECT currency, timezone, quantity_unit, updated_at
		FROM user_setting
		WHERE id = ?
	`

	var s model.Settings
	var updatedAtStr string
	err := r.db.QueryRowContext(ctx, query, settingsRowID).Scan(&s.Currency, &s.Timezone, &s.QuantityUnit, &updatedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Settings{}, false, nil
	}
	if err != nil {
		return model.Settings{}, false, fmt.Errorf("failed to query user_setting: %w", err)
	}

	if s.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return model.Settings{}, false, err
	}

	return s, true, nil
}

// SaveSettings inserts or replaces the settings row.
func (r *SettingsRepository) SaveSettings(ctx context.Context, s model.Settings) error {
	query := `
		INSERT INTO user_setting (id, currency, timezone, quantity_unit, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			currency = excluded.currency,
			timezone = excluded.timezone,
			quantity_unit = excluded.quantity_unit,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, settingsRowID, s.Currency, s.Timezone, s.QuantityUnit, formatTime(s.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to save user_setting: %w", err)
	}

	return nil
}
