package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/repository"
)

// SettingsService manages the user's display preferences.
type SettingsService struct {
	settingsRepo    *repository.SettingsRepository
	defaultCurrency model.Currency
}

// NewSettingsService creates a new SettingsService. defaultCurrency is used
// until the user saves a preference.
func NewSettingsService(settingsRepo *repository.SettingsRepository, defaultCurrency model.Currency) *SettingsService {
	if !defaultCurrency.IsSupported() {
		defaultCurrency = model.CurrencyUSD
	}
	return &SettingsService{
		settingsRepo:    settingsRepo,
		defaultCurrency: defaultCurrency,
	}
}

// GetSettings returns the stored settings or the defaults when none exist.
func (s *SettingsService) GetSettings(ctx context.Context) (model.Settings, error) {
	settings, found, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return model.Settings{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveSettings, err)
	}
	if !found {
		settings = model.DefaultSettings()
		settings.Currency = s.defaultCurrency
	}
	return settings, nil
}

// UpdateSettings applies the provided fields on top of the current settings.
func (s *SettingsService) UpdateSettings(ctx context.Context, req request.UpdateSettingsRequest) (model.Settings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return model.Settings{}, err
	}

	if req.Currency != nil {
		settings.Currency = model.ParseCurrency(*req.Currency)
	}
	if req.Timezone != nil {
		settings.Timezone = strings.TrimSpace(*req.Timezone)
	}
	if req.QuantityUnit != nil {
		settings.QuantityUnit = model.QuantityUnit(strings.ToUpper(strings.TrimSpace(*req.QuantityUnit)))
	}
	settings.UpdatedAt = time.Now().UTC()

	if err := s.settingsRepo.SaveSettings(ctx, settings); err != nil {
		return model.Settings{}, fmt.Errorf("failed to update settings: %w", err)
	}

	return settings, nil
}

// ResolveCurrency returns the requested currency, or the user's preferred
// one when raw is empty.
// Returns ErrUnsupportedCurrency for anything other than USD or BRL.
func (s *SettingsService) ResolveCurrency(ctx context.Context, raw string) (model.Currency, error) {
	settings, err := s.DisplaySettings(ctx, raw)
	if err != nil {
		return "", err
	}
	return settings.Currency, nil
}

// DisplaySettings returns the user's settings with Currency replaced by the
// requested one when raw is not empty. Amounts, quantities and dates in
// responses are formatted from the result.
func (s *SettingsService) DisplaySettings(ctx context.Context, raw string) (model.Settings, error) {
	currency := model.ParseCurrency(raw)
	if strings.TrimSpace(raw) != "" && !currency.IsSupported() {
		return model.Settings{}, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, raw)
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return model.Settings{}, err
	}
	if strings.TrimSpace(raw) != "" {
		settings.Currency = currency
	}
	return settings, nil
}
