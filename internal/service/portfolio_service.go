package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/calc"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
)

// PortfolioService aggregates the transaction history into portfolio metrics.
type PortfolioService struct {
	transactionService *TransactionService
	marketService      *MarketService
	settingsService    *SettingsService
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	transactionService *TransactionService,
	marketService *MarketService,
	settingsService *SettingsService,
) *PortfolioService {
	return &PortfolioService{
		transactionService: transactionService,
		marketService:      marketService,
		settingsService:    settingsService,
	}
}

// Summary computes the portfolio metrics in the requested currency (the
// user's preference when empty) at the current market price.
//
// Fiat figures are rounded to cents and TotalBTC to whole satoshis. The
// formatted fields use the user's quantity unit.
// Stale is set when the price or rate came from the stored fallback.
func (s *PortfolioService) Summary(ctx context.Context, currency string) (model.PortfolioSummary, error) {
	settings, err := s.settingsService.DisplaySettings(ctx, currency)
	if err != nil {
		return model.PortfolioSummary{}, err
	}
	userCurrency := settings.Currency

	transactions, err := s.transactionService.loadTransactions(ctx)
	if err != nil {
		return model.PortfolioSummary{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetPortfolioSummary, err)
	}

	snapshot, err := s.marketService.Snapshot(ctx)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	price := snapshot.PriceIn(userCurrency)
	metrics := calc.CalculatePortfolioMetrics(transactions, price, userCurrency, snapshot.ExchangeRate.Value)

	summary := model.PortfolioSummary{
		PortfolioMetrics: model.PortfolioMetrics{
			TotalBTC:     roundBTC(metrics.TotalBTC),
			TotalCost:    round(metrics.TotalCost),
			TotalRevenue: round(metrics.TotalRevenue),
			NetCost:      round(metrics.NetCost),
			CurrentValue: round(metrics.CurrentValue),
			GainLoss:     round(metrics.GainLoss),
			AvgCostBasis: round(metrics.AvgCostBasis),
		},
		Currency:         userCurrency,
		BTCPrice:         round(price),
		ExchangeRate:     snapshot.ExchangeRate.Value,
		TransactionCount: len(transactions),
		Stale:            snapshot.Stale(),
		QuantityUnit:     settings.QuantityUnit,
	}
	summary.FormattedTotalBTC = calc.FormatBTC(summary.TotalBTC, settings.QuantityUnit)
	summary.FormattedCurrentValue = calc.FormatMoney(summary.CurrentValue, userCurrency)
	summary.FormattedGainLoss = calc.FormatMoney(summary.GainLoss, userCurrency)
	return summary, nil
}
