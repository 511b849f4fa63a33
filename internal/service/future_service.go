package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/calc"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/validation"
)

// FutureService manages leveraged futures positions and their P&L.
type FutureService struct {
	futureRepo    *repository.FutureRepository
	marketService *MarketService
}

// NewFutureService creates a new FutureService with the provided dependencies.
func NewFutureService(futureRepo *repository.FutureRepository, marketService *MarketService) *FutureService {
	return &FutureService{
		futureRepo:    futureRepo,
		marketService: marketService,
	}
}

// GetFutures returns every position with its metrics. OPEN positions are
// evaluated against the live BTC price, CLOSED ones use their stored values.
func (s *FutureService) GetFutures(ctx context.Context) ([]model.FutureResponse, error) {
	futures, err := s.futureRepo.GetFutures(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveFutures, err)
	}

	price, err := s.priceFor(ctx, futures)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	responses := make([]model.FutureResponse, 0, len(futures))
	for _, f := range futures {
		responses = append(responses, withMetrics(f, price, now))
	}
	return responses, nil
}

// GetFuture returns a single position with its metrics.
func (s *FutureService) GetFuture(ctx context.Context, id string) (model.FutureResponse, error) {
	f, err := s.futureRepo.GetFuture(ctx, id)
	if err != nil {
		return model.FutureResponse{}, err
	}

	price, err := s.priceFor(ctx, []model.Future{f})
	if err != nil {
		return model.FutureResponse{}, err
	}

	return withMetrics(f, price, time.Now().UTC()), nil
}

// Summary aggregates all positions.
func (s *FutureService) Summary(ctx context.Context) (model.FuturesSummary, error) {
	futures, err := s.futureRepo.GetFutures(ctx)
	if err != nil {
		return model.FuturesSummary{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveFutures, err)
	}

	price, err := s.priceFor(ctx, futures)
	if err != nil {
		return model.FuturesSummary{}, err
	}

	summary := calc.SummarizeFutures(futures, price, time.Now().UTC())
	summary.TotalFeesUSD = round(summary.TotalFeesUSD)
	summary.OpenNotionalUSD = round(summary.OpenNotionalUSD)
	summary.WinRate = round(summary.WinRate)
	return summary, nil
}

// CreateFuture opens a new position.
func (s *FutureService) CreateFuture(ctx context.Context, req request.CreateFutureRequest) (model.Future, error) {
	buyDate, err := validation.ParseTime(req.BuyDate)
	if err != nil {
		return model.Future{}, err
	}

	now := time.Now().UTC()
	f := model.Future{
		ID:          uuid.New().String(),
		Direction:   model.FutureDirection(strings.ToUpper(strings.TrimSpace(req.Direction))),
		EntryPrice:  req.EntryPrice,
		TargetPrice: req.TargetPrice,
		ExitPrice:   req.ExitPrice,
		QuantityUSD: req.QuantityUSD,
		Status:      model.FutureOpen,
		BuyDate:     buyDate,
		Notes:       strings.TrimSpace(req.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	mirrorExitPrice(&f, req.TargetPrice, req.ExitPrice)

	if err := s.futureRepo.InsertFuture(ctx, f); err != nil {
		return model.Future{}, fmt.Errorf("failed to create future: %w", err)
	}

	return f, nil
}

// UpdateFuture applies the provided fields. Trading fields can only change
// while the position is OPEN; notes can always be edited.
func (s *FutureService) UpdateFuture(ctx context.Context, id string, req request.UpdateFutureRequest) (model.Future, error) {
	f, err := s.futureRepo.GetFuture(ctx, id)
	if err != nil {
		return model.Future{}, err
	}

	tradingChange := req.Direction != nil || req.EntryPrice != nil || req.TargetPrice != nil ||
		req.ExitPrice != nil || req.QuantityUSD != nil || req.BuyDate != nil
	if tradingChange && f.Status != model.FutureOpen {
		return model.Future{}, fmt.Errorf("%w: status is %s", apperrors.ErrFutureNotOpen, f.Status)
	}

	if req.Direction != nil {
		f.Direction = model.FutureDirection(strings.ToUpper(strings.TrimSpace(*req.Direction)))
	}
	if req.EntryPrice != nil {
		f.EntryPrice = *req.EntryPrice
	}
	if req.QuantityUSD != nil {
		f.QuantityUSD = *req.QuantityUSD
	}
	if req.BuyDate != nil {
		buyDate, err := validation.ParseTime(*req.BuyDate)
		if err != nil {
			return model.Future{}, err
		}
		f.BuyDate = buyDate
	}
	if req.Notes != nil {
		f.Notes = strings.TrimSpace(*req.Notes)
	}
	mirrorExitPrice(&f, req.TargetPrice, req.ExitPrice)
	f.UpdatedAt = time.Now().UTC()

	if err := s.futureRepo.UpdateFuture(ctx, f); err != nil {
		return model.Future{}, err
	}

	return f, nil
}

// DeleteFuture removes a position.
func (s *FutureService) DeleteFuture(ctx context.Context, id string) error {
	return s.futureRepo.DeleteFuture(ctx, id)
}

// CloseFuture closes an OPEN position at exitPrice, freezing its metrics.
// closeDate defaults to now.
// Returns ErrFutureNotOpen when the position is not OPEN.
func (s *FutureService) CloseFuture(ctx context.Context, id string, req request.CloseFutureRequest) (model.FutureResponse, error) {
	f, err := s.futureRepo.GetFuture(ctx, id)
	if err != nil {
		return model.FutureResponse{}, err
	}
	if f.Status != model.FutureOpen {
		return model.FutureResponse{}, fmt.Errorf("%w: status is %s", apperrors.ErrFutureNotOpen, f.Status)
	}

	closeDate := time.Now().UTC()
	if req.CloseDate != nil {
		if closeDate, err = validation.ParseTime(*req.CloseDate); err != nil {
			return model.FutureResponse{}, err
		}
	}
	if closeDate.Before(f.BuyDate) {
		return model.FutureResponse{}, &validation.Error{Fields: map[string]string{
			"closeDate": "closeDate cannot be before buyDate",
		}}
	}

	exitPrice, ok := f.ReferenceExitPrice()
	if req.ExitPrice != nil {
		exitPrice, ok = *req.ExitPrice, true
	}
	if !ok {
		return model.FutureResponse{}, &validation.Error{Fields: map[string]string{
			"exitPrice": "exitPrice is required when the position has no target price",
		}}
	}

	m := calc.CloseFutureMetrics(f, exitPrice, closeDate)

	f.Status = model.FutureClosed
	f.ExitPrice = ptr(exitPrice)
	f.TargetPrice = ptr(exitPrice)
	f.CloseDate = &closeDate
	f.PercentGain = ptr(m.UnrealizedGainPercent)
	f.PercentFee = ptr(m.FeePercent)
	f.FeesPaid = ptr(m.FeesPaidUSD)
	f.NetPlSats = ptr(m.NetPlSats)
	f.UpdatedAt = time.Now().UTC()

	if err := s.futureRepo.UpdateFuture(ctx, f); err != nil {
		return model.FutureResponse{}, err
	}

	return model.FutureResponse{Future: f, Metrics: &m}, nil
}

// SetStatus moves an OPEN position to STOP or CANCELLED. Both are terminal
// and carry no metrics.
func (s *FutureService) SetStatus(ctx context.Context, id string, status model.FutureStatus) (model.Future, error) {
	if status != model.FutureStop && status != model.FutureCancelled {
		return model.Future{}, &validation.Error{Fields: map[string]string{
			"status": fmt.Sprintf("invalid status: %s (allowed: STOP, CANCELLED)", status),
		}}
	}

	f, err := s.futureRepo.GetFuture(ctx, id)
	if err != nil {
		return model.Future{}, err
	}
	if f.Status != model.FutureOpen {
		return model.Future{}, fmt.Errorf("%w: status is %s", apperrors.ErrFutureNotOpen, f.Status)
	}

	now := time.Now().UTC()
	f.Status = status
	f.CloseDate = &now
	f.UpdatedAt = now

	if err := s.futureRepo.UpdateFuture(ctx, f); err != nil {
		return model.Future{}, err
	}

	return f, nil
}

// priceFor fetches the BTC price only when an OPEN position needs it.
func (s *FutureService) priceFor(ctx context.Context, futures []model.Future) (float64, error) {
	for _, f := range futures {
		if f.Status == model.FutureOpen {
			quote, err := s.marketService.BTCPrice(ctx)
			if err != nil {
				return 0, err
			}
			return quote.Value, nil
		}
	}
	return 0, nil
}

// mirrorExitPrice keeps target and exit price in sync, the exit price wins
// when both are given.
func mirrorExitPrice(f *model.Future, target, exit *float64) {
	switch {
	case exit != nil:
		f.ExitPrice = ptr(*exit)
		f.TargetPrice = ptr(*exit)
	case target != nil:
		f.TargetPrice = ptr(*target)
		f.ExitPrice = ptr(*target)
	}
}

func withMetrics(f model.Future, price float64, now time.Time) model.FutureResponse {
	resp := model.FutureResponse{Future: f}
	if m, ok := calc.CalculateFutureMetrics(f, price, now); ok {
		resp.Metrics = &m
	}
	return resp
}
