package service

import (
	"context"
	"database/sql"
	"fmt"
	"math"
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

// Pagination bounds for transaction listings.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// balanceTolerance absorbs float noise when comparing a sell against the
// available balance. It is one satoshi.
const balanceTolerance = 1e-8

// TransactionService handles transaction business logic: validation against
// the available balance, pagination and gain/loss enrichment.
type TransactionService struct {
	db              *sql.DB
	transactionRepo *repository.TransactionRepository
	marketService   *MarketService
	settingsService *SettingsService
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	db *sql.DB,
	transactionRepo *repository.TransactionRepository,
	marketService *MarketService,
	settingsService *SettingsService,
) *TransactionService {
	return &TransactionService{
		db:              db,
		transactionRepo: transactionRepo,
		marketService:   marketService,
		settingsService: settingsService,
	}
}

// GetTransactions returns one page of transactions, newest first, each with
// its gain/loss in the requested currency (the user's preference when empty).
func (s *TransactionService) GetTransactions(ctx context.Context, page, pageSize int, currency string) (model.TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	settings, err := s.settingsService.DisplaySettings(ctx, currency)
	if err != nil {
		return model.TransactionPage{}, err
	}

	total, err := s.transactionRepo.CountTransactions(ctx)
	if err != nil {
		return model.TransactionPage{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}

	transactions, err := s.transactionRepo.GetTransactionsPage(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return model.TransactionPage{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}

	items := make([]model.TransactionResponse, 0, len(transactions))
	if len(transactions) > 0 {
		snapshot, err := s.marketService.Snapshot(ctx)
		if err != nil {
			return model.TransactionPage{}, err
		}
		for _, tx := range transactions {
			items = append(items, enrichTransaction(tx, snapshot, settings))
		}
	}

	return model.TransactionPage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// GetTransaction retrieves a single transaction with its gain/loss.
func (s *TransactionService) GetTransaction(ctx context.Context, id, currency string) (model.TransactionResponse, error) {
	settings, err := s.settingsService.DisplaySettings(ctx, currency)
	if err != nil {
		return model.TransactionResponse{}, err
	}

	tx, err := s.transactionRepo.GetTransaction(ctx, id)
	if err != nil {
		return model.TransactionResponse{}, err
	}

	snapshot, err := s.marketService.Snapshot(ctx)
	if err != nil {
		return model.TransactionResponse{}, err
	}

	return enrichTransaction(tx, snapshot, settings), nil
}

// CreateTransaction stores a new transaction.
// Sells and outgoing transfers are rejected with ErrInsufficientBalance when
// they exceed the BTC currently held.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (model.Transaction, error) {
	date, err := validation.ParseTime(req.Date)
	if err != nil {
		return model.Transaction{}, err
	}

	now := time.Now().UTC()
	tx := model.Transaction{
		ID:           uuid.New().String(),
		Type:         model.TransactionType(strings.ToLower(strings.TrimSpace(req.Type))),
		Quantity:     req.Quantity,
		TotalSpent:   req.TotalSpent,
		PricePerCoin: req.PricePerCoin,
		Market:       model.ParseCurrency(req.Market),
		Fees:         req.Fees,
		Notes:        strings.TrimSpace(req.Notes),
		Date:         date,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.TransferType != nil {
		tx.TransferType = ptr(model.TransferDirection(strings.ToLower(strings.TrimSpace(*req.TransferType))))
	}
	if tx.Market == "" {
		tx.Market = model.CurrencyUSD
	}
	normalizeAmounts(&tx)

	err = s.withinTx(ctx, func(repo *repository.TransactionRepository) error {
		existing, err := repo.GetTransactions(ctx)
		if err != nil {
			return err
		}
		if err := checkBalance(existing, tx); err != nil {
			return err
		}
		return repo.InsertTransaction(ctx, tx)
	})
	if err != nil {
		return model.Transaction{}, err
	}

	return tx, nil
}

// UpdateTransaction applies the provided fields to an existing transaction.
// Any change that would leave the ledger holding less than zero BTC, such as
// shrinking a buy that later sells depend on, is rejected with
// ErrInsufficientBalance. Changes that do not lower the balance always pass.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, req request.UpdateTransactionRequest) (model.Transaction, error) {
	var updated model.Transaction

	err := s.withinTx(ctx, func(repo *repository.TransactionRepository) error {
		tx, err := repo.GetTransaction(ctx, id)
		if err != nil {
			return err
		}
		before := tx

		if err := applyTransactionUpdate(&tx, req); err != nil {
			return err
		}
		if err := validation.ValidateTransaction(tx); err != nil {
			return err
		}

		all, err := repo.GetTransactions(ctx)
		if err != nil {
			return err
		}
		others := make([]model.Transaction, 0, len(all))
		for _, t := range all {
			if t.ID != id {
				others = append(others, t)
			}
		}
		if err := checkUpdatedBalance(others, before, tx); err != nil {
			return err
		}

		tx.UpdatedAt = time.Now().UTC()
		if err := repo.UpdateTransaction(ctx, tx); err != nil {
			return err
		}
		updated = tx
		return nil
	})
	if err != nil {
		return model.Transaction{}, err
	}

	return updated, nil
}

// DeleteTransaction removes a transaction.
// Returns ErrTransactionNotFound if no record with the given ID exists.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	return s.transactionRepo.DeleteTransaction(ctx, id)
}

// loadTransactions returns every transaction, oldest first.
func (s *TransactionService) loadTransactions(ctx context.Context) ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactions(ctx)
}

// withinTx runs fn against a repository bound to a database transaction so
// the balance check and the write see the same data.
func (s *TransactionService) withinTx(ctx context.Context, fn func(repo *repository.TransactionRepository) error) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(s.transactionRepo.WithTx(dbTx)); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func applyTransactionUpdate(tx *model.Transaction, req request.UpdateTransactionRequest) error {
	if req.Type != nil {
		tx.Type = model.TransactionType(strings.ToLower(strings.TrimSpace(*req.Type)))
		if tx.Type != model.TransactionTransfer {
			tx.TransferType = nil
		}
	}
	if req.TransferType != nil {
		tx.TransferType = ptr(model.TransferDirection(strings.ToLower(strings.TrimSpace(*req.TransferType))))
	}
	if req.Quantity != nil {
		tx.Quantity = *req.Quantity
	}
	if req.TotalSpent != nil {
		tx.TotalSpent = *req.TotalSpent
	}
	if req.PricePerCoin != nil {
		tx.PricePerCoin = *req.PricePerCoin
	} else if req.Quantity != nil || req.TotalSpent != nil {
		// derived price must follow the new amounts
		tx.PricePerCoin = 0
	}
	if req.Market != nil {
		tx.Market = model.ParseCurrency(*req.Market)
	}
	if req.Fees != nil {
		tx.Fees = req.Fees
	}
	if req.Notes != nil {
		tx.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.Date != nil {
		date, err := validation.ParseTime(*req.Date)
		if err != nil {
			return err
		}
		tx.Date = date
	}

	normalizeAmounts(tx)
	return nil
}

// normalizeAmounts derives the unit price from total and quantity when it was
// not given, and clears the fiat fields of transfers.
func normalizeAmounts(tx *model.Transaction) {
	if tx.Type == model.TransactionTransfer {
		tx.TotalSpent = 0
		tx.PricePerCoin = 0
		return
	}
	if tx.PricePerCoin == 0 && tx.Quantity > 0 {
		tx.PricePerCoin = tx.TotalSpent / tx.Quantity
	}
}

func checkBalance(others []model.Transaction, tx model.Transaction) error {
	if tx.Type != model.TransactionSell && !tx.IsTransferOut() {
		return nil
	}

	available := calc.AvailableBTC(others)
	if tx.Quantity > available+balanceTolerance {
		return fmt.Errorf("%w: requested %.8f BTC, available %.8f BTC", apperrors.ErrInsufficientBalance, tx.Quantity, available)
	}
	return nil
}

// checkUpdatedBalance compares the ledger balance with before and with after
// in place. A negative result is only an error when the edit lowered it, so
// ledgers already negative after a delete stay editable.
func checkUpdatedBalance(others []model.Transaction, before, after model.Transaction) error {
	rest := calc.NetBTC(others)
	oldBalance := rest + before.BalanceDelta()
	newBalance := rest + after.BalanceDelta()
	if newBalance < -balanceTolerance && newBalance < oldBalance-balanceTolerance {
		return fmt.Errorf("%w: update leaves %.8f BTC", apperrors.ErrInsufficientBalance, newBalance)
	}
	return nil
}

func enrichTransaction(tx model.Transaction, snapshot model.MarketSnapshot, settings model.Settings) model.TransactionResponse {
	currency := settings.Currency
	gl := calc.TransactionGainLoss(tx, snapshot.PriceIn(currency), currency, snapshot.ExchangeRate.Value)
	gainLoss := round(gl.Value)
	return model.TransactionResponse{
		Transaction:       tx,
		GainLoss:          gainLoss,
		GainLossStyle:     string(gl.Style),
		Currency:          currency,
		FormattedGainLoss: calc.FormatMoney(gainLoss, currency),
		FormattedQuantity: calc.FormatBTC(tx.Quantity, settings.QuantityUnit),
		DisplayDate:       calc.FormatDisplayDate(tx.Date, settings.Timezone),
	}
}
