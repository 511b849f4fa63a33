package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/crypto"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/service"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/yahoo"
)

// Cache lifetimes used by the test services.
const (
	TestPriceTTL = time.Minute
	TestRateTTL  = 30 * time.Minute
)

// NewTestCipher returns a cipher with a freshly generated key.
func NewTestCipher(t *testing.T) *crypto.Cipher {
	t.Helper()

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	cipher, err := crypto.NewCipher(key)
	if err != nil {
		t.Fatalf("Failed to create cipher: %v", err)
	}
	return cipher
}

// NewTestMarketService creates a MarketService backed by the given mock feed.
func NewTestMarketService(t *testing.T, db *sql.DB, client yahoo.Client) *service.MarketService {
	t.Helper()

	return service.NewMarketService(
		client,
		repository.NewMarketRepository(db),
		TestPriceTTL,
		TestRateTTL,
		zerolog.Nop(),
	)
}

func NewTestSettingsService(t *testing.T, db *sql.DB) *service.SettingsService {
	t.Helper()

	return service.NewSettingsService(repository.NewSettingsRepository(db), model.CurrencyUSD)
}

func NewTestTransactionService(t *testing.T, db *sql.DB, client yahoo.Client) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		db,
		repository.NewTransactionRepository(db, nil),
		NewTestMarketService(t, db, client),
		NewTestSettingsService(t, db),
	)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB, client yahoo.Client) *service.PortfolioService {
	t.Helper()

	marketService := NewTestMarketService(t, db, client)
	settingsService := NewTestSettingsService(t, db)
	transactionService := service.NewTransactionService(
		db,
		repository.NewTransactionRepository(db, nil),
		marketService,
		settingsService,
	)

	return service.NewPortfolioService(
		transactionService,
		marketService,
		settingsService,
	)
}

func NewTestFutureService(t *testing.T, db *sql.DB, client yahoo.Client) *service.FutureService {
	t.Helper()

	return service.NewFutureService(
		repository.NewFutureRepository(db, nil),
		NewTestMarketService(t, db, client),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, nil)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 {
	return &v
}

// StringPtr returns a pointer to v.
func StringPtr(v string) *string {
	return &v
}
