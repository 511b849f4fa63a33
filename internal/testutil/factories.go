package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	// A 0.1 BTC buy for 5000 USD
//	tx := testutil.NewTransaction().Build(t, db)
//
//	// Customized transaction
//	tx := testutil.NewTransaction().
//	    Sell().
//	    WithQuantity(0.05).
//	    WithTotalSpent(3000).
//	    WithDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)).
//	    Build(t, db)
type TransactionBuilder struct {
	ID           string
	Type         model.TransactionType
	TransferType *model.TransferDirection
	Quantity     float64
	TotalSpent   float64
	PricePerCoin float64
	Market       model.Currency
	Fees         *float64
	Notes        string
	Date         time.Time
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		ID:           MakeID(),
		Type:         model.TransactionBuy,
		Quantity:     0.1,
		TotalSpent:   5000,
		PricePerCoin: 50000,
		Market:       model.CurrencyUSD,
		Date:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// Sell turns the transaction into a sell.
func (b *TransactionBuilder) Sell() *TransactionBuilder {
	b.Type = model.TransactionSell
	return b
}

// TransferIn turns the transaction into an inbound transfer without fiat amounts.
func (b *TransactionBuilder) TransferIn() *TransactionBuilder {
	return b.transfer(model.TransferIn)
}

// TransferOut turns the transaction into an outbound transfer without fiat amounts.
func (b *TransactionBuilder) TransferOut() *TransactionBuilder {
	return b.transfer(model.TransferOut)
}

func (b *TransactionBuilder) transfer(direction model.TransferDirection) *TransactionBuilder {
	b.Type = model.TransactionTransfer
	b.TransferType = &direction
	b.TotalSpent = 0
	b.PricePerCoin = 0
	return b
}

// WithQuantity sets the BTC quantity and keeps the price per coin consistent.
func (b *TransactionBuilder) WithQuantity(quantity float64) *TransactionBuilder {
	b.Quantity = quantity
	b.recomputePrice()
	return b
}

// WithTotalSpent sets the fiat total and keeps the price per coin consistent.
func (b *TransactionBuilder) WithTotalSpent(total float64) *TransactionBuilder {
	b.TotalSpent = total
	b.recomputePrice()
	return b
}

// WithMarket sets the currency the amounts are denominated in.
func (b *TransactionBuilder) WithMarket(market model.Currency) *TransactionBuilder {
	b.Market = market
	return b
}

// WithFees sets the fee.
func (b *TransactionBuilder) WithFees(fees float64) *TransactionBuilder {
	b.Fees = &fees
	return b
}

// WithNotes sets free-form notes.
func (b *TransactionBuilder) WithNotes(notes string) *TransactionBuilder {
	b.Notes = notes
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

func (b *TransactionBuilder) recomputePrice() {
	if b.Type == model.TransactionTransfer || b.Quantity <= 0 {
		b.PricePerCoin = 0
		return
	}
	b.PricePerCoin = b.TotalSpent / b.Quantity
}

// Build creates the transaction in the database and returns it.
// Notes are written as plain text.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	var transferType any
	if b.TransferType != nil {
		transferType = string(*b.TransferType)
	}

	now := time.Now().UTC().Truncate(time.Second)
	query := `
		INSERT INTO "transaction" (id, type, transfer_type, quantity, total_spent, price_per_coin,
			market, fees, notes, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.Type, transferType, b.Quantity, b.TotalSpent, b.PricePerCoin,
		b.Market, nullableFloat(b.Fees), b.Notes, formatTime(b.Date), formatTime(now), formatTime(now),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:           b.ID,
		Type:         b.Type,
		TransferType: b.TransferType,
		Quantity:     b.Quantity,
		TotalSpent:   b.TotalSpent,
		PricePerCoin: b.PricePerCoin,
		Market:       b.Market,
		Fees:         b.Fees,
		Notes:        b.Notes,
		Date:         b.Date,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// FutureBuilder provides a fluent interface for creating test futures positions.
//
// Example usage:
//
//	// OPEN LONG of 100 USD at 50000
//	f := testutil.NewFuture().Build(t, db)
//
//	// Stored CLOSED position
//	f := testutil.NewFuture().
//	    Short().
//	    Closed(48000, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).
//	    Build(t, db)
type FutureBuilder struct {
	ID          string
	Direction   model.FutureDirection
	EntryPrice  float64
	ExitPrice   *float64
	TargetPrice *float64
	QuantityUSD float64
	Status      model.FutureStatus
	BuyDate     time.Time
	CloseDate   *time.Time
	PercentGain *float64
	PercentFee  *float64
	FeesPaid    *float64
	NetPlSats   *float64
	Notes       string
}

// NewFuture creates a FutureBuilder with sensible defaults.
func NewFuture() *FutureBuilder {
	return &FutureBuilder{
		ID:          MakeID(),
		Direction:   model.DirectionLong,
		EntryPrice:  50000,
		QuantityUSD: 100,
		Status:      model.FutureOpen,
		BuyDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// WithID sets a custom ID.
func (b *FutureBuilder) WithID(id string) *FutureBuilder {
	b.ID = id
	return b
}

// Short makes the position a SHORT.
func (b *FutureBuilder) Short() *FutureBuilder {
	b.Direction = model.DirectionShort
	return b
}

// WithEntryPrice sets the entry price.
func (b *FutureBuilder) WithEntryPrice(price float64) *FutureBuilder {
	b.EntryPrice = price
	return b
}

// WithTargetPrice sets the target price and mirrors it into the exit price.
func (b *FutureBuilder) WithTargetPrice(price float64) *FutureBuilder {
	b.TargetPrice = &price
	b.ExitPrice = &price
	return b
}

// WithQuantityUSD sets the notional size.
func (b *FutureBuilder) WithQuantityUSD(quantity float64) *FutureBuilder {
	b.QuantityUSD = quantity
	return b
}

// WithBuyDate sets the opening date.
func (b *FutureBuilder) WithBuyDate(date time.Time) *FutureBuilder {
	b.BuyDate = date
	return b
}

// WithNotes sets free-form notes.
func (b *FutureBuilder) WithNotes(notes string) *FutureBuilder {
	b.Notes = notes
	return b
}

// WithStatus sets the status without touching any other field.
func (b *FutureBuilder) WithStatus(status model.FutureStatus) *FutureBuilder {
	b.Status = status
	return b
}

// Closed marks the position CLOSED at exitPrice with frozen metrics.
// The stored metrics are fixed sample values, not computed.
func (b *FutureBuilder) Closed(exitPrice float64, closeDate time.Time) *FutureBuilder {
	gain, fee, feesPaid, sats := 4.0, 0.1, 0.1, 8000.0
	b.Status = model.FutureClosed
	b.ExitPrice = &exitPrice
	b.TargetPrice = &exitPrice
	b.CloseDate = &closeDate
	b.PercentGain = &gain
	b.PercentFee = &fee
	b.FeesPaid = &feesPaid
	b.NetPlSats = &sats
	return b
}

// Build creates the position in the database and returns it.
func (b *FutureBuilder) Build(t *testing.T, db *sql.DB) model.Future {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	query := `
		INSERT INTO future (id, direction, entry_price, exit_price, target_price, quantity_usd, status,
			buy_date, close_date, percent_gain, percent_fee, fees_paid, net_pl_sats, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.Direction, b.EntryPrice, nullableFloat(b.ExitPrice), nullableFloat(b.TargetPrice),
		b.QuantityUSD, b.Status, formatTime(b.BuyDate), nullableTime(b.CloseDate),
		nullableFloat(b.PercentGain), nullableFloat(b.PercentFee), nullableFloat(b.FeesPaid),
		nullableFloat(b.NetPlSats), b.Notes, formatTime(now), formatTime(now),
	)
	if err != nil {
		t.Fatalf("Failed to create test future: %v", err)
	}

	return model.Future{
		ID:          b.ID,
		Direction:   b.Direction,
		EntryPrice:  b.EntryPrice,
		ExitPrice:   b.ExitPrice,
		TargetPrice: b.TargetPrice,
		QuantityUSD: b.QuantityUSD,
		Status:      b.Status,
		BuyDate:     b.BuyDate,
		CloseDate:   b.CloseDate,
		PercentGain: b.PercentGain,
		PercentFee:  b.PercentFee,
		FeesPaid:    b.FeesPaid,
		NetPlSats:   b.NetPlSats,
		Notes:       b.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Convenience functions

// CreateSettings stores the single settings row.
//
// Example usage:
//
//	testutil.CreateSettings(t, db, model.CurrencyBRL, "America/Sao_Paulo", model.UnitSats)
func CreateSettings(t *testing.T, db *sql.DB, currency model.Currency, timezone string, unit model.QuantityUnit) model.Settings {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	_, err := db.Exec(`
		INSERT INTO user_setting (id, currency, timezone, quantity_unit, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET currency = excluded.currency, timezone = excluded.timezone,
			quantity_unit = excluded.quantity_unit, updated_at = excluded.updated_at
	`, currency, timezone, unit, formatTime(now))
	if err != nil {
		t.Fatalf("Failed to create test settings: %v", err)
	}

	return model.Settings{Currency: currency, Timezone: timezone, QuantityUnit: unit, UpdatedAt: now}
}

// CreateMarketSnapshot stores a persisted market value, as the fallback would read it.
//
// Example usage:
//
//	testutil.CreateMarketSnapshot(t, db, yahoo.SymbolBTCUSD, 60000, time.Now())
func CreateMarketSnapshot(t *testing.T, db *sql.DB, symbol string, value float64, asOf time.Time) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO market_snapshot (symbol, value, as_of) VALUES (?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET value = excluded.value, as_of = excluded.as_of
	`, symbol, value, formatTime(asOf))
	if err != nil {
		t.Fatalf("Failed to create test market snapshot: %v", err)
	}
}
