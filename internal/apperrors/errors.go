package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrFutureNotFound indicates that a futures position with the given ID does not exist.
	ErrFutureNotFound = errors.New("future not found")

	// ErrSnapshotNotFound indicates that no market value was ever persisted for a symbol.
	ErrSnapshotNotFound = errors.New("market snapshot not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientBalance indicates that a sell or outgoing transfer exceeds
	// the BTC currently held.
	ErrInsufficientBalance = errors.New("insufficient BTC balance")

	// ErrFutureNotOpen indicates a close or status change on a position that
	// already reached a terminal status.
	ErrFutureNotOpen = errors.New("future is not open")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrUnsupportedCurrency indicates a currency other than USD or BRL.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// ErrMarketDataUnavailable indicates the live feed failed and no persisted
	// fallback value exists.
	ErrMarketDataUnavailable = errors.New("market data unavailable")

	// Transaction operation errors
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")

	// Future operation errors
	ErrFailedToRetrieveFutures = errors.New("failed to retrieve futures")
	ErrFailedToRetrieveFuture  = errors.New("failed to retrieve future")

	// Portfolio operation errors
	ErrFailedToGetPortfolioSummary = errors.New("failed to get portfolio summary")

	// Settings operation errors
	ErrFailedToRetrieveSettings = errors.New("failed to retrieve settings")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that stored data cannot be decoded
	// (e.g., an encrypted note that no longer matches the configured key).
	ErrDataInconsistency = errors.New("data inconsistency detected")
)
