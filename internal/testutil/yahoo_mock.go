package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/yahoo"
)

// Default prices returned by NewMockYahooClient.
const (
	MockBTCPrice     = 60000.0
	MockExchangeRate = 5.0
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined prices per symbol instead of making actual API calls.
type MockYahooClient struct {
	mu sync.Mutex
	// Prices maps a symbol to the price returned for it
	Prices map[string]float64
	// MockError is the error to return from QueryQuote
	MockError error
	// QueryCount tracks how many times QueryQuote was called
	QueryCount int
}

// NewMockYahooClient creates a new mock Yahoo client quoting BTC at
// MockBTCPrice USD and the dollar at MockExchangeRate BRL.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		Prices: map[string]float64{
			yahoo.SymbolBTCUSD: MockBTCPrice,
			yahoo.SymbolUSDBRL: MockExchangeRate,
		},
	}
}

// QueryQuote returns the configured price for symbol, or MockError when set.
func (m *MockYahooClient) QueryQuote(_ context.Context, symbol string) (yahoo.MarketPrice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.QueryCount++
	if m.MockError != nil {
		return yahoo.MarketPrice{}, m.MockError
	}

	price, ok := m.Prices[symbol]
	if !ok {
		return yahoo.MarketPrice{}, fmt.Errorf("no mock price for %s", symbol)
	}

	return yahoo.MarketPrice{
		Symbol:   symbol,
		Currency: "USD",
		Price:    price,
		AsOf:     time.Now().UTC(),
	}, nil
}

// Calls returns the number of QueryQuote calls so far.
func (m *MockYahooClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.QueryCount
}

// WithError configures the mock to return the specified error.
func (m *MockYahooClient) WithError(err error) *MockYahooClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MockError = err
	return m
}

// WithPrice configures the price returned for symbol.
func (m *MockYahooClient) WithPrice(symbol string, price float64) *MockYahooClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prices[symbol] = price
	return m
}
