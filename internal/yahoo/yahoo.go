package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Symbols queried by the tracker.
const (
	SymbolBTCUSD = "BTC-USD"
	SymbolUSDBRL = "USDBRL=X"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client is the subset of the Yahoo Finance API the market service needs.
type Client interface {
	QueryQuote(ctx context.Context, symbol string) (MarketPrice, error)
}

// FinanceClient provides methods for fetching market data from Yahoo Finance.
// Outbound requests are throttled by a token bucket so scheduled refreshes and
// cache misses from the API never exceed the configured request rate.
type FinanceClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// Option configures a FinanceClient.
type Option func(*FinanceClient)

// WithBaseURL points the client at a different host, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *FinanceClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *FinanceClient) {
		c.httpClient = hc
	}
}

// NewFinanceClient creates a new Yahoo Finance client allowing up to
// requestsPerSecond requests with a burst of one.
func NewFinanceClient(requestsPerSecond float64, opts ...Option) *FinanceClient {
	c := &FinanceClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryQuote fetches the latest regular market price for symbol.
//
// Parameters:
//   - ctx: Bounds both the wait for a rate limiter token and the HTTP request
//   - symbol: Yahoo ticker such as "BTC-USD" or "USDBRL=X"
//
// Returns:
//   - MarketPrice: Latest price with its timestamp
//   - error: If throttling is cancelled, the request fails, or no price is present
func (c *FinanceClient) QueryQuote(ctx context.Context, symbol string) (MarketPrice, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return MarketPrice{}, fmt.Errorf("rate limit wait for %s: %w", symbol, err)
	}

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1m&range=1d", c.baseURL, url.PathEscape(symbol))
	response, err := c.queryYahoo(ctx, endpoint)
	if err != nil {
		return MarketPrice{}, fmt.Errorf("query %s: %w", symbol, err)
	}

	return ParseQuote(response)
}

// ParseQuote extracts the latest price from a chart response. It prefers
// meta.regularMarketPrice and falls back to the last non-null close.
func ParseQuote(response Response) (MarketPrice, error) {
	if len(response.Chart.Result) == 0 {
		return MarketPrice{}, fmt.Errorf("no results returned")
	}
	result := response.Chart.Result[0]

	quote := MarketPrice{
		Symbol:   result.Meta.Symbol,
		Currency: result.Meta.Currency,
		Price:    result.Meta.RegularMarketPrice,
	}
	if result.Meta.RegularMarketTime > 0 {
		quote.AsOf = time.Unix(result.Meta.RegularMarketTime, 0).UTC()
	}

	if quote.Price <= 0 {
		price, at, ok := lastClose(result)
		if !ok {
			return MarketPrice{}, fmt.Errorf("no price returned for %s", result.Meta.Symbol)
		}
		quote.Price = price
		quote.AsOf = at
	}

	if quote.AsOf.IsZero() {
		quote.AsOf = time.Now().UTC()
	}

	return quote, nil
}

func lastClose(result Result) (float64, time.Time, bool) {
	if len(result.Indicators.Quote) == 0 {
		return 0, time.Time{}, false
	}
	closes := result.Indicators.Quote[0].Close

	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] == nil || *closes[i] <= 0 {
			continue
		}
		var at time.Time
		if i < len(result.Timestamp) {
			at = time.Unix(result.Timestamp[i], 0).UTC()
		}
		return *closes[i], at, true
	}
	return 0, time.Time{}, false
}

// queryYahoo executes a request against Yahoo Finance and decodes the body.
// A browser User-Agent is required or Yahoo rejects the request.
func (c *FinanceClient) queryYahoo(ctx context.Context, endpoint string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		if resp.StatusCode != http.StatusOK {
			return Response{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", response.Chart.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return response, nil
}
