package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Log      LogConfig
	Market   MarketConfig
	Security SecurityConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
	// MaxAge is how long browsers may cache a preflight response.
	MaxAge time.Duration
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string
	Pretty bool
}

// MarketConfig controls market data caching, refresh schedules and the
// outbound request budget towards Yahoo Finance.
type MarketConfig struct {
	PriceTTL          time.Duration
	ExchangeRateTTL   time.Duration
	PriceSchedule     string
	RateSchedule      string
	RequestsPerSecond float64
	DefaultCurrency   model.Currency
}

// SecurityConfig holds the Fernet key used to encrypt notes at rest.
// An empty key stores notes in plain text.
type SecurityConfig struct {
	EncryptionKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/bitcoin_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnv("LOG_PRETTY", "false") == "true",
		},
		Market: MarketConfig{
			PriceSchedule: getEnv("MARKET_PRICE_SCHEDULE", "0 * * * * *"),
			RateSchedule:  getEnv("MARKET_RATE_SCHEDULE", "0 */30 * * * *"),
		},
		Security: SecurityConfig{
			EncryptionKey: os.Getenv("ENCRYPTION_KEY"),
		},
	}

	var err error
	if config.CORS.MaxAge, err = getDuration("CORS_MAX_AGE", 5*time.Minute); err != nil {
		return nil, err
	}
	if config.Market.PriceTTL, err = getDuration("MARKET_PRICE_TTL", time.Minute); err != nil {
		return nil, err
	}
	if config.Market.ExchangeRateTTL, err = getDuration("MARKET_RATE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}

	rps, err := strconv.ParseFloat(getEnv("YAHOO_REQUESTS_PER_SECOND", "2"), 64)
	if err != nil || rps <= 0 {
		return nil, fmt.Errorf("invalid YAHOO_REQUESTS_PER_SECOND: must be a positive number")
	}
	config.Market.RequestsPerSecond = rps

	currency := model.ParseCurrency(getEnv("DEFAULT_CURRENCY", string(model.CurrencyUSD)))
	if !currency.IsSupported() {
		return nil, fmt.Errorf("invalid DEFAULT_CURRENCY: must be USD or BRL")
	}
	config.Market.DefaultCurrency = currency

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q is not a positive duration", key, value)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
