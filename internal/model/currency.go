package model

import "strings"

// Currency is an ISO 4217 fiat code. Only USD and BRL take part in conversion;
// any other value is carried through untouched.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyBRL Currency = "BRL"
)

// ParseCurrency upper-cases and trims a user supplied code.
func ParseCurrency(s string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(s)))
}

// IsSupported reports whether the currency takes part in exchange-rate conversion.
func (c Currency) IsSupported() bool {
	return c == CurrencyUSD || c == CurrencyBRL
}

// QuantityUnit selects how BTC quantities are entered and displayed.
type QuantityUnit string

const (
	UnitBTC  QuantityUnit = "BTC"
	UnitSats QuantityUnit = "SATS"
)

// SatsPerBTC is the number of satoshis in one bitcoin.
const SatsPerBTC = 100_000_000
