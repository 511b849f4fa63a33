package calc

import (
	"regexp"
	"strings"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
	"github.com/shopspring/decimal"
)

// moneyDecimals is the number of fraction digits kept for fiat input.
const moneyDecimals = 2

var (
	brlInputPattern   = regexp.MustCompile(`^\d*,?\d*$`)
	dotInputPattern   = regexp.MustCompile(`^\d*\.?\d*$`)
	brlGroupedPattern = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)
)

// ValidateDecimalInput reports whether input is an acceptable, possibly partial,
// number as typed by the user. BRL uses a comma as decimal separator, every
// other currency a dot. An empty string is valid.
func ValidateDecimalInput(input string, currency model.Currency) bool {
	if currency == model.CurrencyBRL {
		return brlInputPattern.MatchString(input)
	}
	return dotInputPattern.MatchString(input)
}

// NormalizeDecimalInput converts a locale formatted number into dot-decimal
// form and truncates the fraction to two digits.
//
// Truncation instead of rounding keeps partially typed values stable:
//
//	NormalizeDecimalInput("1.234,56", model.CurrencyBRL) // "1234.56"
//	NormalizeDecimalInput("12.345", model.CurrencyUSD)   // "12.34"
//	NormalizeDecimalInput("12.", model.CurrencyUSD)      // "12."
//
// Malformed input such as signs, exponents or letters normalizes to "".
// The function is idempotent on its own output.
func NormalizeDecimalInput(input string, currency model.Currency) string {
	s := normalizeSeparators(input, currency)
	if !dotInputPattern.MatchString(s) {
		return ""
	}
	return truncateFraction(s, moneyDecimals)
}

// ParseDecimalInput normalizes input and parses it. The second value is false
// for empty or malformed input.
func ParseDecimalInput(input string, currency model.Currency) (decimal.Decimal, bool) {
	return parseCanonical(NormalizeDecimalInput(input, currency))
}

// normalizeSeparators removes grouping separators and turns the decimal
// separator into a dot without touching the precision.
func normalizeSeparators(input string, currency model.Currency) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	if currency != model.CurrencyBRL {
		return strings.ReplaceAll(s, ",", "")
	}

	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case brlGroupedPattern.MatchString(s):
		// "1.234.567" is thousands grouping, not a decimal
		s = strings.ReplaceAll(s, ".", "")
	}
	return s
}

func truncateFraction(s string, digits int) string {
	idx := strings.IndexByte(s, '.')
	if idx < 0 {
		return s
	}
	if len(s)-idx-1 > digits {
		return s[:idx+1+digits]
	}
	return s
}

// parseCanonical parses plain dot-decimal digits only. decimal.NewFromString
// also takes signs and exponents, and a large exponent makes later
// formatting allocate without bound.
func parseCanonical(s string) (decimal.Decimal, bool) {
	if !dotInputPattern.MatchString(s) {
		return decimal.Zero, false
	}
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return decimal.Zero, false
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
