package service

import "math"

const (
	// RoundingPrecision rounds fiat amounts to cents.
	RoundingPrecision = 1e2
	// BTCPrecision rounds BTC amounts to whole satoshis.
	BTCPrecision = 1e8
)

// round rounds a float64 value to two decimal places using the package RoundingPrecision constant.
// This function is used throughout the service layer to ensure consistent rounding of monetary
// values in API responses.
//
// The rounding uses the standard "round half up" approach via math.Round.
//
// Example:
//
//	round(123.456789)  // returns 123.46
//	round(1.994)       // returns 1.99
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// roundBTC rounds a BTC amount to satoshi precision.
func roundBTC(value float64) float64 {
	return math.Round(value*BTCPrecision) / BTCPrecision
}

func ptr[T any](v T) *T {
	return &v
}
