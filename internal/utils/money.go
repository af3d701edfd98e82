package utils

import (
	"fmt"
	"math"
)

// FormatRands keeps consistent decimal formatting for ZAR amounts.
func FormatRands(amount float64) string {
	return fmt.Sprintf("R %.2f", amount)
}

// RandsToCents converts a rand amount to integer cents for the payment
// gateway, rounding to the nearest cent.
func RandsToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CentsToRands converts gateway cents back to a rand amount.
func CentsToRands(cents int64) float64 {
	return float64(cents) / 100
}
