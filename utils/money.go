package utils

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrAmountPrecision   = errors.New("amount cannot have more than 2 decimal places")
	ErrAmountTooLarge    = errors.New("amount is too large")
)

// maxAmount fits the decimal(12,2) column.
var maxAmount = decimal.RequireFromString("9999999999.99")

// ValidateAmount checks that d is a positive amount with at most two decimal
// places and returns it as a float for the ledger.
func ValidateAmount(d decimal.Decimal) (float64, error) {
	if !d.IsPositive() {
		return 0, ErrAmountNotPositive
	}
	if !d.Equal(d.Truncate(2)) {
		return 0, ErrAmountPrecision
	}
	if d.GreaterThan(maxAmount) {
		return 0, ErrAmountTooLarge
	}
	return d.InexactFloat64(), nil
}

// ParseAmount parses a user-supplied amount such as "12.50".
func ParseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return ValidateAmount(d)
}

// RoundToTwo rounds half away from zero to 2 decimal places.
func RoundToTwo(val float64) float64 {
	return decimal.NewFromFloat(val).Round(2).InexactFloat64()
}

// FormatAmount renders val with exactly two decimals.
func FormatAmount(val float64) string {
	return decimal.NewFromFloat(val).StringFixed(2)
}
