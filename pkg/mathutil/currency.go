// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/lease-amortization/pkg/constants"
	"github.com/shopspring/decimal"
)

// ToCents converts a full-precision value into a decimal rounded to two places,
// half away from zero. This is the only place engine output loses precision.
func ToCents(val float64) decimal.Decimal {
	return decimal.NewFromFloat(val).Round(constants.DisplayPlaces)
}

// IsFinite reports whether a value is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// ClampNonNegative returns val, or 0 when val is negative.
func ClampNonNegative(val float64) float64 {
	return math.Max(0, val)
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// MonthlyRate converts an annual percentage rate into a flat monthly fraction.
// The percent conversion happens first and the result is then divided by 12;
// no geometric conversion is applied.
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / constants.PercentageMultiplier / constants.MonthsPerYear
}
