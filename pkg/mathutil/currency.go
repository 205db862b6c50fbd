// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/MahendraD2/CashFlowManagement/pkg/constants"
)

// RoundWhole rounds a value to the nearest whole currency unit. Halves round
// toward positive infinity, so -2.5 becomes -2 and 2.5 becomes 3.
func RoundWhole(val float64) float64 {
	rounded := math.Floor(val + 0.5)
	if rounded == 0 {
		return 0
	}
	return rounded
}

// Sum adds every value in the series.
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// At returns values[i], or zero when i is outside the series.
func At(values []float64, i int) float64 {
	if i < 0 || i >= len(values) {
		return 0
	}
	return values[i]
}

// Clamp limits val to the closed interval [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, val))
}

// NonZeroDenominator returns total, or 1 when total is not positive. Used when
// distributing an aggregate across months in proportion to a reference total.
func NonZeroDenominator(total float64) float64 {
	if total <= 0 {
		return 1
	}
	return total
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// Fraction converts a percentage such as 15 into the fraction 0.15.
func Fraction(percentage float64) float64 {
	return percentage / constants.PercentageMultiplier
}
