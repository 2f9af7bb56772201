// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/Denys/transformer-designer/pkg/constants"
)

// Round rounds a value to the given number of decimal places.
func Round(val float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(val*factor) / factor
}

// RoundToStep rounds a value to the nearest multiple of step. A zero or
// negative step returns the value unchanged.
func RoundToStep(val, step float64) float64 {
	if step <= 0 {
		return val
	}
	return math.Round(val/step) * step
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// PercentDiff returns the absolute difference between actual and reference
// as a percentage of the reference. A zero reference with a nonzero actual
// yields +Inf.
func PercentDiff(actual, reference float64) float64 {
	if reference == 0 {
		if actual == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return math.Abs(actual-reference) / math.Abs(reference) * constants.PercentageMultiplier
}

// Clamp restricts a value to the range [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}
