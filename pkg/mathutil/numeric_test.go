package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		places   int
		expected float64
	}{
		{"Round up at midpoint", 1.235, 2, 1.24},
		{"Round down below midpoint", 1.234, 2, 1.23},
		{"No rounding needed", 1.23, 2, 1.23},
		{"Zero places", 211.11, 0, 211.0},
		{"One place", 0.375, 1, 0.4},
		{"Negative number", -1.235, 2, -1.24},
		{"Zero", 0.0, 2, 0.0},
		{"Large number", 12345.678, 2, 12345.68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input, tt.places)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v, %d) = %v, expected %v", tt.input, tt.places, result, tt.expected)
			}
		})
	}
}

func TestRoundToStep(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		step     float64
		expected float64
	}{
		{"Nearest 50 rounds up", 433.0, 50.0, 450.0},
		{"Nearest 50 rounds down", 410.0, 50.0, 400.0},
		{"Nearest 1000", 137400.0, 1000.0, 137000.0},
		{"Exact multiple", 400.0, 50.0, 400.0},
		{"Zero step passes through", 433.0, 0.0, 433.0},
		{"Negative step passes through", 433.0, -50.0, 433.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundToStep(tt.input, tt.step)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("RoundToStep(%v, %v) = %v, expected %v", tt.input, tt.step, result, tt.expected)
			}
		})
	}
}

func TestPercentDiff(t *testing.T) {
	tests := []struct {
		name      string
		actual    float64
		reference float64
		expected  float64
	}{
		{"Equal values", 100.0, 100.0, 0.0},
		{"Ten percent above", 110.0, 100.0, 10.0},
		{"Ten percent below", 90.0, 100.0, 10.0},
		{"Both zero", 0.0, 0.0, 0.0},
		{"Small reference", 1.05, 1.0, 5.0},
		{"Negative reference", 90.0, -100.0, 190.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PercentDiff(tt.actual, tt.reference)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("PercentDiff(%v, %v) = %v, expected %v",
					tt.actual, tt.reference, result, tt.expected)
			}
		})
	}
}

func TestPercentDiffZeroReference(t *testing.T) {
	result := PercentDiff(5.0, 0.0)
	if !math.IsInf(result, 1) {
		t.Errorf("PercentDiff(5, 0) = %v, expected +Inf", result)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		val      float64
		lo       float64
		hi       float64
		expected float64
	}{
		{"Within range", 0.1, 0.05, 0.2, 0.1},
		{"Below range", 0.01, 0.05, 0.2, 0.05},
		{"Above range", 0.5, 0.05, 0.2, 0.2},
		{"At lower bound", 0.05, 0.05, 0.2, 0.05},
		{"At upper bound", 0.2, 0.05, 0.2, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Clamp(tt.val, tt.lo, tt.hi)
			if result != tt.expected {
				t.Errorf("Clamp(%v, %v, %v) = %v, expected %v",
					tt.val, tt.lo, tt.hi, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		val1      float64
		val2      float64
		tolerance float64
		expected  bool
	}{
		{"Exactly equal", 1.0, 1.0, 0.1, true},
		{"Within tolerance", 1.0, 1.05, 0.1, true},
		{"Outside tolerance", 1.0, 1.15, 0.1, false},
		{"Negative values within tolerance", -1.0, -1.05, 0.1, true},
		{"Zero tolerance exact match", 1.0, 1.0, 0.0, true},
		{"Zero tolerance no match", 1.0, 1.001, 0.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithinTolerance(tt.val1, tt.val2, tt.tolerance)
			if result != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v",
					tt.val1, tt.val2, tt.tolerance, result, tt.expected)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	if got := Min(1.0, 2.0); got != 1.0 {
		t.Errorf("Min(1, 2) = %v, expected 1", got)
	}
	if got := Min(-2.0, -1.0); got != -2.0 {
		t.Errorf("Min(-2, -1) = %v, expected -2", got)
	}
	if got := Max(2.0, 1.0); got != 2.0 {
		t.Errorf("Max(2, 1) = %v, expected 2", got)
	}
	if got := Max(-1.0, 1.0); got != 1.0 {
		t.Errorf("Max(-1, 1) = %v, expected 1", got)
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"50% of 100", 50.0, 100.0, 50.0},
		{"25% of 200", 50.0, 200.0, 25.0},
		{"Zero total", 50.0, 0.0, 0.0},
		{"Saturation margin style", 0.09, 0.3, 30.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v",
					tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{"50% of 100", 100.0, 50.0, 50.0},
		{"Margin derate", 0.3, 80.0, 0.24},
		{"0% of value", 100.0, 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyPercentage(tt.value, tt.percentage)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v",
					tt.value, tt.percentage, result, tt.expected)
			}
		})
	}
}
