package winding

import (
	"math"
	"testing"
)

func TestWindowUtilization(t *testing.T) {
	windings := []WindingCopper{
		{Turns: 19, WireAreaCM2: 0.00518},
		{Turns: 5, WireAreaCM2: 0.021},
	}

	result, err := WindowUtilization(windings, 1.0)
	if err != nil {
		t.Fatalf("WindowUtilization() unexpected error: %v", err)
	}

	expectedCopper := 19*0.00518 + 5*0.021
	if math.Abs(result.CopperAreaCM2-expectedCopper) > 1e-9 {
		t.Errorf("WindowUtilization().CopperAreaCM2 = %v, expected %v", result.CopperAreaCM2, expectedCopper)
	}
	expectedKu := expectedCopper * 1.3
	if math.Abs(result.Ku-expectedKu) > 1e-9 {
		t.Errorf("WindowUtilization().Ku = %v, expected %v", result.Ku, expectedKu)
	}
	if math.Abs(result.WithInsulation-expectedKu) > 1e-9 {
		t.Errorf("WindowUtilization().WithInsulation = %v, expected %v", result.WithInsulation, expectedKu)
	}
	if result.Status != "ok" {
		t.Errorf("WindowUtilization().Status = %q, expected ok", result.Status)
	}
}

func TestWindowUtilizationStatus(t *testing.T) {
	tests := []struct {
		name           string
		turns          int
		wireAreaCm2    float64
		windowAreaCm2  float64
		expectedStatus string
	}{
		{"Comfortable fill", 34, 0.01, 1.0, "ok"},
		{"Marginal fill", 36, 0.01, 1.0, "warning"},
		{"Overfilled", 50, 0.01, 1.0, "error"},
		{"Just under warning threshold", 1, 0.346077, 1.0, "ok"},
		{"Just over warning threshold", 1, 0.346308, 1.0, "warning"},
		{"Just over error threshold", 1, 0.461769, 1.0, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windings := []WindingCopper{{Turns: tt.turns, WireAreaCM2: tt.wireAreaCm2}}
			result, err := WindowUtilization(windings, tt.windowAreaCm2)
			if err != nil {
				t.Fatalf("WindowUtilization() unexpected error: %v", err)
			}
			if result.Status != tt.expectedStatus {
				t.Errorf("WindowUtilization() Ku=%.4f Status = %q, expected %q",
					result.Ku, result.Status, tt.expectedStatus)
			}
		})
	}
}

func TestWindowUtilizationEmptyWindings(t *testing.T) {
	result, err := WindowUtilization(nil, 1.0)
	if err != nil {
		t.Fatalf("WindowUtilization() unexpected error: %v", err)
	}
	if result.Ku != 0 {
		t.Errorf("WindowUtilization().Ku = %v, expected 0 for no windings", result.Ku)
	}
	if result.Status != "ok" {
		t.Errorf("WindowUtilization().Status = %q, expected ok", result.Status)
	}
}

func TestWindowUtilizationInvalidWindow(t *testing.T) {
	windings := []WindingCopper{{Turns: 10, WireAreaCM2: 0.005}}
	if _, err := WindowUtilization(windings, 0); err == nil {
		t.Errorf("WindowUtilization() expected error for zero window area")
	}
	if _, err := WindowUtilization(windings, -1); err == nil {
		t.Errorf("WindowUtilization() expected error for negative window area")
	}
}
