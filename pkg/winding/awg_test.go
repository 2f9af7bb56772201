package winding

import (
	"math"
	"testing"
)

func TestWireByAWG(t *testing.T) {
	tests := []struct {
		name         string
		awg          int
		expectedDia  float64
		expectedArea float64
	}{
		{"AWG 0", 0, 8.251, 53.48},
		{"AWG 10", 10, 2.588, 5.261},
		{"AWG 20", 20, 0.812, 0.518},
		{"AWG 30", 30, 0.255, 0.0509},
		{"AWG 36", 36, 0.127, 0.0127},
		{"AWG 40", 40, 0.080, 0.00501},
		{"AWG 44", 44, 0.051, 0.00204},
		{"AWG 46", 46, 0.040, 0.00126},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire := WireByAWG(tt.awg)
			if math.Abs(wire.DiameterMM-tt.expectedDia) > 0.001 {
				t.Errorf("WireByAWG(%d).DiameterMM = %v, expected %v", tt.awg, wire.DiameterMM, tt.expectedDia)
			}
			if math.Abs(wire.AreaMM2-tt.expectedArea) > tt.expectedArea*0.01 {
				t.Errorf("WireByAWG(%d).AreaMM2 = %v, expected %v", tt.awg, wire.AreaMM2, tt.expectedArea)
			}
			if math.Abs(wire.AreaCM2-wire.AreaMM2/100) > 1e-9 {
				t.Errorf("WireByAWG(%d) area units disagree: %v cm2 vs %v mm2", tt.awg, wire.AreaCM2, wire.AreaMM2)
			}
		})
	}
}

func TestWireByAWGOutsideTable(t *testing.T) {
	// Gauges beyond the table come from the AWG diameter formula.
	wire := WireByAWG(50)
	expectedDia := 0.127 * math.Pow(92, float64(36-50)/39)
	if math.Abs(wire.DiameterMM-expectedDia) > 1e-6 {
		t.Errorf("WireByAWG(50).DiameterMM = %v, expected %v", wire.DiameterMM, expectedDia)
	}
	if wire.DiameterMM >= WireByAWG(46).DiameterMM {
		t.Errorf("AWG 50 should be finer than AWG 46")
	}
}

func TestAWGTableMonotonicity(t *testing.T) {
	for awg := 1; awg <= 46; awg++ {
		coarser := WireByAWG(awg - 1)
		finer := WireByAWG(awg)
		if finer.DiameterMM >= coarser.DiameterMM {
			t.Errorf("AWG %d diameter %v should be below AWG %d diameter %v",
				awg, finer.DiameterMM, awg-1, coarser.DiameterMM)
		}
		if finer.AreaCM2 >= coarser.AreaCM2 {
			t.Errorf("AWG %d area %v should be below AWG %d area %v",
				awg, finer.AreaCM2, awg-1, coarser.AreaCM2)
		}
	}
}

func TestAWGFromDiameter(t *testing.T) {
	tests := []struct {
		name       string
		diameterMM float64
		expected   int
	}{
		{"AWG 20 diameter", 0.812, 20},
		{"AWG 30 diameter", 0.255, 30},
		{"AWG 40 diameter", 0.080, 40},
		{"AWG 0 diameter", 8.251, 0},
		{"Oversized clamps to 0", 10.0, 0},
		{"Undersized clamps to 40", 0.02, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AWGFromDiameter(tt.diameterMM)
			if err != nil {
				t.Fatalf("AWGFromDiameter() unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("AWGFromDiameter(%v) = %d, expected %d", tt.diameterMM, result, tt.expected)
			}
		})
	}
}

func TestAWGFromDiameterInvalid(t *testing.T) {
	if _, err := AWGFromDiameter(0); err == nil {
		t.Errorf("expected error for zero diameter")
	}
	if _, err := AWGFromDiameter(-1); err == nil {
		t.Errorf("expected error for negative diameter")
	}
}
