package winding

import (
	"math"
	"testing"
)

func TestWindowAspectRatio(t *testing.T) {
	tests := []struct {
		name     string
		geometry string
		expected float64
	}{
		{"EE family", "EE", 1.5},
		{"ETD with whitespace", " etd ", 1.5},
		{"PQ family lowercase", "pq", 1.2},
		{"RM wide window", "RM", 0.8},
		{"Toroid", "TOROID", 1.0},
		{"UI", "UI", 1.3},
		{"Unknown defaults", "XFR", 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := windowAspectRatio(tt.geometry)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("windowAspectRatio(%q) = %v, expected %v", tt.geometry, result, tt.expected)
			}
		})
	}
}

func TestLayersFromGeometry(t *testing.T) {
	// 40 turns of AWG 20 in an EE window of 1.77 cm2.
	result := LayersFromGeometry(40, 0.812, 1.77, "EE")

	if result.NumLayers != 6 {
		t.Errorf("LayersFromGeometry().NumLayers = %d, expected 6", result.NumLayers)
	}
	if result.TurnsPerLayer != 7 {
		t.Errorf("LayersFromGeometry().TurnsPerLayer = %d, expected 7", result.TurnsPerLayer)
	}
	if result.NumLayers*result.TurnsPerLayer < 40 {
		t.Errorf("layout holds %d turns, need 40", result.NumLayers*result.TurnsPerLayer)
	}
	if result.WindowWidthCM*result.WindowHeightCM < 1.76 || result.WindowWidthCM*result.WindowHeightCM > 1.78 {
		t.Errorf("window dimensions %.3f x %.3f do not recover the window area",
			result.WindowWidthCM, result.WindowHeightCM)
	}
	if result.BobbinWidthCM >= result.WindowWidthCM {
		t.Errorf("bobbin width %.3f should be under window width %.3f",
			result.BobbinWidthCM, result.WindowWidthCM)
	}
	if result.StackHeightCM > result.WindowHeightCM*0.9 {
		t.Errorf("stack height %.3f exceeds usable window height %.3f",
			result.StackHeightCM, result.WindowHeightCM*0.9)
	}
}

func TestLayersFromGeometryHeightClamp(t *testing.T) {
	// 60 turns of 1mm wire cannot stack 15 layers in a small RM window;
	// the estimate clamps to what fits and packs layers tighter.
	result := LayersFromGeometry(60, 1.0, 0.5, "RM")

	if result.NumLayers != 4 {
		t.Errorf("LayersFromGeometry().NumLayers = %d, expected 4", result.NumLayers)
	}
	if result.TurnsPerLayer != 15 {
		t.Errorf("LayersFromGeometry().TurnsPerLayer = %d, expected 15", result.TurnsPerLayer)
	}
	if result.StackHeightCM > result.WindowHeightCM*0.9 {
		t.Errorf("clamped stack height %.3f still exceeds usable height %.3f",
			result.StackHeightCM, result.WindowHeightCM*0.9)
	}
}

func TestLayersFromGeometryInvalidInputs(t *testing.T) {
	tests := []struct {
		name       string
		numTurns   int
		diameterMM float64
		windowCm2  float64
	}{
		{"Zero turns", 0, 0.812, 1.77},
		{"Zero diameter", 40, 0, 1.77},
		{"Zero window", 40, 0.812, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := LayersFromGeometry(tt.numTurns, tt.diameterMM, tt.windowCm2, "EE")
			if result.NumLayers != 1 {
				t.Errorf("LayersFromGeometry().NumLayers = %d, expected fallback 1", result.NumLayers)
			}
			if result.BobbinWidthCM != 1.0 {
				t.Errorf("LayersFromGeometry().BobbinWidthCM = %v, expected fallback 1.0", result.BobbinWidthCM)
			}
		})
	}
}

func TestLayersFromGeometryFinerWireFitsMoreTurns(t *testing.T) {
	coarse := LayersFromGeometry(100, 0.812, 1.77, "EE")
	fine := LayersFromGeometry(100, 0.255, 1.77, "EE")
	if fine.TurnsPerLayer <= coarse.TurnsPerLayer {
		t.Errorf("finer wire turns per layer %d should exceed coarse %d",
			fine.TurnsPerLayer, coarse.TurnsPerLayer)
	}
	if fine.NumLayers >= coarse.NumLayers {
		t.Errorf("finer wire layers %d should be below coarse %d",
			fine.NumLayers, coarse.NumLayers)
	}
}
