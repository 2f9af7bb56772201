package thermal

import (
	"strings"
	"testing"
)

func TestAnalyzeOK(t *testing.T) {
	result, err := Analyze(2.0, 1.0, "EE", 40, 50, CoolingNatural, "ferrite")
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}

	if result.Status != "ok" {
		t.Errorf("Analyze().Status = %q, expected ok", result.Status)
	}
	if result.TemperatureRiseC < 37 || result.TemperatureRiseC > 40 {
		t.Errorf("Analyze().TemperatureRiseC = %.2f, expected range [37, 40]", result.TemperatureRiseC)
	}
	if result.HotspotTempC < 77 || result.HotspotTempC > 80 {
		t.Errorf("Analyze().HotspotTempC = %.2f, expected range [77, 80]", result.HotspotTempC)
	}
	if result.MaterialMaxTempC != 120 {
		t.Errorf("Analyze().MaterialMaxTempC = %v, expected 120 for ferrite", result.MaterialMaxTempC)
	}
	if result.CoolingRecommendation != "adequate" {
		t.Errorf("Analyze().CoolingRecommendation = %q, expected adequate", result.CoolingRecommendation)
	}
	if len(result.Recommendations) != 0 {
		t.Errorf("Analyze().Recommendations = %v, expected none", result.Recommendations)
	}
}

func TestAnalyzeWarningNearTarget(t *testing.T) {
	// Rise lands around 38.7C against a 45C target: under target but
	// inside the 10C margin band.
	result, err := Analyze(2.0, 1.0, "EE", 40, 45, CoolingNatural, "ferrite")
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}

	if result.Status != "warning" {
		t.Errorf("Analyze().Status = %q, expected warning", result.Status)
	}
	if result.CoolingRecommendation != "forced air recommended" {
		t.Errorf("Analyze().CoolingRecommendation = %q, expected forced air recommended", result.CoolingRecommendation)
	}
	if len(result.Recommendations) != 1 || !strings.Contains(result.Recommendations[0], "marginal") {
		t.Errorf("Analyze().Recommendations = %v, expected marginal design note", result.Recommendations)
	}
}

func TestAnalyzeErrorNaturalCooling(t *testing.T) {
	result, err := Analyze(2.0, 1.0, "EE", 40, 30, CoolingNatural, "ferrite")
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}

	if result.Status != "error" {
		t.Errorf("Analyze().Status = %q, expected error", result.Status)
	}
	if len(result.Recommendations) != 4 {
		t.Fatalf("Analyze().Recommendations = %v, expected 4 entries", result.Recommendations)
	}
	if result.Recommendations[0] != "Consider forced air cooling" {
		t.Errorf("first recommendation = %q, expected forced air suggestion", result.Recommendations[0])
	}
	if result.CoolingRecommendation != "forced air recommended" {
		t.Errorf("Analyze().CoolingRecommendation = %q, expected forced air recommended", result.CoolingRecommendation)
	}
}

func TestAnalyzeErrorForcedCooling(t *testing.T) {
	result, err := Analyze(8.0, 1.0, "EE", 40, 20, CoolingForced, "N87")
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}

	if result.Status != "error" {
		t.Errorf("Analyze().Status = %q, expected error", result.Status)
	}
	if len(result.Recommendations) != 3 {
		t.Fatalf("Analyze().Recommendations = %v, expected 3 entries under forced air", result.Recommendations)
	}
	for _, rec := range result.Recommendations {
		if strings.Contains(rec, "forced air") {
			t.Errorf("forced air already in use, recommendation %q should not appear", rec)
		}
	}
	if result.CoolingRecommendation != "heatsink or liquid cooling required" {
		t.Errorf("Analyze().CoolingRecommendation = %q, expected heatsink or liquid cooling required", result.CoolingRecommendation)
	}
}

func TestAnalyzeMaterialLimit(t *testing.T) {
	// Comfortable rise, but the high ambient drives the hotspot past the
	// 120C ferrite limit.
	result, err := Analyze(2.0, 1.0, "EE", 90, 50, CoolingNatural, "ferrite")
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}
	if result.Status != "error" {
		t.Errorf("Analyze().Status = %q, expected error past material limit", result.Status)
	}
	if result.MarginToMaterialC >= 0 {
		t.Errorf("Analyze().MarginToMaterialC = %.2f, expected negative", result.MarginToMaterialC)
	}

	// Silicon steel has headroom to 150C at the same operating point.
	steel, err := Analyze(2.0, 1.0, "EI", 90, 50, CoolingNatural, "M6")
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}
	if steel.MaterialMaxTempC != 150 {
		t.Errorf("Analyze().MaterialMaxTempC = %v, expected 150 for M6", steel.MaterialMaxTempC)
	}
	if steel.Status == "error" && steel.MarginToMaterialC < 0 {
		t.Errorf("M6 hotspot %.2f should stay under 150", steel.HotspotTempC)
	}
}

func TestMaterialMaxTempC(t *testing.T) {
	tests := []struct {
		material string
		expected float64
	}{
		{"ferrite", 120},
		{"N87", 120},
		{"3C95", 120},
		{"MnZn ferrite", 120},
		{"M6", 150},
		{"Kool_Mu", 150},
		{"2605SA1", 150},
	}

	for _, tt := range tests {
		if got := materialMaxTempC(tt.material); got != tt.expected {
			t.Errorf("materialMaxTempC(%q) = %v, expected %v", tt.material, got, tt.expected)
		}
	}
}

func TestAnalyzeInvalidAp(t *testing.T) {
	if _, err := Analyze(2.0, 0, "EE", 40, 50, CoolingNatural, "ferrite"); err == nil {
		t.Errorf("Analyze() expected error for zero area product")
	}
}
