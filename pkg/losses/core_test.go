package losses

import (
	"math"
	"testing"
)

func TestCoefficients(t *testing.T) {
	tests := []struct {
		name     string
		material string
		expected SteinmetzCoefficients
	}{
		{"Generic ferrite", "ferrite", SteinmetzCoefficients{157, 1.3, 2.5}},
		{"N87 uppercase", "N87", SteinmetzCoefficients{225, 1.3, 2.5}},
		{"3C95 mixed case", "3c95", SteinmetzCoefficients{84, 1.25, 2.4}},
		{"Silicon steel", "silicon_steel", SteinmetzCoefficients{300, 1.5, 2.0}},
		{"M6 grade", "M6", SteinmetzCoefficients{300, 1.5, 2.0}},
		{"Kool Mu", "Kool_Mu", SteinmetzCoefficients{320, 1.3, 2.0}},
		{"Unknown falls back to ferrite", "unobtainium", SteinmetzCoefficients{157, 1.3, 2.5}},
		{"Whitespace trimmed", " n87 ", SteinmetzCoefficients{225, 1.3, 2.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Coefficients(tt.material)
			if result != tt.expected {
				t.Errorf("Coefficients(%q) = %+v, expected %+v", tt.material, result, tt.expected)
			}
		})
	}
}

func TestCoreLossDensity(t *testing.T) {
	tests := []struct {
		name          string
		material      string
		frequencyHz   float64
		bacT          float64
		temperatureC  float64
		expectedRange []float64
	}{
		{"Ferrite at calibration temp", "ferrite", 100e3, 0.1, 100, []float64{195, 200}},
		{"Ferrite at room temp", "ferrite", 100e3, 0.1, 25, []float64{210, 215}},
		{"N87 at calibration temp", "N87", 100e3, 0.1, 100, []float64{280, 287}},
		{"N87 at datasheet anchor", "N87", 100e3, 0.05, 100, []float64{48, 52}},
		{"M19 line frequency", "M19", 60, 1.5, 100, []float64{19.5, 20.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CoreLossDensity(tt.material, tt.frequencyHz, tt.bacT, tt.temperatureC)
			if err != nil {
				t.Fatalf("CoreLossDensity() unexpected error: %v", err)
			}
			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CoreLossDensity() = %g, expected range [%g, %g]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestCoreLossDensityTemperatureCorrection(t *testing.T) {
	atCalibration, err := CoreLossDensity("ferrite", 100e3, 0.1, 100)
	if err != nil {
		t.Fatalf("CoreLossDensity() unexpected error: %v", err)
	}
	atRoom, err := CoreLossDensity("ferrite", 100e3, 0.1, 25)
	if err != nil {
		t.Fatalf("CoreLossDensity() unexpected error: %v", err)
	}
	atHot, err := CoreLossDensity("ferrite", 100e3, 0.1, 140)
	if err != nil {
		t.Fatalf("CoreLossDensity() unexpected error: %v", err)
	}
	if atRoom <= atCalibration {
		t.Errorf("ferrite loss at 25C (%g) should exceed loss at 100C (%g)", atRoom, atCalibration)
	}
	if atHot <= atCalibration {
		t.Errorf("ferrite loss at 140C (%g) should exceed loss at 100C (%g)", atHot, atCalibration)
	}
}

func TestCoreLossDensityNoCorrectionForSteel(t *testing.T) {
	cold, err := CoreLossDensity("M19", 60, 1.5, 25)
	if err != nil {
		t.Fatalf("CoreLossDensity() unexpected error: %v", err)
	}
	hot, err := CoreLossDensity("M19", 60, 1.5, 100)
	if err != nil {
		t.Fatalf("CoreLossDensity() unexpected error: %v", err)
	}
	if cold != hot {
		t.Errorf("steel loss should not vary with temperature: %g vs %g", cold, hot)
	}
}

func TestCoreLossMonotonicity(t *testing.T) {
	base, err := CoreLoss("ferrite", 100e3, 0.1, 10, 100)
	if err != nil {
		t.Fatalf("CoreLoss() unexpected error: %v", err)
	}
	higherFlux, err := CoreLoss("ferrite", 100e3, 0.2, 10, 100)
	if err != nil {
		t.Fatalf("CoreLoss() unexpected error: %v", err)
	}
	higherFreq, err := CoreLoss("ferrite", 200e3, 0.1, 10, 100)
	if err != nil {
		t.Fatalf("CoreLoss() unexpected error: %v", err)
	}
	largerCore, err := CoreLoss("ferrite", 100e3, 0.1, 20, 100)
	if err != nil {
		t.Fatalf("CoreLoss() unexpected error: %v", err)
	}

	if higherFlux.LossW <= base.LossW {
		t.Errorf("higher flux should increase core loss: %g vs %g", higherFlux.LossW, base.LossW)
	}
	if higherFreq.LossW <= base.LossW {
		t.Errorf("higher frequency should increase core loss: %g vs %g", higherFreq.LossW, base.LossW)
	}
	if largerCore.LossW <= base.LossW {
		t.Errorf("larger volume should increase core loss: %g vs %g", largerCore.LossW, base.LossW)
	}
}

func TestCoreLossDensityScalesToVolume(t *testing.T) {
	result, err := CoreLoss("ferrite", 100e3, 0.1, 10, 100)
	if err != nil {
		t.Fatalf("CoreLoss() unexpected error: %v", err)
	}
	expected := result.LossDensityMWCm3 * 10 / 1000
	if math.Abs(result.LossW-expected) > 1e-12 {
		t.Errorf("CoreLoss().LossW = %g, expected %g from density", result.LossW, expected)
	}
}

func TestCoreLossInvalid(t *testing.T) {
	if _, err := CoreLossDensity("ferrite", 0, 0.1, 100); err == nil {
		t.Errorf("CoreLossDensity() expected error for zero frequency")
	}
	if _, err := CoreLossDensity("ferrite", 100e3, -0.1, 100); err == nil {
		t.Errorf("CoreLossDensity() expected error for negative flux")
	}
	if _, err := CoreLoss("ferrite", 100e3, 0.1, -1, 100); err == nil {
		t.Errorf("CoreLoss() expected error for negative volume")
	}
}

func TestCoreLossFromDatasheet(t *testing.T) {
	data := map[DatasheetPoint]float64{
		{FrequencyHz: 100e3, FluxT: 0.1}: 0.5,
		{FrequencyHz: 200e3, FluxT: 0.2}: 2.0,
	}

	result, err := CoreLossFromDatasheet(0.3, 120e3, 0.12, data)
	if err != nil {
		t.Fatalf("CoreLossFromDatasheet() unexpected error: %v", err)
	}
	if math.Abs(result-0.15) > 1e-9 {
		t.Errorf("CoreLossFromDatasheet() = %g, expected 0.15 from nearest point", result)
	}

	if _, err := CoreLossFromDatasheet(0.3, 120e3, 0.12, nil); err == nil {
		t.Errorf("CoreLossFromDatasheet() expected error for empty data")
	}
}

func TestSiliconSteelGradeLoss(t *testing.T) {
	tests := []struct {
		name          string
		refWPerKg     float64
		frequencyHz   float64
		fluxT         float64
		dutyCycle     float64
		weightG       float64
		expectedRange []float64
	}{
		{"Reference point", 1.15, 50, 1.5, 1.0, 1000, []float64{1.14, 1.16}},
		{"60Hz scaling", 1.15, 60, 1.5, 1.0, 1000, []float64{1.5, 1.6}},
		{"Half duty", 1.15, 60, 1.5, 0.5, 1000, []float64{0.75, 0.80}},
		{"Lighter core", 1.15, 50, 1.5, 1.0, 500, []float64{0.57, 0.58}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SiliconSteelGradeLoss(tt.refWPerKg, tt.frequencyHz, tt.fluxT, tt.dutyCycle, tt.weightG)
			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("SiliconSteelGradeLoss() = %.4f, expected range [%.4f, %.4f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}
