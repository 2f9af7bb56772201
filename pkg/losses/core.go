// Package losses provides core loss, copper loss, and efficiency
// calculations for transformer and inductor designs.
package losses

import (
	"fmt"
	"math"
	"strings"
)

// SteinmetzCoefficients parameterize the core loss power law
// Pv = k * f^alpha * B^beta with f in kHz, B in T, and Pv in mW/cm3.
type SteinmetzCoefficients struct {
	K     float64
	Alpha float64
	Beta  float64
}

// steinmetzTable holds coefficients fitted to manufacturer typical curves:
// ferrites at the 100C loss minimum near 100 kHz / 50 mT, steels at the
// 1.5 T line-frequency point.
var steinmetzTable = map[string]SteinmetzCoefficients{
	"ferrite": {157, 1.3, 2.5},
	"3c95":    {84, 1.25, 2.4},
	"n87":     {225, 1.3, 2.5},
	"3f3":     {134, 1.4, 2.6},

	"silicon_steel": {300, 1.5, 2.0},
	"m6":            {300, 1.5, 2.0},
	"m19":           {800, 1.6, 2.0},

	"amorphous": {70, 1.5, 2.1},
	"2605sa1":   {56, 1.5, 2.1},

	"powder":  {240, 1.2, 2.0},
	"mpp":     {160, 1.2, 2.0},
	"kool_mu": {320, 1.3, 2.0},
}

// Coefficients returns the Steinmetz coefficients for a material name.
// Unknown materials fall back to generic ferrite.
func Coefficients(material string) SteinmetzCoefficients {
	if c, ok := steinmetzTable[strings.ToLower(strings.TrimSpace(material))]; ok {
		return c
	}
	return steinmetzTable["ferrite"]
}

// isFerriteClass reports whether the material gets the ferrite temperature
// correction.
func isFerriteClass(material string) bool {
	lower := strings.ToLower(material)
	if strings.Contains(lower, "ferrite") {
		return true
	}
	switch lower {
	case "3c90", "3c94", "3c95", "n87", "n97", "3f3", "pc40", "pc44":
		return true
	}
	return false
}

// CoreLossDensity calculates the Steinmetz loss density in mW/cm3 with the
// ferrite temperature correction applied around the 100C minimum.
func CoreLossDensity(material string, frequencyHz, bacT, temperatureC float64) (float64, error) {
	if frequencyHz <= 0 {
		return 0, fmt.Errorf("frequency must be positive, got %.1f", frequencyHz)
	}
	if bacT < 0 {
		return 0, fmt.Errorf("AC flux density must be non-negative, got %.4f", bacT)
	}

	c := Coefficients(material)
	fKHz := frequencyHz / 1000
	pv := c.K * math.Pow(fKHz, c.Alpha) * math.Pow(bacT, c.Beta)

	if isFerriteClass(material) {
		pv *= 1 + 0.001*math.Abs(temperatureC-100)
	}
	return pv, nil
}

// CoreLossResult holds the total core loss and its density.
type CoreLossResult struct {
	LossW            float64 `json:"core_loss_W"`
	LossDensityMWCm3 float64 `json:"loss_density_mW_cm3"`
}

// CoreLoss calculates total core loss for a core volume.
//
//	P = Pv * Ve / 1000  [W]
func CoreLoss(material string, frequencyHz, bacT, volumeCm3, temperatureC float64) (CoreLossResult, error) {
	if volumeCm3 < 0 {
		return CoreLossResult{}, fmt.Errorf("core volume must be non-negative, got %.2f", volumeCm3)
	}
	pv, err := CoreLossDensity(material, frequencyHz, bacT, temperatureC)
	if err != nil {
		return CoreLossResult{}, err
	}
	return CoreLossResult{
		LossW:            pv * volumeCm3 / 1000,
		LossDensityMWCm3: pv,
	}, nil
}

// DatasheetPoint keys a manufacturer loss table by operating point.
type DatasheetPoint struct {
	FrequencyHz float64
	FluxT       float64
}

// CoreLossFromDatasheet calculates core loss from manufacturer W/kg data,
// using the nearest tabulated operating point.
func CoreLossFromDatasheet(weightKg, frequencyHz, bacT float64, lossWPerKg map[DatasheetPoint]float64) (float64, error) {
	if len(lossWPerKg) == 0 {
		return 0, fmt.Errorf("no datasheet loss points provided")
	}

	var nearest DatasheetPoint
	best := math.Inf(1)
	for point := range lossWPerKg {
		distance := math.Abs(point.FrequencyHz-frequencyHz) + math.Abs(point.FluxT-bacT)*1000
		if distance < best {
			best = distance
			nearest = point
		}
	}
	return lossWPerKg[nearest] * weightKg, nil
}

// SiliconSteelGradeLoss scales a grade's reference loss at 1.5T/50Hz to the
// operating point.
//
//	P = Pref * (f/50)^1.6 * (B/1.5)^2.0 * duty * weight  [W]
func SiliconSteelGradeLoss(refWPerKg, frequencyHz, fluxT, dutyCycle, weightG float64) float64 {
	scaled := refWPerKg * math.Pow(frequencyHz/50, 1.6) * math.Pow(fluxT/1.5, 2.0) * dutyCycle
	return scaled * weightG / 1000
}
