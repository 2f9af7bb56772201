// Package sizing provides electromagnetic sizing calculations for transformer
// and inductor design, covering the McLyman area product and core geometry
// methods along with Erickson's loss-optimized method.
package sizing

import (
	"fmt"
	"math"

	"github.com/Denys/transformer-designer/pkg/constants"
)

// Waveform identifiers accepted by the sizing calculations.
const (
	WaveformSinusoidal  = "sinusoidal"
	WaveformSquare      = "square"
	WaveformTriangular  = "triangular"
	WaveformTrapezoidal = "trapezoidal"
)

// ApparentPower calculates the total apparent power a transformer must
// handle from its output power and efficiency target.
func ApparentPower(outputPowerW, efficiencyPct float64) (float64, error) {
	etaFrac := efficiencyPct / constants.PercentageMultiplier
	if etaFrac <= 0 || etaFrac > 1 {
		return 0, fmt.Errorf("efficiency must be between 0 and 100 percent, got %.2f", efficiencyPct)
	}
	return outputPowerW * (1 + 1/etaFrac), nil
}

// WaveformCoefficient returns the form coefficient Kf for a given excitation
// waveform. Unknown waveforms fall back to the sinusoidal value.
func WaveformCoefficient(waveform string) float64 {
	switch waveform {
	case WaveformSinusoidal:
		return constants.KfSinusoidal
	case WaveformSquare:
		return constants.KfSquare
	case WaveformTriangular:
		return constants.KfTriangular
	default:
		return constants.KfDefault
	}
}

// EffectiveACFlux derives the AC flux excursion available for core loss and
// turns calculations from the waveform. Trapezoidal drive derates the
// excursion as the duty cycle moves away from 50 percent.
func EffectiveACFlux(waveform string, bmaxT, dutyCycle float64) (float64, error) {
	if bmaxT <= 0 {
		return 0, fmt.Errorf("peak flux density must be positive, got %.3f", bmaxT)
	}
	if dutyCycle <= 0 || dutyCycle > 1 {
		return 0, fmt.Errorf("duty cycle must be in (0, 1], got %.3f", dutyCycle)
	}

	switch waveform {
	case WaveformTrapezoidal:
		return bmaxT * (1 - math.Abs(0.5-dutyCycle)/0.5), nil
	default:
		return bmaxT, nil
	}
}
