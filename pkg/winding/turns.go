package winding

import (
	"fmt"
	"math"
)

// Turns calculates the number of turns needed to support a voltage at the
// given flux excursion using Faraday's law.
//
//	N = (V * 10^4) / (Kf * Bac * f * Ae)
func Turns(voltageV, frequencyHz, bacT, aeCm2, kf float64) (int, error) {
	if voltageV <= 0 || frequencyHz <= 0 || bacT <= 0 || aeCm2 <= 0 || kf <= 0 {
		return 0, fmt.Errorf("all turns inputs must be positive")
	}
	n := (voltageV * 1e4) / (kf * bacT * frequencyHz * aeCm2)
	return int(math.Ceil(n)), nil
}

// WireArea calculates the conductor cross-section required to carry a
// current at the target current density.
//
//	Aw = Irms / J  [cm^2]
func WireArea(currentRmsA, currentDensityACm2 float64) (float64, error) {
	if currentRmsA < 0 || currentDensityACm2 <= 0 {
		return 0, fmt.Errorf("current must be non-negative and density must be positive")
	}
	return currentRmsA / currentDensityACm2, nil
}
