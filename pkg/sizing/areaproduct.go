package sizing

import (
	"fmt"

	"github.com/Denys/transformer-designer/pkg/constants"
)

// AreaProduct calculates the required core area product for a transformer
// using McLyman's Ap method.
//
//	Ap = (Pt * 10^4) / (Kf * Ku * Bmax * J * f)  [cm^4]
func AreaProduct(ptVA, frequencyHz, bmaxT, jACm2, ku, kf float64) (float64, error) {
	if ptVA <= 0 || frequencyHz <= 0 || bmaxT <= 0 || jACm2 <= 0 || kf <= 0 {
		return 0, fmt.Errorf("all area product inputs must be positive")
	}
	if ku < constants.KuLowerBound || ku > constants.KuUpperBound {
		return 0, fmt.Errorf("window utilization must be between %.1f and %.1f, got %.2f",
			constants.KuLowerBound, constants.KuUpperBound, ku)
	}
	return (ptVA * 1e4) / (kf * ku * bmaxT * jACm2 * frequencyHz), nil
}

// EnergyStorage returns the peak energy stored in an inductor.
//
//	E = 0.5 * L * Ipk^2  [J]
func EnergyStorage(inductanceH, peakCurrentA float64) float64 {
	return 0.5 * inductanceH * peakCurrentA * peakCurrentA
}

// InductorAreaProduct calculates the required core area product for an
// energy storage inductor.
//
//	Ap = (2 * E * 10^4) / (Bmax * J * Ku)  [cm^4]
func InductorAreaProduct(energyJ, bmaxT, jACm2, ku float64) (float64, error) {
	if energyJ <= 0 || bmaxT <= 0 || jACm2 <= 0 {
		return 0, fmt.Errorf("all area product inputs must be positive")
	}
	if ku < constants.KuLowerBound || ku > constants.KuUpperBound {
		return 0, fmt.Errorf("window utilization must be between %.1f and %.1f, got %.2f",
			constants.KuLowerBound, constants.KuUpperBound, ku)
	}
	return (2 * energyJ * 1e4) / (bmaxT * jACm2 * ku), nil
}

// CurrentDensityForAp inverts the area product formula to find the current
// density a given core demands at the specified operating point.
func CurrentDensityForAp(ptVA, frequencyHz, bmaxT, ku, kf, apCm4 float64) (float64, error) {
	if ptVA <= 0 || frequencyHz <= 0 || bmaxT <= 0 || kf <= 0 || apCm4 <= 0 {
		return 0, fmt.Errorf("all current density inputs must be positive")
	}
	if ku < constants.KuLowerBound || ku > constants.KuUpperBound {
		return 0, fmt.Errorf("window utilization must be between %.1f and %.1f, got %.2f",
			constants.KuLowerBound, constants.KuUpperBound, ku)
	}
	return (ptVA * 1e4) / (kf * ku * bmaxT * frequencyHz * apCm4), nil
}
