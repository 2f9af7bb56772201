package sizing

import (
	"fmt"
	"math"
	"strings"

	"github.com/Denys/transformer-designer/pkg/constants"
)

// kpByFamily maps core geometry families to the Kp constant used to convert
// a core geometry requirement Kg into an equivalent area product.
var kpByFamily = map[string]float64{
	"EE":     48,
	"ETD":    48,
	"PQ":     45,
	"RM":     40,
	"POT":    25,
	"TOROID": 30,
	"EI":     50,
	"UI":     55,
}

// kpDefault applies when the geometry family is not in the table.
const kpDefault = 48.0

// ElectricalCoefficient calculates McLyman's electrical conditions
// coefficient Ke for the Kg method.
//
//	Ke = 0.145 * Kf^2 * f^2 * Bmax^2 * 10^-4
func ElectricalCoefficient(frequencyHz, bmaxT, kf float64) float64 {
	return 0.145 * kf * kf * frequencyHz * frequencyHz * bmaxT * bmaxT * 1e-4
}

// CoreGeometry calculates the required core geometry constant Kg for a
// regulation-driven design.
//
//	Kg = (Pt * 10^4) / (2 * Ke * alpha)  [cm^5]
func CoreGeometry(ptVA, regulationPct, ke float64) (float64, error) {
	if ptVA <= 0 || regulationPct <= 0 || ke <= 0 {
		return 0, fmt.Errorf("all core geometry inputs must be positive")
	}
	return (ptVA * 1e4) / (2 * ke * regulationPct), nil
}

// KgToAp converts a core geometry requirement into an equivalent area
// product using the family-specific Kp constant.
//
//	Ap = Kp * Kg^0.8
func KgToAp(kgCm5 float64, geometry string) float64 {
	kp, ok := kpByFamily[strings.ToUpper(strings.TrimSpace(geometry))]
	if !ok {
		kp = kpDefault
	}
	return kp * math.Pow(kgCm5, 0.8)
}

// RegulationFromWindings computes the voltage regulation from winding
// resistances and load currents. Resistances are given in milliohms.
func RegulationFromWindings(ipA, rpMilliOhm, isA, rsMilliOhm, voV float64) float64 {
	if voV == 0 {
		return 0
	}
	drop := ipA*rpMilliOhm/1000 + isA*rsMilliOhm/1000
	return drop / voV * constants.PercentageMultiplier
}
