// Package thermal provides surface dissipation and temperature rise
// estimates based on McLyman's empirical thermal model.
package thermal

import (
	"fmt"
	"math"
	"strings"

	"github.com/Denys/transformer-designer/pkg/constants"
)

// Cooling methods.
const (
	CoolingNatural = "natural"
	CoolingForced  = "forced"
)

// ksByFamily maps core geometry families to the surface area coefficient
// in At = Ks * sqrt(Ap).
var ksByFamily = map[string]float64{
	"EE":     39,
	"ETD":    41,
	"PQ":     35,
	"RM":     33,
	"POT":    32,
	"TOROID": 48,
	"EI":     42,
	"UI":     45,
}

const ksDefault = 39.0

// SurfaceArea estimates the cooling surface area of a wound core from its
// area product. Unknown geometries use the EE coefficient.
func SurfaceArea(apCm4 float64, geometry string) float64 {
	ks, ok := ksByFamily[strings.ToUpper(strings.TrimSpace(geometry))]
	if !ok {
		ks = ksDefault
	}
	return ks * math.Sqrt(apCm4)
}

// SurfaceDissipation calculates the dissipation density psi in W/cm2.
func SurfaceDissipation(plossW, surfaceAreaCm2 float64) (float64, error) {
	if surfaceAreaCm2 <= 0 {
		return 0, fmt.Errorf("surface area must be positive, got %.2f", surfaceAreaCm2)
	}
	return plossW / surfaceAreaCm2, nil
}

// TemperatureRise calculates the temperature rise above ambient for a
// dissipation density under natural convection. Forced air halves it.
//
//	Tr = 450 * psi^0.826  [C]
func TemperatureRise(psiWCm2 float64, forced bool) float64 {
	if psiWCm2 <= 0 {
		return 0
	}
	rise := constants.TempRiseCoefficient * math.Pow(psiWCm2, constants.TempRiseExponent)
	if forced {
		rise *= constants.ForcedAirFactor
	}
	return rise
}

// MaxDissipationFor inverts the temperature rise formula to the highest
// dissipation density that stays within the target rise.
func MaxDissipationFor(targetRiseC float64) float64 {
	if targetRiseC <= 0 {
		return 0
	}
	return math.Pow(targetRiseC/constants.TempRiseCoefficient, 1/constants.TempRiseExponent)
}

// MaxTotalDissipation calculates the total loss budget for a surface at a
// target rise. Forced air roughly doubles it.
func MaxTotalDissipation(surfaceAreaCm2, targetRiseC float64, forced bool) float64 {
	psiMax := MaxDissipationFor(targetRiseC)
	if forced {
		psiMax *= 2
	}
	return psiMax * surfaceAreaCm2
}

// ThermalResistance estimates the winding to ambient thermal resistance
// in C/W from the cooling surface.
func ThermalResistance(surfaceAreaCm2 float64, forced bool) float64 {
	h := 0.001 // W/(cm2 C), natural convection
	if forced {
		h = 0.003
	}
	return 1 / (h * surfaceAreaCm2)
}

// DissipationTarget keys the reference psi limits by allowed rise and
// cooling method.
type DissipationTarget struct {
	RiseC   float64
	Cooling string
}

// DissipationTargets lists typical dissipation density limits.
var DissipationTargets = map[DissipationTarget]float64{
	{25, CoolingNatural}: 0.03,
	{40, CoolingNatural}: 0.05,
	{50, CoolingNatural}: 0.07,
	{65, CoolingNatural}: 0.10,
	{40, CoolingForced}:  0.10,
	{65, CoolingForced}:  0.15,
}
