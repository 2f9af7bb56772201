package winding

import (
	"fmt"
	"math"

	"github.com/Denys/transformer-designer/pkg/constants"
)

// SkinDepthMM calculates the skin depth of copper at the given frequency
// and conductor temperature. Zero or negative frequency returns +Inf.
//
//	delta = 66.2 / sqrt(f) * sqrt(1 + alpha*(T-20))  [mm]
func SkinDepthMM(frequencyHz, temperatureC float64) float64 {
	if frequencyHz <= 0 {
		return math.Inf(1)
	}
	rhoFactor := 1 + constants.CopperTempCoefficient*(temperatureC-20)
	return constants.SkinDepthCoefficientMM / math.Sqrt(frequencyHz) * math.Sqrt(rhoFactor)
}

// DCResistance calculates the DC resistance of a winding.
//
//	Rdc = rho(T) * N * MLT / Aw  [ohm]
func DCResistance(turns int, mltCm, wireAreaCm2, temperatureC float64) (float64, error) {
	if wireAreaCm2 <= 0 {
		return 0, fmt.Errorf("wire area must be positive, got %.6f", wireAreaCm2)
	}
	lengthCm := float64(turns) * mltCm
	rho := constants.CopperResistivityOhmCm * (1 + constants.CopperTempCoefficient*(temperatureC-20))
	return rho * lengthCm / wireAreaCm2, nil
}

// ACResistanceFactor estimates the AC to DC resistance ratio of a winding
// from skin and proximity effects using the Dowell approximation.
func ACResistanceFactor(wireDiameterMM, frequencyHz float64, numLayers int, temperatureC float64) float64 {
	if frequencyHz <= 0 {
		return 1.0
	}

	deltaMM := SkinDepthMM(frequencyHz, temperatureC)
	dDelta := wireDiameterMM / deltaMM

	if dDelta < 0.5 {
		// Wire much smaller than skin depth.
		return 1.0
	}

	var frSkin float64
	if dDelta <= 2 {
		frSkin = 1 + math.Pow(dDelta, 4)/48
	} else {
		// High-frequency limit.
		frSkin = dDelta / 2
	}

	frProx := 1.0
	if numLayers > 1 {
		frProx = 1 + (float64(numLayers*numLayers-1)/3)*math.Pow(dDelta, 4)/48
	}

	fr := frSkin * frProx
	if fr < 1.0 {
		return 1.0
	}
	return fr
}
