// Package winding provides winding synthesis calculations: turns, wire
// gauge selection, Litz wire design, skin and proximity effects, layer
// estimation, and window utilization.
package winding

import (
	"fmt"
	"math"
)

// AWGWire holds the physical dimensions of one wire gauge.
type AWGWire struct {
	AWG        int
	DiameterMM float64
	AreaMM2    float64
	AreaCM2    float64
}

// awgTable lists standard annealed copper wire sizes.
var awgTable = map[int]AWGWire{
	0:  {0, 8.251, 53.48, 0.5348},
	1:  {1, 7.348, 42.41, 0.4241},
	2:  {2, 6.544, 33.63, 0.3363},
	3:  {3, 5.827, 26.67, 0.2667},
	4:  {4, 5.189, 21.15, 0.2115},
	5:  {5, 4.621, 16.77, 0.1677},
	6:  {6, 4.115, 13.30, 0.1330},
	7:  {7, 3.665, 10.55, 0.1055},
	8:  {8, 3.264, 8.366, 0.08366},
	9:  {9, 2.906, 6.632, 0.06632},
	10: {10, 2.588, 5.261, 0.05261},
	11: {11, 2.305, 4.172, 0.04172},
	12: {12, 2.053, 3.309, 0.03309},
	13: {13, 1.828, 2.624, 0.02624},
	14: {14, 1.628, 2.081, 0.02081},
	15: {15, 1.450, 1.650, 0.01650},
	16: {16, 1.291, 1.309, 0.01309},
	17: {17, 1.150, 1.038, 0.01038},
	18: {18, 1.024, 0.823, 0.00823},
	19: {19, 0.912, 0.653, 0.00653},
	20: {20, 0.812, 0.518, 0.00518},
	21: {21, 0.723, 0.411, 0.00411},
	22: {22, 0.644, 0.326, 0.00326},
	23: {23, 0.573, 0.258, 0.00258},
	24: {24, 0.511, 0.205, 0.00205},
	25: {25, 0.455, 0.162, 0.00162},
	26: {26, 0.405, 0.129, 0.00129},
	27: {27, 0.361, 0.102, 0.00102},
	28: {28, 0.321, 0.0810, 0.000810},
	29: {29, 0.286, 0.0642, 0.000642},
	30: {30, 0.255, 0.0509, 0.000509},
	31: {31, 0.227, 0.0404, 0.000404},
	32: {32, 0.202, 0.0320, 0.000320},
	33: {33, 0.180, 0.0254, 0.000254},
	34: {34, 0.160, 0.0201, 0.000201},
	35: {35, 0.143, 0.0160, 0.000160},
	36: {36, 0.127, 0.0127, 0.000127},
	37: {37, 0.113, 0.0100, 0.000100},
	38: {38, 0.101, 0.00797, 0.0000797},
	39: {39, 0.090, 0.00632, 0.0000632},
	40: {40, 0.080, 0.00501, 0.0000501},
	41: {41, 0.071, 0.00397, 0.0000397},
	42: {42, 0.064, 0.00321, 0.0000321},
	43: {43, 0.056, 0.00246, 0.0000246},
	44: {44, 0.051, 0.00204, 0.0000204},
	45: {45, 0.045, 0.00159, 0.0000159},
	46: {46, 0.040, 0.00126, 0.0000126},
}

// WireByAWG returns the dimensions for a wire gauge. Gauges outside the
// table are derived from the AWG diameter formula.
func WireByAWG(awg int) AWGWire {
	if wire, ok := awgTable[awg]; ok {
		return wire
	}
	diameterMM := 0.127 * math.Pow(92, float64(36-awg)/39)
	areaMM2 := math.Pi * (diameterMM / 2) * (diameterMM / 2)
	return AWGWire{AWG: awg, DiameterMM: diameterMM, AreaMM2: areaMM2, AreaCM2: areaMM2 / 100}
}

// AWGFromDiameter finds the closest AWG for a given wire diameter, clamped
// to the 0-40 range used for winding wire.
func AWGFromDiameter(diameterMM float64) (int, error) {
	if diameterMM <= 0 {
		return 0, fmt.Errorf("diameter must be positive, got %.4f", diameterMM)
	}
	n := 36 - 39*math.Log(diameterMM/0.127)/math.Log(92)
	awg := int(math.Round(n))
	if awg < 0 {
		awg = 0
	}
	if awg > 40 {
		awg = 40
	}
	return awg, nil
}
