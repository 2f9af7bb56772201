package design

import (
	"math"

	"github.com/Denys/transformer-designer/pkg/constants"
)

// gapResult describes the air gap required to hit a target inductance on
// an ungapped ferrite core.
type gapResult struct {
	GapNeeded      bool
	GapMM          float64
	FringingFactor float64
}

// fluxState is the DC-biased operating point of a gapped inductor core.
type fluxState struct {
	BdcT   float64
	BacT   float64
	BpeakT float64
	MuEff  float64
}

// airGap sizes the gap from the reluctance budget: the total reluctance
// the target inductance demands, less what the core path supplies, must
// come from the gap. Powder cores with distributed gaps resolve to no
// discrete gap because their low permeability absorbs the full budget.
func airGap(inductanceH float64, turns int, aeCM2, lmCM, muI float64) gapResult {
	if inductanceH <= 0 || turns <= 0 || aeCM2 <= 0 || lmCM <= 0 || muI <= 0 {
		return gapResult{FringingFactor: 1.0}
	}

	aeM2 := aeCM2 * 1e-4
	lmM := lmCM * 1e-2
	n := float64(turns)

	totalReluctance := n * n / inductanceH
	coreReluctance := lmM / (constants.MuZero * muI * aeM2)
	gapReluctance := totalReluctance - coreReluctance
	if gapReluctance <= 0 {
		return gapResult{FringingFactor: 1.0}
	}

	gapMM := gapReluctance * constants.MuZero * aeM2 * 1000

	// Fringing flux bulges around the gap and raises the effective gap
	// area. The correction uses the leg dimension as the reference.
	fringing := 1.0
	if gapMM > 0.01 {
		legMM := math.Sqrt(aeCM2 * 100)
		fringing = 1 + (gapMM/legMM)*math.Log(2*legMM/gapMM)
		if fringing > 2.0 {
			fringing = 2.0
		}
	}

	return gapResult{
		GapNeeded:      true,
		GapMM:          gapMM,
		FringingFactor: fringing,
	}
}

// inductorFlux evaluates the DC bias and AC swing of a gapped (or
// distributed-gap) core at the operating current.
func inductorFlux(inductanceH, dcCurrentA, rippleA float64, turns int, aeCM2, gapMM, muI, lmCM float64) fluxState {
	if turns <= 0 || aeCM2 <= 0 || lmCM <= 0 {
		return fluxState{}
	}

	aeM2 := aeCM2 * 1e-4
	lmM := lmCM * 1e-2
	gapM := gapMM * 1e-3
	n := float64(turns)

	muEff := muI
	if gapM > 0 {
		muEff = lmM / (lmM/muI + gapM)
	}

	bdc := constants.MuZero * muEff * n * dcCurrentA / lmM
	bac := 0.0
	if rippleA > 0 {
		bac = inductanceH * (rippleA / 2) / (n * aeM2)
	}

	return fluxState{
		BdcT:   bdc,
		BacT:   bac,
		BpeakT: bdc + bac,
		MuEff:  muEff,
	}
}

// achievedInductance recomputes the inductance the gapped core actually
// delivers with the final turn count.
func achievedInductance(turns int, aeCM2, lmCM, muEff float64) float64 {
	if turns <= 0 || aeCM2 <= 0 || lmCM <= 0 || muEff <= 0 {
		return 0
	}
	aeM2 := aeCM2 * 1e-4
	lmM := lmCM * 1e-2
	n := float64(turns)
	return constants.MuZero * muEff * n * n * aeM2 / lmM
}
