package sizing

import (
	"fmt"
	"math"

	"github.com/Denys/transformer-designer/pkg/constants"
	"github.com/Denys/transformer-designer/pkg/mathutil"
)

// Erickson method defaults, from "Fundamentals of Power Electronics".
const (
	ericksonDefaultEfficiency = 0.98
	ericksonDefaultKu         = 0.4
	ericksonDefaultKf         = 4.0
	ericksonDefaultAlpha      = 1.46
	ericksonDefaultBeta       = 2.75
)

// KgErickson calculates Erickson's core geometry constant, which
// characterizes a core's copper loss performance.
//
//	Kg = (Ac^2 * Wa) / MLT  [cm^5]
func KgErickson(acCm2, waCm2, mltCm float64) float64 {
	return acCm2 * acCm2 * waCm2 / mltCm
}

// Kgfe calculates Erickson's loss-optimized core geometry constant.
//
//	Kgfe = (Wa * Ac^2 * Ku) / (MLT * lm)
func Kgfe(acCm2, waCm2, mltCm, lmCm, ku float64) float64 {
	return waCm2 * acCm2 * acCm2 * ku / (mltCm * lmCm)
}

// RequiredKg calculates the core geometry an inductor design demands given
// its inductance, current, flux, and winding resistance limits.
func RequiredKg(inductanceUH, imaxA, bmaxT, rmaxOhm, ku float64) float64 {
	lH := inductanceUH * 1e-6
	kg := (constants.CopperResistivityOhmCmHot * lH * lH * imaxA * imaxA) /
		(bmaxT * bmaxT * rmaxOhm * ku)
	return kg * 1e8
}

// FluxOptimization holds the minimum-total-loss operating point found by
// OptimalACFlux.
type FluxOptimization struct {
	BacT                    float64
	CoreLossW               float64
	CopperLossW             float64
	TotalLossW              float64
	PfePcuRatio             float64
	TheoreticalOptimalRatio float64
}

// OptimalACFlux finds the AC flux density that minimizes the sum of core and
// copper loss for a wound core. At the optimum the loss split satisfies
// Pfe/Pcu = beta/2.
func OptimalACFlux(frequencyHz, veCm3, waCm2, mltCm, ku float64, turns int,
	irmsA, steinmetzK, alpha, beta float64) (FluxOptimization, error) {
	if frequencyHz <= 0 || veCm3 <= 0 || waCm2 <= 0 || mltCm <= 0 || turns <= 0 {
		return FluxOptimization{}, fmt.Errorf("all flux optimization inputs must be positive")
	}

	fKHz := frequencyHz / 1000

	// Copper loss varies as Kcu / Bac^2: more flux means fewer turns and
	// less winding resistance.
	awTotal := ku * waCm2 / float64(turns)
	wireLength := float64(turns) * mltCm
	rdcPerBac2 := constants.CopperResistivityOhmCmHot * wireLength / awTotal
	kcu := irmsA * irmsA * rdcPerBac2

	// Core loss varies as Kfe * Bac^beta.
	kfe := steinmetzK * math.Pow(fKHz, alpha) * veCm3 / 1000

	bacOpt := math.Pow((2*kcu)/(beta*kfe), 1/(beta+2))

	pfe := kfe * math.Pow(bacOpt, beta)
	pcu := kcu / (bacOpt * bacOpt)
	ratio := math.Inf(1)
	if pcu > 0 {
		ratio = pfe / pcu
	}

	return FluxOptimization{
		BacT:                    bacOpt / 1000,
		CoreLossW:               pfe,
		CopperLossW:             pcu,
		TotalLossW:              pfe + pcu,
		PfePcuRatio:             ratio,
		TheoreticalOptimalRatio: beta / 2,
	}, nil
}

// EricksonOptions overrides the defaults of EstimateErickson. Zero-valued
// fields keep their defaults.
type EricksonOptions struct {
	EfficiencyTarget float64 // fraction, default 0.98
	Ku               float64 // default 0.4
	Kf               float64 // default 4.0
	SteinmetzBeta    float64 // default 2.75
	CurrentDensity   float64 // A/cm^2, default 400
}

// EricksonEstimate is the sizing estimate produced by the loss-optimized
// transformer method.
type EricksonEstimate struct {
	ApparentPowerVA    float64
	MaxLossW           float64
	OptimalCoreLossW   float64
	OptimalCopperLossW float64
	OptimalPfePcuRatio float64
	EstimatedBacT      float64
	EstimatedApCm4     float64
	PrimaryCurrentA    float64
	SecondaryCurrentA  float64
	TurnsRatio         float64
	Notes              []string
}

// EstimateErickson sizes a transformer for minimum total loss. It splits the
// loss budget at the optimal Pfe/Pcu ratio and estimates the required area
// product from a frequency-derated flux excursion.
func EstimateErickson(outputPowerW, vpriV, vsecV, frequencyHz float64, opts *EricksonOptions) (EricksonEstimate, error) {
	if outputPowerW <= 0 || vpriV <= 0 || vsecV <= 0 || frequencyHz <= 0 {
		return EricksonEstimate{}, fmt.Errorf("all design inputs must be positive")
	}

	eta := ericksonDefaultEfficiency
	ku := ericksonDefaultKu
	kf := ericksonDefaultKf
	beta := ericksonDefaultBeta
	j := constants.DefaultCurrentDensity
	if opts != nil {
		if opts.EfficiencyTarget > 0 {
			eta = opts.EfficiencyTarget
		}
		if opts.Ku > 0 {
			ku = opts.Ku
		}
		if opts.Kf > 0 {
			kf = opts.Kf
		}
		if opts.SteinmetzBeta > 0 {
			beta = opts.SteinmetzBeta
		}
		if opts.CurrentDensity > 0 {
			j = opts.CurrentDensity
		}
	}

	pt := outputPowerW * (1 + 1/eta)
	plossMax := outputPowerW * (1 - eta) / eta

	pfeTarget := plossMax * beta / (beta + 2)
	pcuTarget := plossMax * 2 / (beta + 2)

	// Typical ferrite flux excursion falls with the square root of
	// frequency; roughly 100 mT at 100 kHz.
	fKHz := frequencyHz / 1000
	bacEstimate := mathutil.Clamp(0.3/math.Sqrt(fKHz/10), 0.05, 0.2)

	apCm4 := (pt * 1e4) / (kf * ku * bacEstimate * j * frequencyHz)

	return EricksonEstimate{
		ApparentPowerVA:    pt,
		MaxLossW:           plossMax,
		OptimalCoreLossW:   pfeTarget,
		OptimalCopperLossW: pcuTarget,
		OptimalPfePcuRatio: beta / 2,
		EstimatedBacT:      bacEstimate,
		EstimatedApCm4:     apCm4,
		PrimaryCurrentA:    outputPowerW / (vpriV * eta),
		SecondaryCurrentA:  outputPowerW / vsecV,
		TurnsRatio:         vsecV / vpriV,
		Notes: []string{
			fmt.Sprintf("For minimum loss with beta=%.2f: Pfe/Pcu = %.2f", beta, beta/2),
			fmt.Sprintf("Target: Pfe = %.2fW, Pcu = %.2fW", pfeTarget, pcuTarget),
			"Use this to select a core with Kgfe >= required value",
		},
	}, nil
}
