package design

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/Denys/transformer-designer/internal/crossval"
	"github.com/Denys/transformer-designer/pkg/constants"
	"github.com/Denys/transformer-designer/pkg/losses"
	"github.com/Denys/transformer-designer/pkg/mathutil"
	"github.com/Denys/transformer-designer/pkg/sizing"
	"github.com/Denys/transformer-designer/pkg/thermal"
	"github.com/Denys/transformer-designer/pkg/winding"
)

// Default material grades for inductor service.
const (
	defaultInductorFerrite = "3C95"
	defaultPowderGrade     = "Kool_Mu_60"
)

// Inductors start from a Faraday estimate but never below this turn count;
// very low counts make the gap calculation degenerate.
const minInductorTurns = 5

// DesignInductor runs the energy-storage inductor synthesis: Ap sizing from
// the stored energy, gapped-core selection, air gap and DC-bias flux
// resolution, winding layout, loss and thermal evaluation, verification, and
// cross-validation. A saturated first pass gets one turns increase before
// the margin is reported as found.
func (g *Generator) DesignInductor(ctx context.Context, req InductorRequirements) (*InductorResult, *NoMatchResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	ipk := req.PeakCurrent()
	lH := req.InductanceUH * 1e-6
	energyJ := sizing.EnergyStorage(lH, ipk)

	materialType := "ferrite"
	materialGrade := req.PreferredMaterial
	if req.FrequencyHz > constants.FerriteMinFrequencyHz {
		if materialGrade == "" {
			materialGrade = defaultInductorFerrite
		}
	} else {
		if req.PowderAllowed() {
			materialType = "powder"
		}
		if materialGrade == "" {
			materialGrade = defaultPowderGrade
		}
	}
	flux := sizing.SelectFluxDensity(req.FrequencyHz, materialType)
	bmax := flux.BmaxT * (1 - req.BmaxMarginPct/100)

	requiredAp, err := sizing.InductorAreaProduct(energyJ, bmax, req.MaxCurrentDensity, constants.InductorKu)
	if err != nil {
		return nil, nil, err
	}

	candidates, err := g.catalog.FindEnergyStorage(ctx, requiredAp, req.PreferredGeometry)
	if err != nil {
		return nil, nil, fmt.Errorf("core search: %w", err)
	}
	if len(candidates) == 0 {
		g.logger.Info("no core satisfies inductor requirement",
			zap.String("op", "design.DesignInductor"),
			zap.Float64("requiredApCM4", requiredAp),
			zap.Float64("energyUJ", energyJ*1e6),
		)
		return nil, g.inductorNoMatch(ctx, req, requiredAp, bmax), nil
	}

	core := g.assembleCore(candidates[0], materialType, materialGrade, bmax)

	turns := int(lH * ipk / (bmax * core.AeCM2 * 1e-4))
	if turns < minInductorTurns {
		turns = minInductorTurns
	}
	gap := airGap(lH, turns, core.AeCM2, core.LmCM, core.MuI)
	state := inductorFlux(lH, req.DCCurrentA, req.RippleCurrentA, turns, core.AeCM2, gap.GapMM, core.MuI, core.LmCM)
	satMargin := (core.BsatT - state.BpeakT) / core.BsatT * 100

	// One retry with more turns spreads the same flux over more of the
	// B-H plane before the design is reported as saturating.
	if satMargin < constants.MinSaturationMarginPct {
		turns = int(float64(turns) * 1.2)
		gap = airGap(lH, turns, core.AeCM2, core.LmCM, core.MuI)
		state = inductorFlux(lH, req.DCCurrentA, req.RippleCurrentA, turns, core.AeCM2, gap.GapMM, core.MuI, core.LmCM)
		satMargin = (core.BsatT - state.BpeakT) / core.BsatT * 100
	}

	irms := math.Sqrt(req.DCCurrentA*req.DCCurrentA + math.Pow(req.RippleCurrentA/(2*math.Sqrt(3)), 2))
	wireAreaReq, err := winding.WireArea(irms, req.MaxCurrentDensity)
	if err != nil {
		return nil, nil, err
	}
	spec, err := winding.SelectWireForFrequency(wireAreaReq, req.FrequencyHz)
	if err != nil {
		return nil, nil, err
	}
	wire := conductorFigures(spec)

	kuRes, err := winding.WindowUtilization([]winding.WindingCopper{
		{Turns: turns, WireAreaCM2: wire.AreaCM2},
	}, core.WaCM2)
	if err != nil {
		return nil, nil, err
	}

	layers := int(math.Ceil(float64(turns) / 20))
	if layers < 1 {
		layers = 1
	}

	opTemp := operatingTemp(req.AmbientTempC, req.MaxTempRiseC)
	rdc20, err := winding.DCResistance(turns, core.MLTCM, wire.AreaCM2, 20)
	if err != nil {
		return nil, nil, err
	}
	rdcOp, err := winding.DCResistance(turns, core.MLTCM, wire.AreaCM2, opTemp)
	if err != nil {
		return nil, nil, err
	}
	fr := wire.acFactor(req.FrequencyHz, layers, opTemp)

	calcUH := achievedInductance(turns, core.AeCM2, core.LmCM, state.MuEff) * 1e6
	tolerance := math.Abs(calcUH-req.InductanceUH) / req.InductanceUH * 100

	cl, err := losses.CoreLoss(core.Material, req.FrequencyHz, state.BacT, core.VeCM3, opTemp)
	if err != nil {
		return nil, nil, err
	}
	copperW, err := losses.CopperLoss(irms, rdc20, opTemp, fr)
	if err != nil {
		return nil, nil, err
	}
	breakdown := losses.TotalLosses(cl.LossW, copperW, 0, 0)

	// Throughput power for an energy-storage element is the stored energy
	// cycled at the switching rate.
	throughputW := energyJ * req.FrequencyHz
	efficiency := 100 * (1 - breakdown.TotalLossW/throughputW)

	thermalRes, err := thermal.AnalyzeSurface(breakdown.TotalLossW, core.AtCM2, req.AmbientTempC, req.MaxTempRiseC, req.Cooling, core.Material)
	if err != nil {
		return nil, nil, err
	}

	var warnings, errs []string
	if satMargin < constants.LowSaturationMarginPct {
		warnings = append(warnings, fmt.Sprintf("Low saturation margin: %.1f%%", satMargin))
	}
	if satMargin < 0 {
		errs = append(errs, fmt.Sprintf("Core saturates: Bpeak = %.3f T > Bsat = %.3f T", state.BpeakT, core.BsatT))
	}
	if kuRes.Status == constants.StatusError {
		errs = append(errs, fmt.Sprintf("Window overfill: Ku = %.2f", kuRes.Ku))
	}
	if thermalRes.Status == constants.StatusError {
		errs = append(errs, fmt.Sprintf("Thermal limit exceeded: Tr = %.1f°C", thermalRes.TemperatureRiseC))
	}
	if tolerance > constants.InductanceTolerancePct {
		warnings = append(warnings, fmt.Sprintf("Inductance deviation: %.1f%% from target", tolerance))
	}

	electrical := VerdictPass
	if satMargin < constants.MinSaturationMarginPct {
		electrical = VerdictWarning
	}
	if satMargin < 0 {
		electrical = VerdictFail
	}

	viable := len(errs) == 0

	validation := g.validator.Validate(crossval.Summary{
		DesignMethod:     sizing.MethodAp,
		FrequencyHz:      req.FrequencyHz,
		OutputPowerW:     throughputW,
		Cooling:          req.Cooling,
		BmaxT:            state.BpeakT,
		BacT:             state.BacT,
		BsatT:            core.BsatT,
		AeCM2:            core.AeCM2,
		VeCM3:            core.VeCM3,
		AtCM2:            core.AtCM2,
		Material:         core.Material,
		CoreLossW:        cl.LossW,
		TotalLossW:       breakdown.TotalLossW,
		EfficiencyPct:    efficiency,
		TemperatureRiseC: thermalRes.TemperatureRiseC,
		Ku:               kuRes.Ku,
	})

	result := &InductorResult{
		EnergyUJ:        mathutil.Round(energyJ*1e6, 1),
		CalculatedApCM4: mathutil.Round(requiredAp, 3),
		Core:            core,
		FringingFactor:  mathutil.Round(gap.FringingFactor, 3),

		BdcT:                mathutil.Round(state.BdcT, 4),
		BacT:                mathutil.Round(state.BacT, 4),
		BpeakT:              mathutil.Round(state.BpeakT, 4),
		SaturationMarginPct: mathutil.Round(satMargin, 1),

		Winding: InductorWinding{
			Turns:             turns,
			WireAWG:           wire.AWG,
			WireDiaMM:         mathutil.Round(wire.DiaMM, 3),
			Strands:           wire.Strands,
			Layers:            layers,
			RdcMOhm:           mathutil.Round(rdcOp*1000, 2),
			RacRdc:            mathutil.Round(fr, 3),
			WindowUtilization: mathutil.Round(kuRes.Ku, 3),
			KuStatus:          kuRes.Status,
		},

		CalculatedInductanceUH: mathutil.Round(calcUH, 2),
		InductanceTolerancePct: mathutil.Round(tolerance, 1),

		Losses: LossAnalysis{
			CoreLossW:            mathutil.Round(cl.LossW, 3),
			CoreLossDensityMWCm3: mathutil.Round(cl.LossDensityMWCm3, 1),
			PrimaryCopperLossW:   mathutil.Round(copperW, 3),
			SecondaryCopperLossW: 0,
			TotalCopperLossW:     mathutil.Round(copperW, 3),
			TotalLossW:           mathutil.Round(breakdown.TotalLossW, 3),
			EfficiencyPct:        mathutil.Round(efficiency, 2),
			PfePcuRatio:          mathutil.Round(breakdown.RatioPfePcu, 3),
		},
		Thermal: thermalSummary(thermalRes),
		Verification: VerificationStatus{
			Electrical:      electrical,
			Mechanical:      verdict(kuRes.Status),
			Thermal:         verdict(thermalRes.Status),
			Warnings:        warnings,
			Errors:          errs,
			Recommendations: thermalRes.Recommendations,
		},
		Validation:      &validation,
		DesignViable:    viable,
		ConfidenceScore: confidence(viable, len(warnings)),
	}
	if gap.GapNeeded {
		gapMM := mathutil.Round(gap.GapMM, 3)
		location := "center"
		result.AirGapMM = &gapMM
		result.GapLocation = &location
	}

	g.logger.Info("inductor design complete",
		zap.String("op", "design.DesignInductor"),
		zap.String("core", core.PartNumber),
		zap.Int("turns", turns),
		zap.Float64("gapMM", gap.GapMM),
		zap.Bool("viable", viable),
	)
	return result, nil, nil
}
