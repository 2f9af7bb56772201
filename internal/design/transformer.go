package design

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/Denys/transformer-designer/internal/catalog"
	"github.com/Denys/transformer-designer/internal/crossval"
	"github.com/Denys/transformer-designer/pkg/constants"
	"github.com/Denys/transformer-designer/pkg/losses"
	"github.com/Denys/transformer-designer/pkg/mathutil"
	"github.com/Denys/transformer-designer/pkg/sizing"
	"github.com/Denys/transformer-designer/pkg/thermal"
	"github.com/Denys/transformer-designer/pkg/winding"
)

// Default material grades when the request does not name one.
const (
	defaultFerriteGrade = "N87"
	defaultSteelGrade   = "M6"
)

// DesignTransformer runs the full transformer synthesis: sizing by the
// selected method, core selection, winding layout, loss and thermal
// evaluation, verification, and cross-validation. When no catalog core can
// serve the requirement it returns a NoMatchResult instead of an error; an
// error means the requirements themselves were unusable.
func (g *Generator) DesignTransformer(ctx context.Context, req TransformerRequirements) (*TransformerResult, *NoMatchResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	pt, err := sizing.ApparentPower(req.OutputPowerW, req.EfficiencyPct)
	if err != nil {
		return nil, nil, err
	}
	kf := sizing.WaveformCoefficient(req.Waveform)

	materialType := "ferrite"
	materialGrade := req.PreferredMaterial
	if req.FrequencyHz > constants.FerriteMinFrequencyHz {
		if materialGrade == "" {
			materialGrade = defaultFerriteGrade
		}
	} else {
		materialType = "silicon_steel"
		if materialGrade == "" {
			materialGrade = defaultSteelGrade
		}
	}
	flux := sizing.SelectFluxDensity(req.FrequencyHz, materialType)
	bmax := flux.BmaxT

	method, _ := resolveMethod(req.Method)
	if method == sizing.MethodAuto {
		method = sizing.SelectMethod(req.RegulationPct, req.OutputPowerW, req.FrequencyHz)
	}

	var (
		requiredAp float64
		kgValue    *float64
		pfePcuOpt  *float64
	)
	switch method {
	case sizing.MethodKg:
		ke := sizing.ElectricalCoefficient(req.FrequencyHz, bmax, kf)
		kg, err := sizing.CoreGeometry(pt, req.RegulationPct, ke)
		if err != nil {
			return nil, nil, err
		}
		geometry := req.PreferredGeometry
		if geometry == "" {
			geometry = "EE"
		}
		requiredAp = sizing.KgToAp(kg, geometry)
		rounded := mathutil.Round(kg, 3)
		kgValue = &rounded
	case sizing.MethodKgfe:
		est, err := sizing.EstimateErickson(req.OutputPowerW, req.PrimaryVoltageV, req.SecondaryVoltageV, req.FrequencyHz, &sizing.EricksonOptions{
			EfficiencyTarget: req.EfficiencyPct / 100,
			Ku:               req.Ku,
			Kf:               kf,
			CurrentDensity:   req.MaxCurrentDensity,
		})
		if err != nil {
			return nil, nil, err
		}
		requiredAp = est.EstimatedApCm4
		ratio := mathutil.Round(est.OptimalPfePcuRatio, 3)
		pfePcuOpt = &ratio
	default:
		requiredAp, err = sizing.AreaProduct(pt, req.FrequencyHz, bmax, req.MaxCurrentDensity, req.Ku, kf)
		if err != nil {
			return nil, nil, err
		}
	}

	candidates, err := g.catalog.FindSuitable(ctx, requiredAp, req.FrequencyHz, req.PreferredGeometry, req.PreferredMaterial, req.ExternalEnabled())
	if err != nil {
		return nil, nil, fmt.Errorf("core search: %w", err)
	}
	if len(candidates) == 0 {
		g.logger.Info("no core satisfies transformer requirement",
			zap.String("op", "design.DesignTransformer"),
			zap.Float64("requiredApCM4", requiredAp),
			zap.Float64("outputPowerW", req.OutputPowerW),
		)
		return nil, g.transformerNoMatch(ctx, req, requiredAp, bmax, kf), nil
	}

	selected := candidates[0]
	core := g.assembleCore(selected, materialType, materialGrade, bmax)

	np, err := winding.Turns(req.PrimaryVoltageV, req.FrequencyHz, bmax, core.AeCM2, kf)
	if err != nil {
		return nil, nil, err
	}
	ns := int(math.Round(float64(np) * req.SecondaryVoltageV / req.PrimaryVoltageV))
	if ns < 1 {
		ns = 1
	}

	iPrimary := pt / (2 * req.PrimaryVoltageV)
	iSecondary := req.OutputPowerW / req.SecondaryVoltageV

	priAreaReq, err := winding.WireArea(iPrimary, req.MaxCurrentDensity)
	if err != nil {
		return nil, nil, err
	}
	secAreaReq, err := winding.WireArea(iSecondary, req.MaxCurrentDensity)
	if err != nil {
		return nil, nil, err
	}
	priSpec, err := winding.SelectWireForFrequency(priAreaReq, req.FrequencyHz)
	if err != nil {
		return nil, nil, err
	}
	secSpec, err := winding.SelectWireForFrequency(secAreaReq, req.FrequencyHz)
	if err != nil {
		return nil, nil, err
	}
	pri := conductorFigures(priSpec)
	sec := conductorFigures(secSpec)

	priLayers := winding.LayersFromGeometry(np, pri.DiaMM, core.WaCM2, core.Geometry).NumLayers
	secLayers := winding.LayersFromGeometry(ns, sec.DiaMM, core.WaCM2, core.Geometry).NumLayers

	opTemp := operatingTemp(req.AmbientTempC, req.MaxTempRiseC)

	// CopperLoss applies the temperature correction itself, so it gets the
	// 20 degree resistance; the reported winding figures use the operating
	// temperature.
	priRdc20, err := winding.DCResistance(np, core.MLTCM, pri.AreaCM2, 20)
	if err != nil {
		return nil, nil, err
	}
	secRdc20, err := winding.DCResistance(ns, core.MLTCM, sec.AreaCM2, 20)
	if err != nil {
		return nil, nil, err
	}
	priRdcOp, err := winding.DCResistance(np, core.MLTCM, pri.AreaCM2, opTemp)
	if err != nil {
		return nil, nil, err
	}
	secRdcOp, err := winding.DCResistance(ns, core.MLTCM, sec.AreaCM2, opTemp)
	if err != nil {
		return nil, nil, err
	}

	priFr := pri.acFactor(req.FrequencyHz, priLayers, opTemp)
	secFr := sec.acFactor(req.FrequencyHz, secLayers, opTemp)

	kuRes, err := winding.WindowUtilization([]winding.WindingCopper{
		{Turns: np, WireAreaCM2: pri.AreaCM2},
		{Turns: ns, WireAreaCM2: sec.AreaCM2},
	}, core.WaCM2)
	if err != nil {
		return nil, nil, err
	}

	// Core loss: lamination cores carry a grade-specific estimate at the
	// peak excursion; ferrites use the Steinmetz fit at half the peak.
	bac := bmax / 2
	var coreLossW, lossDensity float64
	if gradeLoss, ok := g.catalog.GradeLoss(selected, bmax, req.FrequencyHz, 1.0); ok {
		coreLossW = gradeLoss
		if core.VeCM3 > 0 {
			lossDensity = coreLossW / core.VeCM3 * 1000
		}
	} else {
		cl, err := losses.CoreLoss(core.Material, req.FrequencyHz, bac, core.VeCM3, opTemp)
		if err != nil {
			return nil, nil, err
		}
		coreLossW = cl.LossW
		lossDensity = cl.LossDensityMWCm3
	}

	priCopperW, err := losses.CopperLoss(iPrimary, priRdc20, opTemp, priFr)
	if err != nil {
		return nil, nil, err
	}
	secCopperW, err := losses.CopperLoss(iSecondary, secRdc20, opTemp, secFr)
	if err != nil {
		return nil, nil, err
	}
	breakdown := losses.TotalLosses(coreLossW, priCopperW, secCopperW, 0)
	efficiency := losses.Efficiency(req.OutputPowerW, breakdown.TotalLossW)

	thermalRes, err := thermal.AnalyzeSurface(breakdown.TotalLossW, core.AtCM2, req.AmbientTempC, req.MaxTempRiseC, req.Cooling, core.Material)
	if err != nil {
		return nil, nil, err
	}

	var warnings, errs []string
	switch kuRes.Status {
	case constants.StatusError:
		errs = append(errs, fmt.Sprintf("Window overfill: Ku = %.2f > %.1f", kuRes.Ku, constants.KuErrorThreshold))
	case constants.StatusWarning:
		warnings = append(warnings, fmt.Sprintf("Window fill marginal: Ku = %.2f", kuRes.Ku))
	}
	switch thermalRes.Status {
	case constants.StatusError:
		errs = append(errs, fmt.Sprintf("Thermal limit exceeded: Tr = %.1f°C", thermalRes.TemperatureRiseC))
	case constants.StatusWarning:
		warnings = append(warnings, fmt.Sprintf("Thermal margin low: %.1f°C", thermalRes.MarginToTargetC))
	}
	if efficiency < req.EfficiencyPct {
		warnings = append(warnings, fmt.Sprintf("Efficiency %.1f%% below target %g%%", efficiency, req.EfficiencyPct))
	}
	satMargin := 0.0
	if core.BsatT > 0 {
		satMargin = (core.BsatT - bmax) / core.BsatT * 100
	}
	if satMargin < constants.LowSaturationMarginPct {
		warnings = append(warnings, fmt.Sprintf("Low saturation margin: %.1f%% below Bsat", satMargin))
	}

	electrical := VerdictPass
	for _, w := range warnings {
		if strings.Contains(strings.ToLower(w), "efficiency") {
			electrical = VerdictWarning
		}
	}

	viable := len(errs) == 0

	var alternatives []AlternativeCore
	for _, c := range candidates[1:] {
		if len(alternatives) == 3 {
			break
		}
		material := c.Material
		if material == "" {
			material = materialGrade
		}
		source := c.Source
		if source == "" {
			source = catalog.SourceLocal
		}
		alternatives = append(alternatives, AlternativeCore{
			PartNumber:   c.PartNumber,
			Manufacturer: c.Manufacturer,
			Geometry:     c.Geometry,
			Material:     material,
			ApCM4:        c.ApCM4,
			Source:       source,
			DatasheetURL: c.DatasheetURL,
		})
	}

	validation := g.validator.Validate(crossval.Summary{
		DesignMethod:     method,
		PrimaryVoltageV:  req.PrimaryVoltageV,
		FrequencyHz:      req.FrequencyHz,
		Waveform:         req.Waveform,
		OutputPowerW:     req.OutputPowerW,
		EfficiencyTarget: req.EfficiencyPct,
		Cooling:          req.Cooling,
		PrimaryTurns:     np,
		BmaxT:            bmax,
		BacT:             bac,
		BsatT:            core.BsatT,
		AeCM2:            core.AeCM2,
		VeCM3:            core.VeCM3,
		AtCM2:            core.AtCM2,
		Material:         core.Material,
		CoreLossW:        coreLossW,
		TotalLossW:       breakdown.TotalLossW,
		EfficiencyPct:    efficiency,
		TemperatureRiseC: thermalRes.TemperatureRiseC,
		Ku:               kuRes.Ku,
	})

	result := &TransformerResult{
		DesignMethod:     method,
		DesignMethodName: sizing.MethodDisplayName(method),
		CalculatedApCM4:  mathutil.Round(requiredAp, 3),
		CalculatedKgCM5:  kgValue,
		OptimalPfePcu:    pfePcuOpt,
		Core:             core,
		AlternativeCores: alternatives,
		Winding: WindingDesign{
			PrimaryTurns:     np,
			PrimaryWireAWG:   pri.AWG,
			PrimaryWireDiaMM: mathutil.Round(pri.DiaMM, 3),
			PrimaryStrands:   pri.Strands,
			PrimaryLayers:    priLayers,
			PrimaryRdcMOhm:   mathutil.Round(priRdcOp*1000, 2),
			PrimaryRacRdc:    mathutil.Round(priFr, 3),

			SecondaryTurns:     ns,
			SecondaryWireAWG:   sec.AWG,
			SecondaryWireDiaMM: mathutil.Round(sec.DiaMM, 3),
			SecondaryStrands:   sec.Strands,
			SecondaryLayers:    secLayers,
			SecondaryRdcMOhm:   mathutil.Round(secRdcOp*1000, 2),
			SecondaryRacRdc:    mathutil.Round(secFr, 3),

			TotalKu:  mathutil.Round(kuRes.Ku, 3),
			KuStatus: kuRes.Status,
		},
		TurnsRatio: mathutil.Round(float64(ns)/float64(np), 4),
		Losses: LossAnalysis{
			CoreLossW:            mathutil.Round(coreLossW, 3),
			CoreLossDensityMWCm3: mathutil.Round(lossDensity, 1),
			PrimaryCopperLossW:   mathutil.Round(priCopperW, 3),
			SecondaryCopperLossW: mathutil.Round(secCopperW, 3),
			TotalCopperLossW:     mathutil.Round(breakdown.TotalCopperLossW, 3),
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

	g.logger.Info("transformer design complete",
		zap.String("op", "design.DesignTransformer"),
		zap.String("method", method),
		zap.String("core", core.PartNumber),
		zap.Float64("efficiencyPct", result.Losses.EfficiencyPct),
		zap.Bool("viable", viable),
	)
	return result, nil, nil
}
