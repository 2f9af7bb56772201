package design

import (
	"go.uber.org/zap"

	"github.com/Denys/transformer-designer/internal/catalog"
	"github.com/Denys/transformer-designer/internal/crossval"
	"github.com/Denys/transformer-designer/pkg/constants"
	"github.com/Denys/transformer-designer/pkg/thermal"
	"github.com/Denys/transformer-designer/pkg/winding"
)

// Fallback figures for cores whose catalog entry lacks mechanical detail,
// typical of entries imported from the remote database.
const (
	fallbackMLTCM   = 5.0
	fallbackLmCM    = 5.0
	fallbackWeightG = 100.0
	fallbackBsatT   = 0.4
	fallbackMuI     = 2000.0
)

// Verification verdicts per discipline.
const (
	VerdictPass    = "pass"
	VerdictWarning = "warning"
	VerdictFail    = "fail"
)

// Generator runs the transformer and inductor design pipelines against a
// core catalog.
type Generator struct {
	logger    *zap.Logger
	catalog   catalog.Provider
	validator *crossval.Validator
}

// NewGenerator constructs a Generator backed by the given catalog provider.
func NewGenerator(logger *zap.Logger, provider catalog.Provider) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		logger:    logger,
		catalog:   provider,
		validator: crossval.NewValidator(logger),
	}
}

// assembleCore builds the CoreSelection for a catalog candidate, filling
// missing dimensions with defaults and resolving Bsat and permeability
// through the material database when the entry does not carry them.
func (g *Generator) assembleCore(core catalog.Core, materialType, materialGrade string, operatingBmaxT float64) CoreSelection {
	mat, _ := g.catalog.MaterialFor(materialType, materialGrade)

	material := core.Material
	if material == "" {
		material = materialGrade
	}
	source := core.Source
	if source == "" {
		source = catalog.SourceLocal
	}
	mlt := core.MLTCM
	if mlt <= 0 {
		mlt = fallbackMLTCM
	}
	lm := core.LmCM
	if lm <= 0 {
		lm = fallbackLmCM
	}
	ve := core.VeCM3
	if ve <= 0 {
		ve = core.AeCM2 * lm
	}
	at := core.AtCM2
	if at <= 0 {
		at = thermal.SurfaceArea(core.ApCM4, core.Geometry)
	}
	weight := core.WeightG
	if weight <= 0 {
		weight = fallbackWeightG
	}
	bsat := core.BsatT
	if bsat <= 0 {
		bsat = mat.BsatT
	}
	if bsat <= 0 {
		bsat = fallbackBsatT
	}
	mu := core.MuI
	if mu <= 0 {
		mu = mat.MuI
	}
	if mu <= 0 {
		mu = fallbackMuI
	}

	return CoreSelection{
		Manufacturer: core.Manufacturer,
		PartNumber:   core.PartNumber,
		Geometry:     core.Geometry,
		Material:     material,
		Source:       source,
		DatasheetURL: core.DatasheetURL,
		AeCM2:        core.AeCM2,
		WaCM2:        core.WaCM2,
		ApCM4:        core.ApCM4,
		MLTCM:        mlt,
		LmCM:         lm,
		VeCM3:        ve,
		AtCM2:        at,
		WeightG:      weight,
		BsatT:        bsat,
		BmaxT:        operatingBmaxT,
		MuI:          mu,
	}
}

// conductor flattens a wire specification into the figures the winding
// tables report. Litz bundles report the strand gauge with the bundle's
// outer diameter and combined area.
type conductor struct {
	AWG     int
	DiaMM   float64
	AreaCM2 float64
	Strands int
	Litz    *winding.LitzDesign
}

func conductorFigures(spec winding.WireSpec) conductor {
	if spec.Litz != nil {
		return conductor{
			AWG:     spec.Litz.StrandAWG,
			DiaMM:   spec.Litz.OuterDiameterMM,
			AreaCM2: spec.Litz.TotalAreaCM2,
			Strands: spec.Litz.StrandCount,
			Litz:    spec.Litz,
		}
	}
	return conductor{
		AWG:     spec.Solid.AWG,
		DiaMM:   spec.Solid.DiameterMM,
		AreaCM2: spec.Solid.AreaCM2,
		Strands: spec.Solid.Strands,
	}
}

// acFactor returns the proximity-effect resistance ratio for a conductor.
// Litz bundles carry their own factor from the strand design; solid wire
// uses the Dowell layer estimate.
func (c conductor) acFactor(frequencyHz float64, layers int, temperatureC float64) float64 {
	if c.Litz != nil {
		return c.Litz.ACFactor
	}
	return winding.ACResistanceFactor(c.DiaMM, frequencyHz, layers, temperatureC)
}

// operatingTemp is the average winding temperature used for loss
// evaluation: ambient plus half the allowed rise.
func operatingTemp(ambientC, riseTargetC float64) float64 {
	return ambientC + riseTargetC/2
}

// verdict maps the internal ok/warning/error statuses onto the
// pass/warning/fail verification vocabulary.
func verdict(status string) string {
	switch status {
	case constants.StatusOK:
		return VerdictPass
	case constants.StatusError:
		return VerdictFail
	}
	return status
}

// confidence scores a finished design: 0.9 clean, 0.7 with warnings, 0.3
// once any error exists.
func confidence(viable bool, warningCount int) float64 {
	if viable && warningCount == 0 {
		return 0.9
	}
	if viable {
		return 0.7
	}
	return 0.3
}

// thermalSummary converts the thermal package result to the reporting shape.
func thermalSummary(tr thermal.ThermalResult) ThermalAnalysis {
	return ThermalAnalysis{
		PowerDissipationWCm2:  tr.PowerDissipationWCm2,
		TemperatureRiseC:      tr.TemperatureRiseC,
		HotspotTempC:          tr.HotspotTempC,
		ThermalMarginC:        tr.MarginToTargetC,
		ThermalStatus:         verdict(tr.Status),
		CoolingRecommendation: tr.CoolingRecommendation,
	}
}
