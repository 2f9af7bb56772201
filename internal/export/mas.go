package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Denys/transformer-designer/internal/design"
)

// MAS document framing. The schema reference tracks the OpenMagnetics MAS
// specification, https://github.com/OpenMagnetics/MAS.
const (
	masSchema     = "https://openmagnetics.github.io/MAS/schemas/MAS.json"
	masVersion    = "0.9.0"
	masTimeLayout = "2006-01-02T15:04:05.000000Z"
	masNotes      = "Generated by Transformer Designer - McLyman/Erickson methodology"
)

// masFamilies maps catalog geometry names onto MAS shape family identifiers.
var masFamilies = map[string]string{
	"E": "e", "EE": "e", "EI": "ei",
	"ETD": "etd", "ER": "er", "EQ": "eq",
	"PQ": "pq", "PM": "pm", "P": "p",
	"RM": "rm", "POT": "pot",
	"T": "t", "TOROID": "t",
	"U": "u", "UI": "ui", "UU": "uu",
}

type masDocument struct {
	Schema   string      `json:"$schema"`
	Version  string      `json:"version"`
	Inputs   masInputs   `json:"inputs"`
	Magnetic masMagnetic `json:"magnetic"`
	Outputs  masOutputs  `json:"outputs"`
	Metadata masMetadata `json:"metadata"`
}

type masInputs struct {
	DesignRequirements masDesignRequirements `json:"designRequirements"`
	OperatingPoints    []masOperatingPoint   `json:"operatingPoints"`
}

type masDesignRequirements struct {
	Name                   string        `json:"name"`
	TurnsRatioRange        masRange      `json:"turnsRatioRange"`
	Isolation              masIsolation  `json:"isolation"`
	InsulationRequirements masInsulation `json:"insulationRequirements"`
}

type masRange struct {
	Minimum float64 `json:"minimum"`
	Nominal float64 `json:"nominal"`
	Maximum float64 `json:"maximum"`
}

type masIsolation struct {
	Type string `json:"type"`
}

type masInsulation struct {
	PollutionDegree     int    `json:"pollutionDegree"`
	OvervoltageCategory string `json:"overvoltageCategory"`
}

type masOperatingPoint struct {
	Name        string          `json:"name"`
	Conditions  masConditions   `json:"conditions"`
	Excitations []masExcitation `json:"excitationsPerWinding"`
}

type masConditions struct {
	AmbientTemperature float64 `json:"ambientTemperature"`
	Cooling            string  `json:"cooling"`
}

type masExcitation struct {
	Frequency float64   `json:"frequency"`
	Current   masSignal `json:"current"`
	Voltage   masSignal `json:"voltage"`
}

type masSignal struct {
	Waveform  *masWaveform `json:"waveform,omitempty"`
	Processed masProcessed `json:"processed"`
}

type masWaveform struct {
	Data []masPoint `json:"data"`
}

type masPoint struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

type masProcessed struct {
	RMS  float64 `json:"rms"`
	Peak float64 `json:"peak"`
}

type masMagnetic struct {
	Core masCore `json:"core"`
	Coil masCoil `json:"coil"`
}

type masCore struct {
	Name                   string            `json:"name"`
	FunctionalDescription  masCoreFunctional `json:"functionalDescription"`
	GeometricalDescription masCoreGeometry   `json:"geometricalDescription"`
	ProcessedDescription   masCoreProcessed  `json:"processedDescription"`
	ManufacturerInfo       masManufacturer   `json:"manufacturerInfo"`
}

type masCoreFunctional struct {
	Type     string   `json:"type"`
	Material string   `json:"material"`
	Shape    masShape `json:"shape"`
	Gapping  []masGap `json:"gapping"`
}

type masShape struct {
	Family string `json:"family"`
	Name   string `json:"name"`
}

type masGap struct {
	Type   string  `json:"type"`
	Length float64 `json:"length"`
}

type masCoreGeometry struct {
	Type       string        `json:"type"`
	Dimensions masDimensions `json:"dimensions"`
}

type masDimensions struct {
	A float64 `json:"A"`
	B float64 `json:"B"`
	C float64 `json:"C"`
}

type masCoreProcessed struct {
	EffectiveParameters masEffective       `json:"effectiveParameters"`
	WindingWindows      []masWindingWindow `json:"windingWindows"`
}

type masEffective struct {
	EffectiveArea   float64 `json:"effectiveArea"`
	EffectiveLength float64 `json:"effectiveLength"`
	EffectiveVolume float64 `json:"effectiveVolume"`
	MinimumArea     float64 `json:"minimumArea"`
}

type masWindingWindow struct {
	Area   float64 `json:"area"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type masManufacturer struct {
	Name         string `json:"name"`
	Reference    string `json:"reference"`
	DatasheetURL string `json:"datasheetUrl"`
}

type masCoil struct {
	FunctionalDescription []masCoilWinding `json:"functionalDescription"`
	LayersDescription     []masLayer       `json:"layersDescription"`
}

type masCoilWinding struct {
	Name            string  `json:"name"`
	NumberTurns     int     `json:"numberTurns"`
	NumberParallels int     `json:"numberParallels"`
	IsolationSide   string  `json:"isolationSide"`
	Wire            masWire `json:"wire"`
}

type masWire struct {
	Type               string      `json:"type"`
	Strand             *masStrand  `json:"strand,omitempty"`
	NumberConductors   int         `json:"numberConductors,omitempty"`
	OuterDiameter      float64     `json:"outerDiameter,omitempty"`
	ConductingDiameter float64     `json:"conductingDiameter,omitempty"`
	Material           string      `json:"material,omitempty"`
	Coating            *masCoating `json:"coating,omitempty"`
	Standard           string      `json:"standard,omitempty"`
}

type masStrand struct {
	Type               string  `json:"type"`
	ConductingDiameter float64 `json:"conductingDiameter"`
	Material           string  `json:"material"`
}

type masCoating struct {
	Type              string `json:"type"`
	TemperatureRating int    `json:"temperatureRating"`
}

type masLayer struct {
	Type        string  `json:"type"`
	Winding     string  `json:"winding,omitempty"`
	Orientation string  `json:"orientation,omitempty"`
	Material    string  `json:"material,omitempty"`
	Thickness   float64 `json:"thickness,omitempty"`
}

type masOutputs struct {
	CoreLosses            masCoreLosses    `json:"coreLosses"`
	WindingLosses         masWindingLosses `json:"windingLosses"`
	Temperature           masTemperature   `json:"temperature"`
	MagnetizingInductance masInductance    `json:"magnetizingInductance"`
	LeakageInductance     masInductance    `json:"leakageInductance"`
	Efficiency            masEfficiency    `json:"efficiency"`
}

type masCoreLosses struct {
	Origin string        `json:"origin"`
	Method string        `json:"method"`
	Losses []masCoreLoss `json:"losses"`
}

type masCoreLoss struct {
	LossDensity float64 `json:"lossDensity"`
	Loss        float64 `json:"loss"`
}

type masWindingLosses struct {
	Origin string           `json:"origin"`
	Losses []masWindingLoss `json:"losses"`
}

type masWindingLoss struct {
	Name      string  `json:"name"`
	DCLoss    float64 `json:"dcLoss"`
	ACLoss    float64 `json:"acLoss"`
	TotalLoss float64 `json:"totalLoss"`
}

type masTemperature struct {
	Origin             string         `json:"origin"`
	Method             string         `json:"method"`
	SurfaceTemperature masSurfaceTemp `json:"surfaceTemperature"`
	TemperatureRise    float64        `json:"temperatureRise"`
}

type masSurfaceTemp struct {
	Maximum float64 `json:"maximum"`
}

type masInductance struct {
	Origin     string  `json:"origin"`
	Inductance float64 `json:"inductance"`
}

type masEfficiency struct {
	Percent   float64 `json:"percent"`
	TotalLoss float64 `json:"totalLoss"`
}

type masMetadata struct {
	UUID      string  `json:"uuid"`
	CreatedAt string  `json:"createdAt"`
	Tool      masTool `json:"tool"`
	Notes     string  `json:"notes"`
}

type masTool struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// WriteMAS writes the design as a pretty-printed MAS JSON document.
func WriteMAS(w io.Writer, result *design.TransformerResult, req design.TransformerRequirements) error {
	doc := buildMAS(result, req, masMetadata{
		UUID:      uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(masTimeLayout),
		Tool:      masTool{Name: toolName, Version: toolVersion},
		Notes:     masNotes,
	})
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// buildMAS assembles the document. Metadata arrives from the caller so the
// body stays deterministic for a given design.
func buildMAS(result *design.TransformerResult, req design.TransformerRequirements, meta masMetadata) masDocument {
	return masDocument{
		Schema:   masSchema,
		Version:  masVersion,
		Inputs:   masBuildInputs(result, req),
		Magnetic: masBuildMagnetic(result),
		Outputs:  masBuildOutputs(result),
		Metadata: meta,
	}
}

func masBuildInputs(result *design.TransformerResult, req design.TransformerRequirements) masInputs {
	ratio := result.TurnsRatio
	reqs := masDesignRequirements{
		Name: "Transformer Design",
		TurnsRatioRange: masRange{
			Minimum: ratio * 0.95,
			Nominal: ratio,
			Maximum: ratio * 1.05,
		},
		Isolation:              masIsolation{Type: "functional"},
		InsulationRequirements: masInsulation{PollutionDegree: 2, OvervoltageCategory: "II"},
	}

	eff := req.EfficiencyPct / 100
	var ip, is float64
	if req.PrimaryVoltageV > 0 && eff > 0 {
		ip = req.OutputPowerW / (req.PrimaryVoltageV * eff)
	}
	if req.SecondaryVoltageV > 0 {
		is = req.OutputPowerW / req.SecondaryVoltageV
	}

	point := masOperatingPoint{
		Name: "Primary Operating Point",
		Conditions: masConditions{
			AmbientTemperature: req.AmbientTempC,
			Cooling:            req.Cooling,
		},
		Excitations: []masExcitation{
			{
				Frequency: req.FrequencyHz,
				Current: masSignal{
					Waveform:  &masWaveform{Data: masWaveformData(ip, req.Waveform, req.DutyCycle)},
					Processed: masProcessed{RMS: ip, Peak: masPeak(ip, req.Waveform)},
				},
				Voltage: masSignal{
					Waveform:  &masWaveform{Data: masWaveformData(req.PrimaryVoltageV, req.Waveform, req.DutyCycle)},
					Processed: masProcessed{RMS: req.PrimaryVoltageV, Peak: masPeak(req.PrimaryVoltageV, req.Waveform)},
				},
			},
			{
				Frequency: req.FrequencyHz,
				Current: masSignal{
					Processed: masProcessed{RMS: is, Peak: masPeak(is, req.Waveform)},
				},
				Voltage: masSignal{
					Processed: masProcessed{RMS: req.SecondaryVoltageV, Peak: masPeak(req.SecondaryVoltageV, req.Waveform)},
				},
			},
		},
	}

	return masInputs{
		DesignRequirements: reqs,
		OperatingPoints:    []masOperatingPoint{point},
	}
}

func masBuildMagnetic(result *design.TransformerResult) masMagnetic {
	core := result.Core
	winding := result.Winding

	centerLegM := math.Sqrt(core.AeCM2) * 1e-2
	windowM := math.Sqrt(core.WaCM2) * 1e-2

	masCoreDef := masCore{
		Name: core.PartNumber,
		FunctionalDescription: masCoreFunctional{
			Type:     "two-piece set",
			Material: core.Material,
			Shape: masShape{
				Family: masFamily(core.Geometry),
				Name:   core.PartNumber,
			},
			Gapping: []masGap{},
		},
		GeometricalDescription: masCoreGeometry{
			Type: "half-set",
			Dimensions: masDimensions{
				A: centerLegM * 3,
				B: windowM * 1.5,
				C: centerLegM * 1.2,
			},
		},
		ProcessedDescription: masCoreProcessed{
			EffectiveParameters: masEffective{
				EffectiveArea:   core.AeCM2 * 1e-4,
				EffectiveLength: core.LmCM * 1e-2,
				EffectiveVolume: core.VeCM3 * 1e-6,
				MinimumArea:     core.AeCM2 * 1e-4 * 0.95,
			},
			WindingWindows: []masWindingWindow{
				{
					Area:   core.WaCM2 * 1e-4,
					Width:  windowM * 0.8,
					Height: windowM * 1.2,
				},
			},
		},
		ManufacturerInfo: masManufacturer{
			Name:         core.Manufacturer,
			Reference:    core.PartNumber,
			DatasheetURL: core.DatasheetURL,
		},
	}

	coil := masCoil{
		FunctionalDescription: []masCoilWinding{
			{
				Name:            "Primary",
				NumberTurns:     winding.PrimaryTurns,
				NumberParallels: winding.PrimaryStrands,
				IsolationSide:   "primary",
				Wire:            masBuildWire(winding.PrimaryWireAWG, winding.PrimaryWireDiaMM, winding.PrimaryStrands),
			},
			{
				Name:            "Secondary",
				NumberTurns:     winding.SecondaryTurns,
				NumberParallels: winding.SecondaryStrands,
				IsolationSide:   "secondary",
				Wire:            masBuildWire(winding.SecondaryWireAWG, winding.SecondaryWireDiaMM, winding.SecondaryStrands),
			},
		},
		LayersDescription: masBuildLayers(winding),
	}

	return masMagnetic{Core: masCoreDef, Coil: coil}
}

func masBuildOutputs(result *design.TransformerResult) masOutputs {
	losses := result.Losses
	thermal := result.Thermal

	var magnetizing, leakage float64
	if result.MagnetizingUH != nil {
		magnetizing = *result.MagnetizingUH * 1e-6
	}
	if result.LeakageUH != nil {
		leakage = *result.LeakageUH * 1e-6
	}

	return masOutputs{
		CoreLosses: masCoreLosses{
			Origin: "calculated",
			Method: result.DesignMethod,
			Losses: []masCoreLoss{
				{
					LossDensity: losses.CoreLossDensityMWCm3 * 1000,
					Loss:        losses.CoreLossW,
				},
			},
		},
		WindingLosses: masWindingLosses{
			Origin: "calculated",
			Losses: []masWindingLoss{
				{
					Name:      "Primary",
					DCLoss:    losses.PrimaryCopperLossW * 0.7,
					ACLoss:    losses.PrimaryCopperLossW * 0.3,
					TotalLoss: losses.PrimaryCopperLossW,
				},
				{
					Name:      "Secondary",
					DCLoss:    losses.SecondaryCopperLossW * 0.7,
					ACLoss:    losses.SecondaryCopperLossW * 0.3,
					TotalLoss: losses.SecondaryCopperLossW,
				},
			},
		},
		Temperature: masTemperature{
			Origin:             "calculated",
			Method:             "mclyman_empirical",
			SurfaceTemperature: masSurfaceTemp{Maximum: thermal.HotspotTempC},
			TemperatureRise:    thermal.TemperatureRiseC,
		},
		MagnetizingInductance: masInductance{Origin: "calculated", Inductance: magnetizing},
		LeakageInductance:     masInductance{Origin: "calculated", Inductance: leakage},
		Efficiency: masEfficiency{
			Percent:   losses.EfficiencyPct,
			TotalLoss: losses.TotalLossW,
		},
	}
}

// masFamily maps a catalog geometry onto its MAS shape family, defaulting to
// the E family for unknown geometries.
func masFamily(geometry string) string {
	if family, ok := masFamilies[strings.ToUpper(geometry)]; ok {
		return family
	}
	return "e"
}

// masBuildWire emits a litz specification when the winding is stranded and a
// plain enameled round wire otherwise.
func masBuildWire(awg int, diaMM float64, strands int) masWire {
	if strands > 1 {
		return masWire{
			Type: "litz",
			Strand: &masStrand{
				Type:               "round",
				ConductingDiameter: diaMM / float64(strands) * 1e-3,
				Material:           "copper",
			},
			NumberConductors: strands,
			OuterDiameter:    diaMM * 1e-3,
		}
	}
	wire := masWire{
		Type:               "round",
		ConductingDiameter: diaMM * 1e-3,
		Material:           "copper",
		Coating:            &masCoating{Type: "enameled", TemperatureRating: 180},
	}
	if awg > 0 {
		wire.Standard = fmt.Sprintf("AWG %d", awg)
	}
	return wire
}

// masBuildLayers lays out conduction layers per winding with a polyimide
// insulation layer between primary and secondary.
func masBuildLayers(winding design.WindingDesign) []masLayer {
	var layers []masLayer
	for i := 0; i < winding.PrimaryLayers; i++ {
		layers = append(layers, masLayer{Type: "conduction", Winding: "Primary", Orientation: "horizontal"})
	}
	layers = append(layers, masLayer{Type: "insulation", Material: "polyimide", Thickness: 0.05e-3})
	for i := 0; i < winding.SecondaryLayers; i++ {
		layers = append(layers, masLayer{Type: "conduction", Winding: "Secondary", Orientation: "horizontal"})
	}
	return layers
}

// masWaveformData samples one period of the excitation for the MAS waveform
// block. Amplitudes are RMS; the sinusoid is scaled to its peak.
func masWaveformData(amplitude float64, waveform string, dutyCycle float64) []masPoint {
	switch waveform {
	case "sinusoidal":
		points := make([]masPoint, 0, 8)
		for i := 0; i < 8; i++ {
			t := float64(i) / 8
			points = append(points, masPoint{
				Time:  t,
				Value: amplitude * math.Sqrt2 * math.Sin(2*math.Pi*t),
			})
		}
		return points
	case "square":
		return []masPoint{
			{Time: 0, Value: amplitude},
			{Time: dutyCycle - 0.001, Value: amplitude},
			{Time: dutyCycle, Value: -amplitude},
			{Time: 1 - 0.001, Value: -amplitude},
			{Time: 1, Value: amplitude},
		}
	case "triangular":
		return []masPoint{
			{Time: 0, Value: 0},
			{Time: 0.25, Value: amplitude},
			{Time: 0.5, Value: 0},
			{Time: 0.75, Value: -amplitude},
			{Time: 1, Value: 0},
		}
	}
	return []masPoint{
		{Time: 0, Value: amplitude},
		{Time: 1, Value: amplitude},
	}
}

// masPeak converts an RMS amplitude to its peak for the processed block.
func masPeak(rms float64, waveform string) float64 {
	if waveform == "sinusoidal" {
		return rms * math.Sqrt2
	}
	return rms
}
