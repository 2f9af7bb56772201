package winding

import (
	"math"
	"strings"
)

// windowAspectRatio estimates the height to width ratio of the winding
// window for a core geometry family.
func windowAspectRatio(geometry string) float64 {
	switch strings.ToUpper(strings.TrimSpace(geometry)) {
	case "E", "EE", "EI", "ETD", "ER", "EQ", "EFD", "EP":
		return 1.5
	case "PQ", "PM", "P", "POT":
		return 1.2
	case "RM":
		return 0.8
	case "T", "TC", "TOROID":
		return 1.0
	case "U", "UI", "UU":
		return 1.3
	default:
		return 1.2
	}
}

// LayerEstimate describes the winding layout derived from the core window
// geometry and wire size.
type LayerEstimate struct {
	NumLayers        int     `json:"num_layers"`
	TurnsPerLayer    int     `json:"turns_per_layer"`
	BobbinWidthCM    float64 `json:"bobbin_width_cm"`
	WindowWidthCM    float64 `json:"window_width_cm"`
	WindowHeightCM   float64 `json:"window_height_cm"`
	LayerThicknessCM float64 `json:"layer_thickness_cm"`
	StackHeightCM    float64 `json:"stack_height_cm"`
}

// LayersFromGeometry estimates how many layers a winding needs from the
// window dimensions implied by the core family aspect ratio and the wire
// diameter with insulation. Invalid inputs yield a single-layer estimate.
func LayersFromGeometry(numTurns int, wireDiameterMM, windowAreaCm2 float64, geometry string) LayerEstimate {
	if numTurns <= 0 || wireDiameterMM <= 0 || windowAreaCm2 <= 0 {
		return LayerEstimate{
			NumLayers:        1,
			TurnsPerLayer:    numTurns,
			BobbinWidthCM:    1.0,
			WindowHeightCM:   1.0,
			LayerThicknessCM: 0.1,
		}
	}

	aspect := windowAspectRatio(geometry)
	windowWidth := math.Sqrt(windowAreaCm2 / aspect)
	windowHeight := windowAreaCm2 / windowWidth

	// Practical winding width leaves room for bobbin flanges and margins.
	bobbinWidth := windowWidth * 0.85

	// Wire diameter with insulation, converted to cm.
	wireEffDia := (wireDiameterMM / 10) * 1.1

	const fillFactor = 0.75
	turnsPerLayer := int(bobbinWidth / wireEffDia * fillFactor)
	if turnsPerLayer < 1 {
		turnsPerLayer = 1
	}
	numLayers := int(math.Ceil(float64(numTurns) / float64(turnsPerLayer)))

	// Layer thickness includes interlayer insulation.
	layerThickness := wireEffDia + 0.01

	// The stack has to fit the window height with some margin.
	if float64(numLayers)*layerThickness > windowHeight*0.9 {
		maxLayers := int(windowHeight * 0.9 / layerThickness)
		if maxLayers > 0 {
			numLayers = maxLayers
			turnsPerLayer = int(math.Ceil(float64(numTurns) / float64(numLayers)))
		}
	}

	return LayerEstimate{
		NumLayers:        numLayers,
		TurnsPerLayer:    turnsPerLayer,
		BobbinWidthCM:    bobbinWidth,
		WindowWidthCM:    windowWidth,
		WindowHeightCM:   windowHeight,
		LayerThicknessCM: layerThickness,
		StackHeightCM:    float64(numLayers) * layerThickness,
	}
}
