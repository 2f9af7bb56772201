package winding

import (
	"fmt"
	"math"
)

// Wire type identifiers.
const (
	WireTypeSolid = "solid"
	WireTypeLitz  = "litz"
)

// defaultMaxAWG is the finest gauge considered for solid winding wire.
const defaultMaxAWG = 40

// WireSelection describes a solid (possibly parallel-stranded) wire choice.
type WireSelection struct {
	AWG               int     `json:"awg"`
	DiameterMM        float64 `json:"diameter_mm"`
	AreaCM2           float64 `json:"area_cm2"`
	Strands           int     `json:"strands"`
	SkinEffectLimited bool    `json:"skin_effect_limited"`
	SkinDepthMM       float64 `json:"skin_depth_mm"`
}

// SelectWireGauge selects a wire gauge providing the required conductor
// area. When the single wire that carries the current would exceed twice
// the skin depth in diameter, the selection parallels strands of the
// finest gauge instead.
func SelectWireGauge(requiredAreaCm2, frequencyHz float64, maxAWG int) (WireSelection, error) {
	if requiredAreaCm2 <= 0 {
		return WireSelection{}, fmt.Errorf("required area must be positive, got %.6f", requiredAreaCm2)
	}
	if maxAWG <= 0 {
		maxAWG = defaultMaxAWG
	}

	skinDepth := math.Inf(1)
	if frequencyHz > 0 {
		skinDepth = SkinDepthMM(frequencyHz, 20)
	}
	maxWireDia := 2 * skinDepth

	for awg := maxAWG; awg >= 0; awg-- {
		wire := WireByAWG(awg)
		if wire.AreaCM2 < requiredAreaCm2 {
			continue
		}

		if frequencyHz > 0 && wire.DiameterMM > maxWireDia {
			// Skin limited: parallel strands of the finest gauge.
			strand := WireByAWG(maxAWG)
			strands := int(math.Ceil(requiredAreaCm2 / strand.AreaCM2))
			return WireSelection{
				AWG:               strand.AWG,
				DiameterMM:        strand.DiameterMM,
				AreaCM2:           strand.AreaCM2 * float64(strands),
				Strands:           strands,
				SkinEffectLimited: true,
				SkinDepthMM:       skinDepth,
			}, nil
		}

		return WireSelection{
			AWG:               wire.AWG,
			DiameterMM:        wire.DiameterMM,
			AreaCM2:           wire.AreaCM2,
			Strands:           1,
			SkinEffectLimited: false,
			SkinDepthMM:       skinDepth,
		}, nil
	}

	// The largest single wire is still too small; parallel strands of
	// the finest gauge.
	strand := WireByAWG(maxAWG)
	strands := int(math.Ceil(requiredAreaCm2 / strand.AreaCM2))
	return WireSelection{
		AWG:               strand.AWG,
		DiameterMM:        strand.DiameterMM,
		AreaCM2:           strand.AreaCM2 * float64(strands),
		Strands:           strands,
		SkinEffectLimited: frequencyHz > 0,
		SkinDepthMM:       skinDepth,
	}, nil
}

// WireSpec is the result of automatic wire selection: either a solid wire
// choice or a Litz construction.
type WireSpec struct {
	Type  string         `json:"type"`
	Solid *WireSelection `json:"solid,omitempty"`
	Litz  *LitzDesign    `json:"litz,omitempty"`
}

// litzPreferredAboveHz is the frequency above which Litz wire is tried first.
const litzPreferredAboveHz = 50000

// SelectWireForFrequency chooses between solid and Litz wire for the
// operating frequency. Litz is preferred at high frequency when the
// construction is actually effective there.
func SelectWireForFrequency(requiredAreaCm2, frequencyHz float64) (WireSpec, error) {
	if frequencyHz >= litzPreferredAboveHz {
		litz, err := DesignLitz(requiredAreaCm2, frequencyHz, nil)
		if err != nil {
			return WireSpec{}, err
		}
		if litz.EffectiveAtFrequency {
			return WireSpec{Type: WireTypeLitz, Litz: &litz}, nil
		}
	}

	solid, err := SelectWireGauge(requiredAreaCm2, frequencyHz, defaultMaxAWG)
	if err != nil {
		return WireSpec{}, err
	}
	return WireSpec{Type: WireTypeSolid, Solid: &solid}, nil
}
