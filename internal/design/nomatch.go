package design

import (
	"context"
	"fmt"
	"math"

	"github.com/Denys/transformer-designer/pkg/constants"
	"github.com/Denys/transformer-designer/pkg/mathutil"
)

// DesignSuggestion proposes one requirement change that would make an
// unbuildable design fit the available catalog.
type DesignSuggestion struct {
	Parameter      string  `json:"parameter"`
	CurrentValue   float64 `json:"current_value"`
	SuggestedValue float64 `json:"suggested_value"`
	Unit           string  `json:"unit"`
	Impact         string  `json:"impact"`
	Feasible       bool    `json:"feasible"`
}

// CoreAlternative is a near-miss core reported alongside a no-match, with
// the power it could actually support.
type CoreAlternative struct {
	PartNumber   string  `json:"part_number"`
	Manufacturer string  `json:"manufacturer"`
	Geometry     string  `json:"geometry"`
	ApCM4        float64 `json:"Ap_cm4"`
	MaxPowerW    float64 `json:"max_power_W"`
	Notes        string  `json:"notes,omitempty"`
}

// NoMatchResult explains why no catalog core satisfies the requirements
// and what to change. It replaces the design result, not an error: the
// requirements were valid, the catalog just cannot serve them.
type NoMatchResult struct {
	NoMatch               bool               `json:"no_match"`
	Message               string             `json:"message"`
	RequiredApCM4         float64            `json:"required_Ap_cm4"`
	AvailableMaxApCM4     float64            `json:"available_max_Ap_cm4"`
	Suggestions           []DesignSuggestion `json:"suggestions"`
	ClosestCores          []CoreAlternative  `json:"closest_cores"`
	AlternativeApproaches []string           `json:"alternative_approaches"`
}

// maxOutputPower inverts the area-product relation for a given core: the
// output power a core of this Ap can carry at the stated operating point.
// The 0.45 factor folds in a typical efficiency and apparent-power margin.
func maxOutputPower(apCM4, frequencyHz, bmaxT, jACm2, ku, kf float64) float64 {
	return apCM4 * kf * ku * bmaxT * jACm2 * frequencyHz / 1e4 * 0.45
}

// transformerNoMatch assembles the recovery payload for a transformer
// request whose required Ap exceeds every catalog core.
func (g *Generator) transformerNoMatch(ctx context.Context, req TransformerRequirements, requiredAp, bmaxT, kf float64) *NoMatchResult {
	res := &NoMatchResult{
		NoMatch:       true,
		RequiredApCM4: mathutil.Round(requiredAp, 2),
	}

	largest, err := g.catalog.Largest(ctx, req.FrequencyHz)
	maxAp := 0.0
	if err == nil {
		maxAp = largest.ApCM4
	}
	res.AvailableMaxApCM4 = mathutil.Round(maxAp, 2)
	res.Message = fmt.Sprintf("Required Ap (%.1f cm⁴) exceeds largest available core (%.1f cm⁴)", requiredAp, maxAp)

	if closest, err := g.catalog.Closest(ctx, requiredAp, req.FrequencyHz, 3); err == nil {
		for _, c := range closest {
			maxP := maxOutputPower(c.ApCM4, req.FrequencyHz, bmaxT, req.MaxCurrentDensity, req.Ku, kf)
			res.ClosestCores = append(res.ClosestCores, CoreAlternative{
				PartNumber:   c.PartNumber,
				Manufacturer: c.Manufacturer,
				Geometry:     c.Geometry,
				ApCM4:        c.ApCM4,
				MaxPowerW:    mathutil.Round(maxP, 1),
				Notes:        fmt.Sprintf("Largest %s core in database", c.Geometry),
			})
		}
	}

	if maxAp > 0 {
		maxP := maxOutputPower(maxAp, req.FrequencyHz, bmaxT, req.MaxCurrentDensity, req.Ku, kf)
		if req.OutputPowerW > maxP {
			res.Suggestions = append(res.Suggestions, DesignSuggestion{
				Parameter:      "output_power_W",
				CurrentValue:   req.OutputPowerW,
				SuggestedValue: mathutil.Round(maxP*0.9, 0),
				Unit:           "W",
				Impact:         fmt.Sprintf("Largest available core (%s) can handle up to ~%.0fW", largest.PartNumber, maxP),
				Feasible:       true,
			})
		}

		if req.FrequencyHz < 500000 {
			suggestedF := req.FrequencyHz * (requiredAp / maxAp) * 1.1
			if suggestedF <= 500000 {
				res.Suggestions = append(res.Suggestions, DesignSuggestion{
					Parameter:      "frequency_Hz",
					CurrentValue:   req.FrequencyHz,
					SuggestedValue: math.Round(suggestedF/1000) * 1000,
					Unit:           "Hz",
					Impact:         fmt.Sprintf("Higher frequency reduces required Ap from %.1f to ~%.1f cm⁴", requiredAp, maxAp),
					Feasible:       true,
				})
			}
		}

		if req.MaxCurrentDensity < 600 {
			suggestedJ := req.MaxCurrentDensity * (requiredAp / maxAp)
			if suggestedJ <= 800 {
				res.Suggestions = append(res.Suggestions, DesignSuggestion{
					Parameter:      "max_current_density_A_cm2",
					CurrentValue:   req.MaxCurrentDensity,
					SuggestedValue: math.Round(suggestedJ/50) * 50,
					Unit:           "A/cm²",
					Impact:         "Higher current density reduces wire size, allowing smaller core (increases losses)",
					Feasible:       suggestedJ <= 600,
				})
			}
		}
	}

	if req.Ku < 0.50 {
		res.Suggestions = append(res.Suggestions, DesignSuggestion{
			Parameter:      "window_utilization_Ku",
			CurrentValue:   req.Ku,
			SuggestedValue: 0.45,
			Unit:           "",
			Impact:         "Higher fill factor allows smaller core (requires careful winding)",
			Feasible:       true,
		})
	}

	res.AlternativeApproaches = []string{
		"Consider using multiple smaller transformers in parallel",
		"Consider silicon steel cores for higher power at lower frequency (50-400Hz)",
		"Explore OpenMagnetics database for a wider core selection",
		"Custom core design may be required for this power level",
	}
	if req.FrequencyHz > 100000 {
		res.AlternativeApproaches = append(
			[]string{"Consider planar magnetics for this power/frequency combination"},
			res.AlternativeApproaches...,
		)
	}

	return res
}

// inductorNoMatch assembles the recovery payload for an inductor request
// whose energy storage exceeds every catalog core.
func (g *Generator) inductorNoMatch(ctx context.Context, req InductorRequirements, requiredAp, bmaxT float64) *NoMatchResult {
	res := &NoMatchResult{
		NoMatch:       true,
		RequiredApCM4: mathutil.Round(requiredAp, 2),
	}

	// An Ap floor of zero admits the whole energy-storage catalog,
	// ascending; the tail is the largest core.
	all, err := g.catalog.FindEnergyStorage(ctx, 0, "")
	maxAp := 0.0
	if err == nil && len(all) > 0 {
		maxAp = all[len(all)-1].ApCM4
		for i := len(all) - 1; i >= 0 && len(res.ClosestCores) < 3; i-- {
			c := all[i]
			maxEnergy := c.ApCM4 * bmaxT * req.MaxCurrentDensity * constants.InductorKu / 2e4
			res.ClosestCores = append(res.ClosestCores, CoreAlternative{
				PartNumber:   c.PartNumber,
				Manufacturer: c.Manufacturer,
				Geometry:     c.Geometry,
				ApCM4:        c.ApCM4,
				MaxPowerW:    mathutil.Round(maxEnergy*req.FrequencyHz, 1),
				Notes:        fmt.Sprintf("Largest %s core in database", c.Geometry),
			})
		}
	}
	res.AvailableMaxApCM4 = mathutil.Round(maxAp, 2)
	res.Message = fmt.Sprintf("Required Ap (%.1f cm⁴) exceeds largest available core (%.1f cm⁴)", requiredAp, maxAp)

	if maxAp > 0 && req.MaxCurrentDensity < 600 {
		suggestedJ := req.MaxCurrentDensity * (requiredAp / maxAp)
		if suggestedJ <= 800 {
			res.Suggestions = append(res.Suggestions, DesignSuggestion{
				Parameter:      "max_current_density_A_cm2",
				CurrentValue:   req.MaxCurrentDensity,
				SuggestedValue: math.Round(suggestedJ/50) * 50,
				Unit:           "A/cm²",
				Impact:         "Higher current density reduces wire size, allowing smaller core (increases losses)",
				Feasible:       suggestedJ <= 600,
			})
		}
	}
	res.Suggestions = append(res.Suggestions, DesignSuggestion{
		Parameter:      "window_utilization_Ku",
		CurrentValue:   constants.InductorKu,
		SuggestedValue: 0.45,
		Unit:           "",
		Impact:         "Higher fill factor allows smaller core (requires careful winding)",
		Feasible:       true,
	})

	res.AlternativeApproaches = []string{
		"Consider using multiple smaller inductors in parallel",
		"Consider powder cores with distributed gap for high DC bias",
		"Explore OpenMagnetics database for a wider core selection",
		"Custom core design may be required for this energy level",
	}
	if req.FrequencyHz > 100000 {
		res.AlternativeApproaches = append(
			[]string{"Consider planar magnetics for this power/frequency combination"},
			res.AlternativeApproaches...,
		)
	}

	return res
}
