package thermal

import (
	"fmt"
	"strings"

	"github.com/Denys/transformer-designer/pkg/constants"
)

// ThermalResult holds the complete thermal verdict for a design point.
type ThermalResult struct {
	SurfaceAreaCm2        float64  `json:"surface_area_cm2"`
	PowerDissipationWCm2  float64  `json:"power_dissipation_density_W_cm2"`
	TemperatureRiseC      float64  `json:"temperature_rise_C"`
	HotspotTempC          float64  `json:"hotspot_temp_C"`
	MaterialMaxTempC      float64  `json:"material_max_temp_C"`
	MarginToTargetC       float64  `json:"margin_to_target_C"`
	MarginToMaterialC     float64  `json:"margin_to_material_C"`
	Status                string   `json:"status"`
	CoolingRecommendation string   `json:"cooling_recommendation"`
	Recommendations       []string `json:"recommendations"`
}

// materialMaxTempC returns the hotspot limit for a core material. Ferrites
// are Curie-limited well below the limits of steel and powder cores.
func materialMaxTempC(material string) float64 {
	lower := strings.ToLower(material)
	if strings.Contains(lower, "ferrite") {
		return constants.FerriteMaxTempC
	}
	switch lower {
	case "3c90", "3c94", "3c95", "n87", "n97", "3f3", "pc40", "pc44":
		return constants.FerriteMaxTempC
	}
	return constants.DefaultMaxTempC
}

// Analyze runs the complete thermal check for a design: dissipation
// density, temperature rise, hotspot versus the material limit, and
// remediation advice when the design runs hot. The cooling surface is
// estimated from the area product and geometry.
func Analyze(plossW, apCm4 float64, geometry string, ambientC, riseTargetC float64, cooling, material string) (ThermalResult, error) {
	if apCm4 <= 0 {
		return ThermalResult{}, fmt.Errorf("area product must be positive, got %.2f", apCm4)
	}
	return AnalyzeSurface(plossW, SurfaceArea(apCm4, geometry), ambientC, riseTargetC, cooling, material)
}

// AnalyzeSurface is Analyze with a known cooling surface, for cores
// whose datasheet lists the thermal surface area directly.
func AnalyzeSurface(plossW, surfaceAreaCm2, ambientC, riseTargetC float64, cooling, material string) (ThermalResult, error) {
	surfaceArea := surfaceAreaCm2
	psi, err := SurfaceDissipation(plossW, surfaceArea)
	if err != nil {
		return ThermalResult{}, err
	}

	forced := cooling == CoolingForced
	rise := TemperatureRise(psi, forced)
	hotspot := ambientC + rise
	materialMax := materialMaxTempC(material)

	marginToTarget := riseTargetC - rise
	marginToMaterial := materialMax - hotspot

	status := constants.StatusOK
	if rise > riseTargetC || hotspot > materialMax {
		status = constants.StatusError
	} else if marginToTarget < constants.ThermalMarginC || marginToMaterial < constants.ThermalMarginC {
		status = constants.StatusWarning
	}

	var recommendations []string
	switch status {
	case constants.StatusError:
		if !forced {
			recommendations = append(recommendations, "Consider forced air cooling")
		}
		recommendations = append(recommendations,
			"Increase core size to reduce losses",
			"Reduce current density to lower copper loss",
			"Reduce Bmax to lower core loss")
	case constants.StatusWarning:
		recommendations = append(recommendations, "Design is marginal - consider adding thermal margin")
	}

	coolingRecommendation := "adequate"
	if status != constants.StatusOK {
		if !forced {
			coolingRecommendation = "forced air recommended"
		} else {
			coolingRecommendation = "heatsink or liquid cooling required"
		}
	}

	return ThermalResult{
		SurfaceAreaCm2:        surfaceArea,
		PowerDissipationWCm2:  psi,
		TemperatureRiseC:      rise,
		HotspotTempC:          hotspot,
		MaterialMaxTempC:      materialMax,
		MarginToTargetC:       marginToTarget,
		MarginToMaterialC:     marginToMaterial,
		Status:                status,
		CoolingRecommendation: coolingRecommendation,
		Recommendations:       recommendations,
	}, nil
}
