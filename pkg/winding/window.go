package winding

import (
	"fmt"

	"github.com/Denys/transformer-designer/pkg/constants"
)

// WindingCopper describes the copper content of one winding for window
// utilization accounting.
type WindingCopper struct {
	Turns       int
	WireAreaCM2 float64
}

// KuResult holds the window utilization and its verdict.
type KuResult struct {
	Ku             float64 `json:"Ku"`
	CopperAreaCM2  float64 `json:"copper_area_cm2"`
	WithInsulation float64 `json:"total_with_insulation_cm2"`
	Status         string  `json:"status"`
}

// WindowUtilization calculates the window utilization factor for a set of
// windings sharing one core window.
//
//	Ku = sum(Ni * Ai) * fill / Wa
func WindowUtilization(windings []WindingCopper, windowAreaCm2 float64) (KuResult, error) {
	if windowAreaCm2 <= 0 {
		return KuResult{}, fmt.Errorf("window area must be positive, got %.4f", windowAreaCm2)
	}

	var copper float64
	for _, w := range windings {
		copper += float64(w.Turns) * w.WireAreaCM2
	}
	withInsulation := copper * constants.WindowFillFactor
	ku := withInsulation / windowAreaCm2

	status := constants.StatusOK
	if ku >= constants.KuErrorThreshold {
		status = constants.StatusError
	} else if ku >= constants.KuWarningThreshold {
		status = constants.StatusWarning
	}

	return KuResult{
		Ku:             ku,
		CopperAreaCM2:  copper,
		WithInsulation: withInsulation,
		Status:         status,
	}, nil
}
