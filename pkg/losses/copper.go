package losses

import (
	"fmt"

	"github.com/Denys/transformer-designer/pkg/constants"
)

// CopperLoss calculates winding loss from the DC resistance at 20C, the
// operating temperature, and the AC resistance factor.
//
//	Pcu = Irms^2 * Rdc * (1 + alpha*(T-20)) * Fr  [W]
func CopperLoss(currentRmsA, rdcOhm, temperatureC, acFactor float64) (float64, error) {
	if rdcOhm < 0 {
		return 0, fmt.Errorf("DC resistance must be non-negative, got %.4f", rdcOhm)
	}
	if acFactor <= 0 {
		acFactor = 1.0
	}
	rdcAtTemp := rdcOhm * (1 + constants.CopperTempCoefficient*(temperatureC-20))
	return currentRmsA * currentRmsA * rdcAtTemp * acFactor, nil
}
