package losses

import (
	"fmt"
	"math"
)

// Loss balance classifications.
const (
	BalanceOptimal         = "optimal"
	BalanceCoreDominated   = "core_dominated"
	BalanceCopperDominated = "copper_dominated"
)

// Balance describes how core loss compares to copper loss.
type Balance struct {
	RatioPfePcu    float64 `json:"Pfe_Pcu_ratio"`
	Classification string  `json:"loss_balance"`
}

// LossBalance classifies the core to copper loss ratio. A balanced design
// has the two within a factor of two of each other.
func LossBalance(pfeW, pcuW float64) Balance {
	ratio := math.Inf(1)
	if pcuW > 0 {
		ratio = pfeW / pcuW
	}

	classification := BalanceOptimal
	switch {
	case ratio > 2.0:
		classification = BalanceCoreDominated
	case ratio < 0.5:
		classification = BalanceCopperDominated
	}
	return Balance{RatioPfePcu: ratio, Classification: classification}
}

// Breakdown itemizes the losses of a complete design.
type Breakdown struct {
	CoreLossW            float64 `json:"core_loss_W"`
	PrimaryCopperLossW   float64 `json:"primary_copper_loss_W"`
	SecondaryCopperLossW float64 `json:"secondary_copper_loss_W"`
	TotalCopperLossW     float64 `json:"total_copper_loss_W"`
	AdditionalLossW      float64 `json:"additional_losses_W"`
	TotalLossW           float64 `json:"total_loss_W"`
	RatioPfePcu          float64 `json:"Pfe_Pcu_ratio"`
	Classification       string  `json:"loss_balance"`
}

// TotalLosses sums the loss contributions and classifies the balance.
func TotalLosses(coreLossW, primaryCopperW, secondaryCopperW, additionalW float64) Breakdown {
	totalCopper := primaryCopperW + secondaryCopperW
	balance := LossBalance(coreLossW, totalCopper)
	return Breakdown{
		CoreLossW:            coreLossW,
		PrimaryCopperLossW:   primaryCopperW,
		SecondaryCopperLossW: secondaryCopperW,
		TotalCopperLossW:     totalCopper,
		AdditionalLossW:      additionalW,
		TotalLossW:           coreLossW + totalCopper + additionalW,
		RatioPfePcu:          balance.RatioPfePcu,
		Classification:       balance.Classification,
	}
}

// Efficiency calculates efficiency in percent from output power and total
// loss. Non-positive input power yields zero.
func Efficiency(outputPowerW, totalLossW float64) float64 {
	inputPower := outputPowerW + totalLossW
	if inputPower <= 0 {
		return 0
	}
	return outputPowerW / inputPower * 100
}

// EstimateLossForSizing estimates the loss budget implied by a target
// efficiency, for use before any winding details exist.
func EstimateLossForSizing(outputPowerW, targetEfficiencyPct float64) (float64, error) {
	if targetEfficiencyPct <= 0 || targetEfficiencyPct > 100 {
		return 0, fmt.Errorf("efficiency must be in (0, 100], got %.1f", targetEfficiencyPct)
	}
	eta := targetEfficiencyPct / 100
	return outputPowerW/eta - outputPowerW, nil
}
