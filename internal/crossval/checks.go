package crossval

import (
	"fmt"
	"math"

	"github.com/Denys/transformer-designer/pkg/mathutil"
)

// checkTurns rechecks the primary turns count straight from Faraday's law.
func (v *Validator) checkTurns(design Summary) *Check {
	if design.PrimaryTurns == 0 || design.FrequencyHz <= 0 || design.AeCM2 <= 0 || design.PrimaryVoltageV <= 0 {
		return nil
	}

	waveform := design.Waveform
	if waveform == "" {
		waveform = "sinusoidal"
	}
	kf := 4.44
	if waveform == "square" {
		kf = 4.0
	}
	bmax := design.BmaxT
	if bmax <= 0 {
		bmax = 0.25
	}

	aeM2 := design.AeCM2 * 1e-4
	npRef := design.PrimaryVoltageV / (kf * design.FrequencyHz * bmax * aeM2)
	if npRef <= 0 {
		return nil
	}
	diffPct := math.Abs(float64(design.PrimaryTurns)-npRef) / npRef * 100

	return &Check{
		Parameter:         "primary_turns",
		OurValue:          float64(design.PrimaryTurns),
		ReferenceValue:    mathutil.Round(npRef, 1),
		Unit:              "turns",
		DifferencePercent: mathutil.Round(diffPct, 2),
		Status:            statusFor(diffPct, passThresholdPct, warnThresholdPct),
		Confidence:        ConfidenceHigh,
		Source:            "Faraday's Law",
		Notes:             fmt.Sprintf("Kf=%g for %s waveform", kf, waveform),
	}
}

// checkCoreLoss compares the computed loss density against manufacturer
// datasheet anchor points, scaled to the operating point. This calibration is
// independent of the Steinmetz fit the design path uses.
func (v *Validator) checkCoreLoss(design Summary) *Check {
	if design.CoreLossW <= 0 || design.VeCM3 <= 0 || design.FrequencyHz <= 0 || design.BacT <= 0 {
		return nil
	}

	densityMWCm3 := design.CoreLossW / design.VeCM3 * 1000
	fKHz := design.FrequencyHz / 1000
	bMT := design.BacT * 1000

	anchors := ferriteAnchors(design.Material)
	if len(anchors) == 0 {
		// No curve data at all: apply the 100 kHz / 100 mT rule of thumb
		// when the operating point is near it, otherwise stay silent.
		if fKHz < 50 || fKHz > 200 || bMT < 50 || bMT > 200 {
			return nil
		}
		status := StatusPass
		if densityMWCm3 < 50 || densityMWCm3 > 500 {
			status = StatusWarning
		}
		return &Check{
			Parameter:         "core_loss_density_mW_cm3",
			OurValue:          mathutil.Round(densityMWCm3, 1),
			ReferenceValue:    275,
			Unit:              "mW/cm³",
			DifferencePercent: 0,
			Status:            status,
			Confidence:        ConfidenceLow,
			Source:            "Material datasheet",
			Notes:             "Rule-of-thumb band for 50-200 kHz, 50-200 mT",
		}
	}

	anchor, dist := nearestAnchor(anchors, fKHz, bMT)
	if dist > maxAnchorLogDistance {
		// Beyond every tabulated point the power-law extrapolation says
		// nothing useful. Gapped inductors land here: their AC flux runs
		// an order of magnitude below transformer service.
		return nil
	}
	refDensity := scaleAnchor(anchor, fKHz, bMT)
	diffPct := math.Abs(densityMWCm3-refDensity) / refDensity * 100

	confidence := ConfidenceLow
	switch {
	case dist < 0.2:
		confidence = ConfidenceHigh
	case dist < 0.5:
		confidence = ConfidenceMedium
	}

	return &Check{
		Parameter:         "core_loss_density_mW_cm3",
		OurValue:          mathutil.Round(densityMWCm3, 1),
		ReferenceValue:    mathutil.Round(refDensity, 1),
		Unit:              "mW/cm³",
		DifferencePercent: mathutil.Round(diffPct, 2),
		Status:            statusFor(diffPct, 10, 30),
		Confidence:        confidence,
		Source:            "Material datasheet",
		Notes:             fmt.Sprintf("Anchor (%g kHz, %g mT) for %s", anchor.fKHz, anchor.bMT, anchorKey(design.Material)),
	}
}

// checkFluxDensity verifies the operating flux density keeps a workable
// margin to saturation. The difference field carries the margin itself.
func (v *Validator) checkFluxDensity(design Summary) *Check {
	if design.BmaxT <= 0 {
		return nil
	}
	bsat := design.BsatT
	if bsat <= 0 {
		bsat = 0.4
	}

	refB := bsat * 0.7
	marginPct := (bsat - design.BmaxT) / bsat * 100

	status := StatusPass
	switch {
	case design.BmaxT > bsat*0.9:
		status = StatusFail
	case design.BmaxT > bsat*0.8:
		status = StatusWarning
	}

	return &Check{
		Parameter:         "flux_density_T",
		OurValue:          mathutil.Round(design.BmaxT, 4),
		ReferenceValue:    mathutil.Round(refB, 4),
		Unit:              "T",
		DifferencePercent: mathutil.Round(marginPct, 1),
		Status:            status,
		Confidence:        ConfidenceHigh,
		Source:            "Saturation limit",
		Notes:             fmt.Sprintf("%.1f%% margin to Bsat=%gT", marginPct, bsat),
	}
}

// checkThermal rechecks the temperature rise with McLyman's surface
// dissipation formula Tr = 450*psi^0.826.
func (v *Validator) checkThermal(design Summary) *Check {
	if design.TemperatureRiseC == 0 || design.TotalLossW <= 0 || design.AtCM2 <= 0 {
		return nil
	}

	psi := design.TotalLossW / design.AtCM2
	refRise := 450 * math.Pow(psi, 0.826)
	if design.Cooling == "forced" {
		refRise *= 0.5
	}
	diffPct := math.Abs(design.TemperatureRiseC-refRise) / refRise * 100

	return &Check{
		Parameter:         "temperature_rise_C",
		OurValue:          mathutil.Round(design.TemperatureRiseC, 1),
		ReferenceValue:    mathutil.Round(refRise, 1),
		Unit:              "°C",
		DifferencePercent: mathutil.Round(diffPct, 2),
		Status:            statusFor(diffPct, 10, 25),
		Confidence:        ConfidenceMedium,
		Source:            "McLyman empirical formula",
		Notes:             fmt.Sprintf("ψ = %.3f W/cm²", psi),
	}
}

// checkEfficiency compares achieved efficiency against what transformers of
// this power class typically reach, and against the requested target.
func (v *Validator) checkEfficiency(design Summary) *Check {
	if design.EfficiencyPct <= 0 {
		return nil
	}
	target := design.EfficiencyTarget
	if target <= 0 {
		target = 95
	}

	var expected float64
	switch {
	case design.OutputPowerW < 100:
		expected = 90
	case design.OutputPowerW < 1000:
		expected = 95
	case design.OutputPowerW < 10000:
		expected = 97
	default:
		expected = 98
	}

	diffPct := math.Abs(design.EfficiencyPct-expected) / expected * 100

	status := StatusPass
	switch {
	case design.EfficiencyPct < target*0.95:
		status = StatusFail
	case design.EfficiencyPct < target:
		status = StatusWarning
	}

	return &Check{
		Parameter:         "efficiency_percent",
		OurValue:          mathutil.Round(design.EfficiencyPct, 2),
		ReferenceValue:    expected,
		Unit:              "%",
		DifferencePercent: mathutil.Round(diffPct, 2),
		Status:            status,
		Confidence:        ConfidenceMedium,
		Source:            "Expected for power level",
		Notes:             fmt.Sprintf("Target: %g%%", target),
	}
}

// checkWindowUtilization verifies the fill factor sits in the practical band
// around the 0.4 textbook target.
func (v *Validator) checkWindowUtilization(design Summary) *Check {
	if design.Ku <= 0 {
		return nil
	}

	const refKu = 0.4
	diffPct := math.Abs(design.Ku-refKu) / refKu * 100

	status := StatusPass
	notes := "Good window utilization"
	switch {
	case design.Ku > 0.6:
		status = StatusFail
		notes = "Window overfilled - reduce wire size or turns"
	case design.Ku > 0.5:
		status = StatusWarning
		notes = "Window nearly full - tight fit"
	case design.Ku < 0.2:
		status = StatusWarning
		notes = "Low utilization - core may be oversized"
	}

	return &Check{
		Parameter:         "window_utilization_Ku",
		OurValue:          mathutil.Round(design.Ku, 3),
		ReferenceValue:    refKu,
		Unit:              "ratio",
		DifferencePercent: mathutil.Round(diffPct, 1),
		Status:            status,
		Confidence:        ConfidenceHigh,
		Source:            "Typical practice",
		Notes:             notes,
	}
}
