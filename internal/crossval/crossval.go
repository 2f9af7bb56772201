// Package crossval re-derives key figures of a finished design from the
// original requirements and independent reference data, and scores how well
// the pipeline's results agree. The report is advisory: it rides along with
// the design result and never blocks it.
package crossval

import (
	"fmt"

	"go.uber.org/zap"
)

// Validation statuses.
const (
	StatusPass    = "pass"
	StatusWarning = "warning"
	StatusFail    = "fail"
	StatusUnknown = "unknown"
)

// Confidence levels attached to individual checks.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Tolerance thresholds shared by checks without their own bands [%].
const (
	passThresholdPct = 5.0
	warnThresholdPct = 15.0
)

// Check is the outcome of one independent validation.
type Check struct {
	Parameter         string  `json:"parameter"`
	OurValue          float64 `json:"our_value"`
	ReferenceValue    float64 `json:"reference_value"`
	Unit              string  `json:"unit"`
	DifferencePercent float64 `json:"difference_percent"`
	Status            string  `json:"status"`
	Confidence        string  `json:"confidence"`
	Source            string  `json:"source"`
	Notes             string  `json:"notes,omitempty"`
}

// Report aggregates all checks for one design.
type Report struct {
	DesignMethod      string   `json:"design_method"`
	Validations       []Check  `json:"validations"`
	OverallStatus     string   `json:"overall_status"`
	OverallConfidence float64  `json:"overall_confidence"`
	Summary           string   `json:"summary"`
	Recommendations   []string `json:"recommendations,omitempty"`
}

// Summary carries the finished design figures and the requirements the
// validator rechecks. Zero-valued fields skip the checks that need them, so
// transformer and inductor results share the one type.
type Summary struct {
	DesignMethod     string  `json:"design_method,omitempty"`
	PrimaryVoltageV  float64 `json:"primary_voltage_V,omitempty"`
	FrequencyHz      float64 `json:"frequency_Hz"`
	Waveform         string  `json:"waveform,omitempty"`
	OutputPowerW     float64 `json:"output_power_W,omitempty"`
	EfficiencyTarget float64 `json:"efficiency_target_percent,omitempty"`
	Cooling          string  `json:"cooling,omitempty"`

	PrimaryTurns int     `json:"primary_turns,omitempty"`
	BmaxT        float64 `json:"Bmax_T,omitempty"`
	BacT         float64 `json:"Bac_T,omitempty"`
	BsatT        float64 `json:"Bsat_T,omitempty"`
	AeCM2        float64 `json:"Ae_cm2,omitempty"`
	VeCM3        float64 `json:"Ve_cm3,omitempty"`
	AtCM2        float64 `json:"At_cm2,omitempty"`
	Material     string  `json:"material,omitempty"`

	CoreLossW        float64 `json:"core_loss_W,omitempty"`
	TotalLossW       float64 `json:"total_loss_W,omitempty"`
	EfficiencyPct    float64 `json:"efficiency_percent,omitempty"`
	TemperatureRiseC float64 `json:"temperature_rise_C,omitempty"`
	Ku               float64 `json:"window_utilization_Ku,omitempty"`
}

// Validator runs the cross-validation checks.
type Validator struct {
	logger *zap.Logger
}

// NewValidator constructs a Validator.
func NewValidator(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{logger: logger}
}

// Validate runs every applicable check against the design summary and
// aggregates overall status, confidence, and recommendations. Checks whose
// inputs are missing are skipped, never counted.
func (v *Validator) Validate(design Summary) Report {
	report := Report{DesignMethod: design.DesignMethod}
	if report.DesignMethod == "" {
		report.DesignMethod = "unknown"
	}

	for _, check := range []*Check{
		v.checkTurns(design),
		v.checkCoreLoss(design),
		v.checkFluxDensity(design),
		v.checkThermal(design),
		v.checkEfficiency(design),
		v.checkWindowUtilization(design),
	} {
		if check != nil {
			report.Validations = append(report.Validations, *check)
		}
	}

	v.finalize(&report)
	v.logger.Debug("cross-validation complete",
		zap.String("op", "crossval.Validate"),
		zap.String("status", report.OverallStatus),
		zap.Float64("confidence", report.OverallConfidence),
		zap.Int("checks", len(report.Validations)),
	)
	return report
}

// statusFor maps a percentage difference to a validation status using the
// given thresholds.
func statusFor(diffPct, passThresh, warnThresh float64) string {
	switch {
	case diffPct <= passThresh:
		return StatusPass
	case diffPct <= warnThresh:
		return StatusWarning
	}
	return StatusFail
}

func (v *Validator) finalize(report *Report) {
	if len(report.Validations) == 0 {
		report.OverallStatus = StatusUnknown
		report.OverallConfidence = 0
		report.Summary = "No validations performed"
		return
	}

	var passes, warns, fails int
	for _, check := range report.Validations {
		switch check.Status {
		case StatusPass:
			passes++
		case StatusWarning:
			warns++
		case StatusFail:
			fails++
		}
	}

	total := len(report.Validations)
	switch {
	case fails > 0:
		report.OverallStatus = StatusFail
	case float64(warns) > float64(total)/2:
		report.OverallStatus = StatusWarning
	default:
		report.OverallStatus = StatusPass
	}

	var weightedScore, totalWeight float64
	for _, check := range report.Validations {
		weight := 0.5
		switch check.Confidence {
		case ConfidenceHigh:
			weight = 1.0
		case ConfidenceMedium:
			weight = 0.7
		case ConfidenceLow:
			weight = 0.4
		}
		score := 0.3
		switch check.Status {
		case StatusPass:
			score = 1.0
		case StatusWarning:
			score = 0.7
		}
		weightedScore += score * weight
		totalWeight += weight
	}
	if totalWeight > 0 {
		report.OverallConfidence = weightedScore / totalWeight
	}

	report.Summary = fmt.Sprintf("Validation: %d pass, %d warning, %d fail (confidence: %.0f%%)",
		passes, warns, fails, report.OverallConfidence*100)

	for _, check := range report.Validations {
		switch check.Status {
		case StatusFail:
			report.Recommendations = append(report.Recommendations,
				fmt.Sprintf("CRITICAL: %s differs by %.1f%% from %s",
					check.Parameter, check.DifferencePercent, check.Source))
		case StatusWarning:
			report.Recommendations = append(report.Recommendations,
				fmt.Sprintf("Review: %s - %s", check.Parameter, check.Notes))
		}
	}
}
