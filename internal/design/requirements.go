// Package design runs the synthesis pipelines that turn electrical
// requirements into a complete magnetic component: method selection, core
// search, winding synthesis, loss and thermal evaluation, verification, and
// an independent cross-validation pass.
package design

import (
	"fmt"
	"strings"

	"github.com/Denys/transformer-designer/pkg/constants"
	"github.com/Denys/transformer-designer/pkg/sizing"
	"github.com/Denys/transformer-designer/pkg/thermal"
)

// Transformer service classes.
const (
	TypePowerLF = "power_lf"
	TypePowerHF = "power_hf"
	TypeFlyback = "flyback"
	TypeForward = "forward"
	TypePulse   = "pulse"
)

// TransformerRequirements is the input contract for a transformer design.
// Zero-valued optional fields take their defaults during Normalize.
type TransformerRequirements struct {
	OutputPowerW  float64 `json:"output_power_W" yaml:"output_power_W"`
	EfficiencyPct float64 `json:"efficiency_percent" yaml:"efficiency_percent"`
	RegulationPct float64 `json:"regulation_percent" yaml:"regulation_percent"`

	PrimaryVoltageV   float64 `json:"primary_voltage_V" yaml:"primary_voltage_V"`
	SecondaryVoltageV float64 `json:"secondary_voltage_V" yaml:"secondary_voltage_V"`

	FrequencyHz float64 `json:"frequency_Hz" yaml:"frequency_Hz"`
	Waveform    string  `json:"waveform" yaml:"waveform"`
	DutyCycle   float64 `json:"duty_cycle" yaml:"duty_cycle"`

	AmbientTempC float64 `json:"ambient_temp_C" yaml:"ambient_temp_C"`
	MaxTempRiseC float64 `json:"max_temp_rise_C" yaml:"max_temp_rise_C"`
	Cooling      string  `json:"cooling" yaml:"cooling"`

	TransformerType   string `json:"transformer_type" yaml:"transformer_type"`
	PreferredGeometry string `json:"preferred_core_geometry" yaml:"preferred_core_geometry"`
	PreferredMaterial string `json:"preferred_material" yaml:"preferred_material"`
	Method            string `json:"design_method" yaml:"design_method"`

	MaxCurrentDensity float64 `json:"max_current_density_A_cm2" yaml:"max_current_density_A_cm2"`
	Ku                float64 `json:"window_utilization_Ku" yaml:"window_utilization_Ku"`

	// IncludeExternal controls whether the remote core database joins the
	// candidate search. Unset means enabled.
	IncludeExternal *bool `json:"include_external,omitempty" yaml:"include_external,omitempty"`
}

// Normalize fills unset optional fields with their defaults. An ambient of
// exactly 0 reads as unset and takes the default.
func (r *TransformerRequirements) Normalize() {
	if r.EfficiencyPct == 0 {
		r.EfficiencyPct = 90
	}
	if r.RegulationPct == 0 {
		r.RegulationPct = 5
	}
	r.Waveform = strings.ToLower(strings.TrimSpace(r.Waveform))
	if r.Waveform == "" {
		r.Waveform = "sinusoidal"
	}
	if r.DutyCycle == 0 {
		r.DutyCycle = 0.5
	}
	if r.AmbientTempC == 0 {
		r.AmbientTempC = constants.DefaultAmbientTempC
	}
	if r.MaxTempRiseC == 0 {
		r.MaxTempRiseC = constants.DefaultTempRiseC
	}
	r.Cooling = strings.ToLower(strings.TrimSpace(r.Cooling))
	if r.Cooling == "" {
		r.Cooling = thermal.CoolingNatural
	}
	r.TransformerType = strings.ToLower(strings.TrimSpace(r.TransformerType))
	if r.TransformerType == "" {
		r.TransformerType = TypePowerHF
	}
	if r.Method == "" {
		r.Method = sizing.MethodAuto
	}
	if r.MaxCurrentDensity == 0 {
		r.MaxCurrentDensity = constants.DefaultCurrentDensity
	}
	if r.Ku == 0 {
		r.Ku = constants.DefaultTransformerKu
	}
}

// Validate reports the first requirement outside its accepted range.
func (r *TransformerRequirements) Validate() error {
	if r.OutputPowerW <= 0 {
		return fmt.Errorf("output power must be positive, got %.2f W", r.OutputPowerW)
	}
	if r.EfficiencyPct < 50 || r.EfficiencyPct > 99.9 {
		return fmt.Errorf("efficiency target must be 50-99.9%%, got %.1f", r.EfficiencyPct)
	}
	if r.RegulationPct < 0.5 || r.RegulationPct > 20 {
		return fmt.Errorf("regulation must be 0.5-20%%, got %.1f", r.RegulationPct)
	}
	if r.PrimaryVoltageV <= 0 {
		return fmt.Errorf("primary voltage must be positive, got %.2f V", r.PrimaryVoltageV)
	}
	if r.SecondaryVoltageV <= 0 {
		return fmt.Errorf("secondary voltage must be positive, got %.2f V", r.SecondaryVoltageV)
	}
	if r.FrequencyHz <= 0 {
		return fmt.Errorf("frequency must be positive, got %.2f Hz", r.FrequencyHz)
	}
	switch r.Waveform {
	case "sinusoidal", "square", "triangular", "pulse":
	default:
		return fmt.Errorf("unknown waveform %q", r.Waveform)
	}
	if r.DutyCycle < 0.1 || r.DutyCycle > 0.9 {
		return fmt.Errorf("duty cycle must be 0.1-0.9, got %.2f", r.DutyCycle)
	}
	if r.AmbientTempC < -40 || r.AmbientTempC > 85 {
		return fmt.Errorf("ambient temperature must be -40-85 C, got %.1f", r.AmbientTempC)
	}
	if r.MaxTempRiseC < 20 || r.MaxTempRiseC > 100 {
		return fmt.Errorf("temperature rise target must be 20-100 C, got %.1f", r.MaxTempRiseC)
	}
	if r.Cooling != thermal.CoolingNatural && r.Cooling != thermal.CoolingForced {
		return fmt.Errorf("cooling must be natural or forced, got %q", r.Cooling)
	}
	switch r.TransformerType {
	case TypePowerLF, TypePowerHF, TypeFlyback, TypeForward, TypePulse:
	default:
		return fmt.Errorf("unknown transformer type %q", r.TransformerType)
	}
	if _, err := resolveMethod(r.Method); err != nil {
		return err
	}
	if r.MaxCurrentDensity < 100 || r.MaxCurrentDensity > 800 {
		return fmt.Errorf("current density must be 100-800 A/cm2, got %.0f", r.MaxCurrentDensity)
	}
	if r.Ku < 0.15 || r.Ku > 0.55 {
		return fmt.Errorf("window utilization must be 0.15-0.55, got %.2f", r.Ku)
	}
	return nil
}

// ExternalEnabled reports whether the remote database may contribute core
// candidates.
func (r *TransformerRequirements) ExternalEnabled() bool {
	return r.IncludeExternal == nil || *r.IncludeExternal
}

// resolveMethod maps the accepted method spellings onto the sizing package
// identifiers. Both the short form and the textbook-author form are accepted.
func resolveMethod(method string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "", "auto":
		return sizing.MethodAuto, nil
	case "ap", "ap_mclyman":
		return sizing.MethodAp, nil
	case "kg", "kg_mclyman":
		return sizing.MethodKg, nil
	case "kgfe", "kgfe_erickson":
		return sizing.MethodKgfe, nil
	}
	return "", fmt.Errorf("unknown design method %q", method)
}

// InductorRequirements is the input contract for an energy-storage inductor
// design.
type InductorRequirements struct {
	InductanceUH float64 `json:"inductance_uH" yaml:"inductance_uH"`

	DCCurrentA     float64 `json:"dc_current_A" yaml:"dc_current_A"`
	RippleCurrentA float64 `json:"ripple_current_A" yaml:"ripple_current_A"`
	PeakCurrentA   float64 `json:"peak_current_A,omitempty" yaml:"peak_current_A,omitempty"`

	FrequencyHz float64 `json:"frequency_Hz" yaml:"frequency_Hz"`

	AmbientTempC float64 `json:"ambient_temp_C" yaml:"ambient_temp_C"`
	MaxTempRiseC float64 `json:"max_temp_rise_C" yaml:"max_temp_rise_C"`
	Cooling      string  `json:"cooling" yaml:"cooling"`

	PreferredGeometry string `json:"preferred_core_geometry" yaml:"preferred_core_geometry"`
	PreferredMaterial string `json:"preferred_material" yaml:"preferred_material"`

	// AllowPowderCores admits powder materials (MPP, Kool Mu) for
	// low-frequency service. Unset means allowed.
	AllowPowderCores *bool `json:"allow_powder_cores,omitempty" yaml:"allow_powder_cores,omitempty"`

	MaxCurrentDensity float64 `json:"max_current_density_A_cm2" yaml:"max_current_density_A_cm2"`
	BmaxMarginPct     float64 `json:"Bmax_margin_percent" yaml:"Bmax_margin_percent"`
}

// Normalize fills unset optional fields with their defaults.
func (r *InductorRequirements) Normalize() {
	if r.AmbientTempC == 0 {
		r.AmbientTempC = constants.DefaultAmbientTempC
	}
	if r.MaxTempRiseC == 0 {
		r.MaxTempRiseC = constants.DefaultTempRiseC
	}
	r.Cooling = strings.ToLower(strings.TrimSpace(r.Cooling))
	if r.Cooling == "" {
		r.Cooling = thermal.CoolingNatural
	}
	if r.MaxCurrentDensity == 0 {
		r.MaxCurrentDensity = constants.DefaultCurrentDensity
	}
	if r.BmaxMarginPct == 0 {
		r.BmaxMarginPct = 20
	}
}

// Validate reports the first requirement outside its accepted range.
func (r *InductorRequirements) Validate() error {
	if r.InductanceUH <= 0 {
		return fmt.Errorf("inductance must be positive, got %.2f uH", r.InductanceUH)
	}
	if r.DCCurrentA < 0 {
		return fmt.Errorf("DC current must not be negative, got %.2f A", r.DCCurrentA)
	}
	if r.RippleCurrentA <= 0 {
		return fmt.Errorf("ripple current must be positive, got %.2f A", r.RippleCurrentA)
	}
	if r.PeakCurrentA < 0 {
		return fmt.Errorf("peak current must not be negative, got %.2f A", r.PeakCurrentA)
	}
	if r.FrequencyHz <= 0 {
		return fmt.Errorf("frequency must be positive, got %.2f Hz", r.FrequencyHz)
	}
	if r.AmbientTempC < -40 || r.AmbientTempC > 85 {
		return fmt.Errorf("ambient temperature must be -40-85 C, got %.1f", r.AmbientTempC)
	}
	if r.MaxTempRiseC < 20 || r.MaxTempRiseC > 100 {
		return fmt.Errorf("temperature rise target must be 20-100 C, got %.1f", r.MaxTempRiseC)
	}
	if r.Cooling != thermal.CoolingNatural && r.Cooling != thermal.CoolingForced {
		return fmt.Errorf("cooling must be natural or forced, got %q", r.Cooling)
	}
	if r.MaxCurrentDensity < 100 || r.MaxCurrentDensity > 800 {
		return fmt.Errorf("current density must be 100-800 A/cm2, got %.0f", r.MaxCurrentDensity)
	}
	if r.BmaxMarginPct < 10 || r.BmaxMarginPct > 40 {
		return fmt.Errorf("Bmax margin must be 10-40%%, got %.1f", r.BmaxMarginPct)
	}
	return nil
}

// PowderAllowed reports whether powder cores may be used.
func (r *InductorRequirements) PowderAllowed() bool {
	return r.AllowPowderCores == nil || *r.AllowPowderCores
}

// PeakCurrent returns the explicit peak current, or DC plus half the
// peak-to-peak ripple when none was given.
func (r *InductorRequirements) PeakCurrent() float64 {
	if r.PeakCurrentA > 0 {
		return r.PeakCurrentA
	}
	return r.DCCurrentA + r.RippleCurrentA/2
}
