package sizing

import "strings"

// Flux density limiting regimes reported by SelectFluxDensity.
const (
	RegimeSaturationLimited = "saturation_limited"
	RegimeLossLimited       = "loss_limited"
	RegimeMixed             = "mixed"
	RegimeDCBiasLimited     = "dc_bias_limited"
)

// FluxSelection describes the recommended peak operating flux density for a
// material at a given frequency, with the limiting mechanism and a note for
// the designer.
type FluxSelection struct {
	BmaxT  float64
	Regime string
	Note   string
}

// SelectFluxDensity returns the recommended peak flux density for a core
// material at the given operating frequency. The tables encode the usable
// region of each material class: below its loss knee a core runs up against
// saturation, above it the loss density sets the ceiling.
func SelectFluxDensity(frequencyHz float64, materialType string) FluxSelection {
	switch strings.ToLower(materialType) {
	case "silicon_steel", "si_steel":
		switch {
		case frequencyHz <= 60:
			return FluxSelection{BmaxT: 1.5, Regime: RegimeSaturationLimited,
				Note: "Silicon steel: not recommended above 1kHz"}
		case frequencyHz <= 400:
			return FluxSelection{BmaxT: 1.2, Regime: RegimeMixed,
				Note: "Silicon steel: not recommended above 1kHz"}
		default:
			return FluxSelection{BmaxT: 0.8, Regime: RegimeLossLimited,
				Note: "Silicon steel: not recommended above 1kHz"}
		}
	case "amorphous":
		switch {
		case frequencyHz <= 1000:
			return FluxSelection{BmaxT: 1.3, Regime: RegimeSaturationLimited,
				Note: "Amorphous: good for 400Hz-20kHz range"}
		case frequencyHz <= 20000:
			return FluxSelection{BmaxT: 0.8, Regime: RegimeLossLimited,
				Note: "Amorphous: good for 400Hz-20kHz range"}
		default:
			return FluxSelection{BmaxT: 0.4, Regime: RegimeLossLimited,
				Note: "Amorphous: good for 400Hz-20kHz range"}
		}
	case "powder":
		return FluxSelection{BmaxT: 0.6, Regime: RegimeDCBiasLimited,
			Note: "Powder cores: permeability drops with DC bias"}
	default:
		// Ferrite, and the fallback for unknown materials.
		switch {
		case frequencyHz <= 20000:
			return FluxSelection{BmaxT: 0.30, Regime: RegimeSaturationLimited,
				Note: "Ferrite: loss increases rapidly with B^2*f^2"}
		case frequencyHz <= 100000:
			return FluxSelection{BmaxT: 0.10, Regime: RegimeLossLimited,
				Note: "Ferrite: loss increases rapidly with B^2*f^2"}
		case frequencyHz <= 500000:
			return FluxSelection{BmaxT: 0.05, Regime: RegimeLossLimited,
				Note: "Ferrite: loss increases rapidly with B^2*f^2"}
		default:
			return FluxSelection{BmaxT: 0.03, Regime: RegimeLossLimited,
				Note: "Ferrite: loss increases rapidly with B^2*f^2"}
		}
	}
}
