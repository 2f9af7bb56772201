package design

import (
	"github.com/Denys/transformer-designer/internal/crossval"
)

// CoreSelection is the chosen core with its mechanical and magnetic figures.
// Dimensions missing from an external database entry carry catalog defaults.
type CoreSelection struct {
	Manufacturer string `json:"manufacturer"`
	PartNumber   string `json:"part_number"`
	Geometry     string `json:"geometry"`
	Material     string `json:"material"`
	Source       string `json:"source"`
	DatasheetURL string `json:"datasheet_url,omitempty"`

	AeCM2   float64 `json:"Ae_cm2"`
	WaCM2   float64 `json:"Wa_cm2"`
	ApCM4   float64 `json:"Ap_cm4"`
	MLTCM   float64 `json:"MLT_cm"`
	LmCM    float64 `json:"lm_cm"`
	VeCM3   float64 `json:"Ve_cm3"`
	AtCM2   float64 `json:"At_cm2"`
	WeightG float64 `json:"weight_g"`

	BsatT float64 `json:"Bsat_T"`
	BmaxT float64 `json:"Bmax_T"`
	MuI   float64 `json:"mu_i"`
}

// WindingDesign carries both transformer windings and the shared window
// accounting.
type WindingDesign struct {
	PrimaryTurns     int     `json:"primary_turns"`
	PrimaryWireAWG   int     `json:"primary_wire_awg"`
	PrimaryWireDiaMM float64 `json:"primary_wire_dia_mm"`
	PrimaryStrands   int     `json:"primary_strands"`
	PrimaryLayers    int     `json:"primary_layers"`
	PrimaryRdcMOhm   float64 `json:"primary_Rdc_mOhm"`
	PrimaryRacRdc    float64 `json:"primary_Rac_Rdc"`

	SecondaryTurns     int     `json:"secondary_turns"`
	SecondaryWireAWG   int     `json:"secondary_wire_awg"`
	SecondaryWireDiaMM float64 `json:"secondary_wire_dia_mm"`
	SecondaryStrands   int     `json:"secondary_strands"`
	SecondaryLayers    int     `json:"secondary_layers"`
	SecondaryRdcMOhm   float64 `json:"secondary_Rdc_mOhm"`
	SecondaryRacRdc    float64 `json:"secondary_Rac_Rdc"`

	TotalKu  float64 `json:"total_Ku"`
	KuStatus string  `json:"Ku_status"`
}

// LossAnalysis is the loss breakdown and resulting efficiency.
type LossAnalysis struct {
	CoreLossW            float64 `json:"core_loss_W"`
	CoreLossDensityMWCm3 float64 `json:"core_loss_density_mW_cm3"`

	PrimaryCopperLossW   float64 `json:"primary_copper_loss_W"`
	SecondaryCopperLossW float64 `json:"secondary_copper_loss_W"`
	TotalCopperLossW     float64 `json:"total_copper_loss_W"`

	TotalLossW    float64 `json:"total_loss_W"`
	EfficiencyPct float64 `json:"efficiency_percent"`

	PfePcuRatio float64 `json:"Pfe_Pcu_ratio"`
}

// ThermalAnalysis is the steady-state thermal estimate.
type ThermalAnalysis struct {
	PowerDissipationWCm2  float64 `json:"power_dissipation_density_W_cm2"`
	TemperatureRiseC      float64 `json:"temperature_rise_C"`
	HotspotTempC          float64 `json:"hotspot_temp_C"`
	ThermalMarginC        float64 `json:"thermal_margin_C"`
	ThermalStatus         string  `json:"thermal_status"`
	CoolingRecommendation string  `json:"cooling_recommendation"`
}

// VerificationStatus is the design verdict per discipline, with the
// accumulated messages.
type VerificationStatus struct {
	Electrical string `json:"electrical"`
	Mechanical string `json:"mechanical"`
	Thermal    string `json:"thermal"`

	Warnings        []string `json:"warnings"`
	Errors          []string `json:"errors"`
	Recommendations []string `json:"recommendations"`
}

// AlternativeCore is a candidate that also met the requirement.
type AlternativeCore struct {
	PartNumber   string  `json:"part_number"`
	Manufacturer string  `json:"manufacturer"`
	Geometry     string  `json:"geometry"`
	Material     string  `json:"material"`
	ApCM4        float64 `json:"Ap_cm4"`
	Source       string  `json:"source"`
	DatasheetURL string  `json:"datasheet_url,omitempty"`
}

// TransformerResult is the complete transformer design output.
type TransformerResult struct {
	DesignMethod     string   `json:"design_method"`
	DesignMethodName string   `json:"design_method_name"`
	CalculatedApCM4  float64  `json:"calculated_Ap_cm4"`
	CalculatedKgCM5  *float64 `json:"calculated_Kg_cm5,omitempty"`
	OptimalPfePcu    *float64 `json:"optimal_Pfe_Pcu_ratio,omitempty"`

	Core             CoreSelection     `json:"core"`
	AlternativeCores []AlternativeCore `json:"alternative_cores"`
	Winding          WindingDesign     `json:"winding"`

	TurnsRatio      float64  `json:"turns_ratio"`
	MagnetizingUH   *float64 `json:"magnetizing_inductance_uH,omitempty"`
	LeakageUH       *float64 `json:"leakage_inductance_uH,omitempty"`

	Losses       LossAnalysis       `json:"losses"`
	Thermal      ThermalAnalysis    `json:"thermal"`
	Verification VerificationStatus `json:"verification"`
	Validation   *crossval.Report   `json:"validation,omitempty"`

	DesignViable    bool    `json:"design_viable"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// InductorWinding is the single-winding layout of an inductor.
type InductorWinding struct {
	Turns     int     `json:"turns"`
	WireAWG   int     `json:"wire_awg"`
	WireDiaMM float64 `json:"wire_dia_mm"`
	Strands   int     `json:"strands"`
	Layers    int     `json:"layers"`

	RdcMOhm float64 `json:"Rdc_mOhm"`
	RacRdc  float64 `json:"Rac_Rdc"`

	WindowUtilization float64 `json:"window_utilization"`
	KuStatus          string  `json:"Ku_status"`
}

// InductorResult is the complete inductor design output.
type InductorResult struct {
	EnergyUJ        float64 `json:"energy_uJ"`
	CalculatedApCM4 float64 `json:"calculated_Ap_cm4"`

	Core CoreSelection `json:"core"`

	AirGapMM       *float64 `json:"air_gap_mm,omitempty"`
	GapLocation    *string  `json:"gap_location,omitempty"`
	FringingFactor float64  `json:"fringing_factor"`

	BdcT                float64 `json:"Bdc_T"`
	BacT                float64 `json:"Bac_T"`
	BpeakT              float64 `json:"Bpeak_T"`
	SaturationMarginPct float64 `json:"saturation_margin_percent"`

	Winding InductorWinding `json:"winding"`

	CalculatedInductanceUH float64 `json:"calculated_inductance_uH"`
	InductanceTolerancePct float64 `json:"inductance_tolerance_percent"`

	Losses       LossAnalysis       `json:"losses"`
	Thermal      ThermalAnalysis    `json:"thermal"`
	Verification VerificationStatus `json:"verification"`
	Validation   *crossval.Report   `json:"validation,omitempty"`

	DesignViable    bool    `json:"design_viable"`
	ConfidenceScore float64 `json:"confidence_score"`
}
