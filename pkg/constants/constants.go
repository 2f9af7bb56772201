// Package constants provides shared constants for the transformer-designer application.
package constants

import (
	"math"
	"time"
)

// Physical constants
const (
	// MuZero is the permeability of free space [H/m]
	MuZero = 4 * math.Pi * 1e-7

	// CopperResistivityOhmM is copper resistivity at 20 degC [ohm-m]
	CopperResistivityOhmM = 1.72e-8

	// CopperResistivityOhmCm is copper resistivity at 20 degC [ohm-cm]
	CopperResistivityOhmCm = 1.724e-6

	// CopperResistivityOhmCmHot is copper resistivity at 100 degC [ohm-cm]
	CopperResistivityOhmCmHot = 2.3e-6

	// CopperTempCoefficient is the temperature coefficient of copper resistance [1/degC]
	CopperTempCoefficient = 0.00393

	// SkinDepthCoefficientMM is the numerator of the copper skin depth formula
	// at 20 degC, yielding millimeters for frequency in Hz
	SkinDepthCoefficientMM = 66.2
)

// Waveform coefficients (Kf)
const (
	// KfSinusoidal is the waveform coefficient for sinusoidal excitation
	KfSinusoidal = 4.44

	// KfSquare is the waveform coefficient for square-wave excitation
	KfSquare = 4.0

	// KfTriangular is the waveform coefficient for triangular excitation
	KfTriangular = 4.0

	// KfDefault is used when the waveform is unknown
	KfDefault = 4.44
)

// Window utilization constants
const (
	// WindowFillFactor accounts for insulation and winding fill when
	// converting bare copper area to occupied window area
	WindowFillFactor = 1.3

	// KuWarningThreshold is the window utilization above which fill is marginal
	KuWarningThreshold = 0.45

	// KuErrorThreshold is the window utilization above which the design overfills
	KuErrorThreshold = 0.6

	// DefaultTransformerKu is the default window utilization target for transformers
	DefaultTransformerKu = 0.4

	// InductorKu is the window utilization target for gapped inductors
	InductorKu = 0.35

	// KuLowerBound is the minimum acceptable Ku for sizing inputs
	KuLowerBound = 0.1

	// KuUpperBound is the maximum acceptable Ku for sizing inputs
	KuUpperBound = 0.8
)

// Thermal constants
const (
	// TempRiseCoefficient is the McLyman temperature rise coefficient
	TempRiseCoefficient = 450.0

	// TempRiseExponent is the McLyman temperature rise exponent
	TempRiseExponent = 0.826

	// ForcedAirFactor is the temperature rise multiplier with forced air cooling
	ForcedAirFactor = 0.5

	// FerriteMaxTempC is the operating temperature ceiling for ferrite cores [degC]
	FerriteMaxTempC = 120.0

	// DefaultMaxTempC is the operating temperature ceiling for other materials [degC]
	DefaultMaxTempC = 150.0

	// ThermalMarginC is the margin below a limit at which a design is flagged [degC]
	ThermalMarginC = 10.0
)

// Design defaults
const (
	// FerriteMinFrequencyHz is the frequency above which ferrite cores are
	// selected; at or below it laminated silicon steel applies [Hz]
	FerriteMinFrequencyHz = 1000.0

	// DefaultCurrentDensity is the default winding current density [A/cm^2]
	DefaultCurrentDensity = 400.0

	// DefaultAmbientTempC is the default ambient temperature [degC]
	DefaultAmbientTempC = 40.0

	// DefaultTempRiseC is the default maximum temperature rise [degC]
	DefaultTempRiseC = 50.0

	// DefaultWireTempC is the default conductor temperature for resistance
	// and skin depth evaluation [degC]
	DefaultWireTempC = 100.0

	// MinSaturationMarginPct is the saturation margin below which a design fails [%]
	MinSaturationMarginPct = 10.0

	// LowSaturationMarginPct is the saturation margin below which a design warns [%]
	LowSaturationMarginPct = 15.0

	// InductanceTolerancePct is the achieved-inductance deviation that triggers a warning [%]
	InductanceTolerancePct = 10.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodyBytes is the default maximum request body size (256 KB)
	DefaultMaxBodyBytes int64 = 256 * 1024

	// DefaultRateLimitRPS is the default per-client request rate [req/s]
	DefaultRateLimitRPS = 5.0

	// DefaultRateLimitBurst is the default per-client burst allowance
	DefaultRateLimitBurst = 10

	// DefaultServerReadTimeout bounds reading a request including its body
	DefaultServerReadTimeout = 15 * time.Second

	// DefaultServerWriteTimeout bounds writing a response; exports can be slow
	DefaultServerWriteTimeout = 30 * time.Second
)

// Status values shared by winding, thermal, and verification checks
const (
	// StatusOK indicates a check passed cleanly
	StatusOK = "ok"

	// StatusWarning indicates a marginal but workable result
	StatusWarning = "warning"

	// StatusError indicates a check failed
	StatusError = "error"
)

// PercentageMultiplier is used for percentage conversions
const PercentageMultiplier = 100.0
