// Package config defines the application configuration and loads it from
// YAML with environment overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Denys/transformer-designer/internal/design"
	"github.com/Denys/transformer-designer/pkg/constants"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// TDESIGN_SERVER_ADDRESS.
const EnvPrefix = "TDESIGN"

// Configuration holds all runtime settings for the designer service and CLI.
type Configuration struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
	Catalog  CatalogConfig  `yaml:"catalog" mapstructure:"catalog"`
	Defaults DefaultsConfig `yaml:"defaults" mapstructure:"defaults"`
}

// ServerConfig holds the HTTP listener parameters.
type ServerConfig struct {
	Address        string  `yaml:"address" mapstructure:"address"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
	MaxBodyBytes   int64   `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// LoggingConfig holds logging configuration options.
type LoggingConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`             // debug, info, warn, error
	Encoding   string `yaml:"encoding" mapstructure:"encoding"`       // json, console
	OutputFile string `yaml:"output_file" mapstructure:"output_file"` // optional file output
}

// CatalogConfig controls the remote core database client.
type CatalogConfig struct {
	ExternalURL     string `yaml:"external_url" mapstructure:"external_url"`
	ExternalEnabled bool   `yaml:"external_enabled" mapstructure:"external_enabled"`
	TimeoutSeconds  int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// Timeout returns the external client timeout as a duration.
func (c CatalogConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultsConfig carries site-wide requirement defaults applied to unset
// request fields before a pipeline runs.
type DefaultsConfig struct {
	AmbientTempC       float64 `yaml:"ambient_temp_C" mapstructure:"ambient_temp_c"`
	MaxTempRiseC       float64 `yaml:"max_temp_rise_C" mapstructure:"max_temp_rise_c"`
	CurrentDensityACm2 float64 `yaml:"current_density_A_cm2" mapstructure:"current_density_a_cm2"`
	Ku                 float64 `yaml:"window_utilization_Ku" mapstructure:"window_utilization_ku"`
}

// ApplyTransformer fills unset fields of a transformer request with the
// configured site defaults.
func (d DefaultsConfig) ApplyTransformer(req *design.TransformerRequirements) {
	if req.AmbientTempC == 0 && d.AmbientTempC != 0 {
		req.AmbientTempC = d.AmbientTempC
	}
	if req.MaxTempRiseC == 0 && d.MaxTempRiseC != 0 {
		req.MaxTempRiseC = d.MaxTempRiseC
	}
	if req.MaxCurrentDensity == 0 && d.CurrentDensityACm2 != 0 {
		req.MaxCurrentDensity = d.CurrentDensityACm2
	}
	if req.Ku == 0 && d.Ku != 0 {
		req.Ku = d.Ku
	}
}

// ApplyInductor fills unset fields of an inductor request with the
// configured site defaults.
func (d DefaultsConfig) ApplyInductor(req *design.InductorRequirements) {
	if req.AmbientTempC == 0 && d.AmbientTempC != 0 {
		req.AmbientTempC = d.AmbientTempC
	}
	if req.MaxTempRiseC == 0 && d.MaxTempRiseC != 0 {
		req.MaxTempRiseC = d.MaxTempRiseC
	}
	if req.MaxCurrentDensity == 0 && d.CurrentDensityACm2 != 0 {
		req.MaxCurrentDensity = d.CurrentDensityACm2
	}
}

// Default returns the built-in configuration, the values used when no file
// and no environment overrides are present.
func Default() *Configuration {
	return &Configuration{
		Server: ServerConfig{
			Address:        constants.DefaultServerAddress,
			RateLimitRPS:   constants.DefaultRateLimitRPS,
			RateLimitBurst: constants.DefaultRateLimitBurst,
			MaxBodyBytes:   constants.DefaultMaxBodyBytes,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
		Catalog: CatalogConfig{
			ExternalEnabled: true,
			TimeoutSeconds:  10,
		},
		Defaults: DefaultsConfig{
			AmbientTempC:       constants.DefaultAmbientTempC,
			MaxTempRiseC:       constants.DefaultTempRiseC,
			CurrentDensityACm2: constants.DefaultCurrentDensity,
			Ku:                 constants.DefaultTransformerKu,
		},
	}
}

// registerDefaults seeds every key so environment-only overrides survive
// Unmarshal.
func registerDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("server.rate_limit_rps", d.Server.RateLimitRPS)
	v.SetDefault("server.rate_limit_burst", d.Server.RateLimitBurst)
	v.SetDefault("server.max_body_bytes", d.Server.MaxBodyBytes)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.encoding", d.Logging.Encoding)
	v.SetDefault("logging.output_file", d.Logging.OutputFile)
	v.SetDefault("catalog.external_url", d.Catalog.ExternalURL)
	v.SetDefault("catalog.external_enabled", d.Catalog.ExternalEnabled)
	v.SetDefault("catalog.timeout_seconds", d.Catalog.TimeoutSeconds)
	v.SetDefault("defaults.ambient_temp_c", d.Defaults.AmbientTempC)
	v.SetDefault("defaults.max_temp_rise_c", d.Defaults.MaxTempRiseC)
	v.SetDefault("defaults.current_density_a_cm2", d.Defaults.CurrentDensityACm2)
	v.SetDefault("defaults.window_utilization_ku", d.Defaults.Ku)
}

// LoadConfiguration reads the configuration file and applies environment
// overrides. An explicit path must exist; with an empty path the default
// config name is searched in the working directory, and a missing file
// yields the built-in defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	registerDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := configPath != ""
	if explicit {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || explicit {
			return nil, fmt.Errorf("read configuration: %w", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	return &configuration, nil
}

// ValidateConfiguration returns a description of every setting outside its
// accepted range. An empty slice means the configuration is usable.
func (c *Configuration) ValidateConfiguration() []string {
	var problems []string

	if strings.TrimSpace(c.Server.Address) == "" {
		problems = append(problems, "server.address must not be empty")
	}
	if c.Server.RateLimitRPS <= 0 {
		problems = append(problems, fmt.Sprintf("server.rate_limit_rps must be positive, got %g", c.Server.RateLimitRPS))
	}
	if c.Server.RateLimitBurst < 1 {
		problems = append(problems, fmt.Sprintf("server.rate_limit_burst must be at least 1, got %d", c.Server.RateLimitBurst))
	}
	if c.Server.MaxBodyBytes <= 0 {
		problems = append(problems, fmt.Sprintf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes))
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	switch c.Logging.Encoding {
	case "", "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("logging.encoding %q is not one of json, console", c.Logging.Encoding))
	}

	if c.Catalog.ExternalEnabled && c.Catalog.TimeoutSeconds <= 0 {
		problems = append(problems, fmt.Sprintf("catalog.timeout_seconds must be positive, got %d", c.Catalog.TimeoutSeconds))
	}

	if d := c.Defaults.AmbientTempC; d != 0 && (d < -40 || d > 85) {
		problems = append(problems, fmt.Sprintf("defaults.ambient_temp_C must be -40-85, got %g", d))
	}
	if d := c.Defaults.MaxTempRiseC; d != 0 && (d < 20 || d > 100) {
		problems = append(problems, fmt.Sprintf("defaults.max_temp_rise_C must be 20-100, got %g", d))
	}
	if d := c.Defaults.CurrentDensityACm2; d != 0 && (d < 100 || d > 800) {
		problems = append(problems, fmt.Sprintf("defaults.current_density_A_cm2 must be 100-800, got %g", d))
	}
	if d := c.Defaults.Ku; d != 0 && (d < 0.15 || d > 0.55) {
		problems = append(problems, fmt.Sprintf("defaults.window_utilization_Ku must be 0.15-0.55, got %g", d))
	}

	return problems
}
