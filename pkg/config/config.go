// Package config holds the host and device configuration of the radio
// command engine: the target device capabilities, code generation naming and
// logging.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/herlein/radiocfg/pkg/codegen"
)

// Band limits in MHz
const (
	DefaultLowFreqLimit = 600.0
	DefaultHiFreqLimit  = 2000.0
)

// Configuration errors
var (
	// ErrInvalidBandLimits indicates the low band limit is not below the high one
	ErrInvalidBandLimits = errors.New("low frequency limit must be below high frequency limit")

	// ErrInvalidLogLevel indicates an unknown log level
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat indicates an unknown log format
	ErrInvalidLogFormat = errors.New("invalid log format")

	// ErrMissingPrefix indicates empty code generation prefixes
	ErrMissingPrefix = errors.New("command and override prefixes are required")
)

// Config is the complete host configuration
type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	CodeGen CodeGenConfig `yaml:"codegen"`
	Logging LoggingConfig `yaml:"logging"`

	// Bundle is the descriptor bundle path; empty selects the built-in
	// profiles
	Bundle string `yaml:"bundle,omitempty"`
}

// DeviceConfig describes the target device
type DeviceConfig struct {
	Name         string  `yaml:"name"`
	Target       string  `yaml:"target,omitempty"`   // board, e.g. LP_CC1352P1
	HighPA       bool    `yaml:"highPA"`             // device has a high-power amplifier
	Prop2400     bool    `yaml:"prop2400"`           // proprietary 2.4 GHz supported
	FrontEnd     string  `yaml:"frontEnd,omitempty"` // front-end configuration id
	LowFreqLimit float64 `yaml:"lowFreqLimit"`
	HiFreqLimit  float64 `yaml:"hiFreqLimit"`
}

// CodeGenConfig controls generated symbol names
type CodeGenConfig struct {
	Symbols         codegen.Symbols `yaml:"symbols"`
	Legacy          bool            `yaml:"legacy,omitempty"`
	MultiProtocol   bool            `yaml:"multiProtocol,omitempty"`
	CustomOverrides []string        `yaml:"customOverrides,omitempty"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level      string `yaml:"level"`          // debug, info, warn, error
	Format     string `yaml:"format"`         // text, json
	File       string `yaml:"file,omitempty"` // empty logs to stderr
	MaxSizeMB  int    `yaml:"maxSizeMB,omitempty"`
	MaxBackups int    `yaml:"maxBackups,omitempty"`
	MaxAgeDays int    `yaml:"maxAgeDays,omitempty"`
	Compress   bool   `yaml:"compress,omitempty"`
}

// Default returns the configuration of a CC1352R-class device
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Name:         "CC1352R1F3",
			Target:       "LP_CC1352R1",
			LowFreqLimit: DefaultLowFreqLimit,
			HiFreqLimit:  DefaultHiFreqLimit,
		},
		CodeGen: CodeGenConfig{
			Symbols: codegen.Symbols{CmdPrefix: "RF_", Overrides: "pOverrides"},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads the configuration: defaults, then the file (if path is not
// empty), then RADIOCFG_* environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadInto(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies RADIOCFG_* environment variables
func applyEnvOverrides(cfg *Config) error {
	if val := os.Getenv("RADIOCFG_DEVICE"); val != "" {
		cfg.Device.Name = val
	}
	if val := os.Getenv("RADIOCFG_TARGET"); val != "" {
		cfg.Device.Target = val
	}
	if val := os.Getenv("RADIOCFG_FRONT_END"); val != "" {
		cfg.Device.FrontEnd = val
	}
	if val := os.Getenv("RADIOCFG_HIGH_PA"); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("RADIOCFG_HIGH_PA: %w", err)
		}
		cfg.Device.HighPA = b
	}
	if val := os.Getenv("RADIOCFG_PROP_2400"); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("RADIOCFG_PROP_2400: %w", err)
		}
		cfg.Device.Prop2400 = b
	}
	if val := os.Getenv("RADIOCFG_BUNDLE"); val != "" {
		cfg.Bundle = val
	}
	if val := os.Getenv("RADIOCFG_LOG_LEVEL"); val != "" {
		cfg.Logging.Level = strings.ToLower(val)
	}
	if val := os.Getenv("RADIOCFG_LOG_FILE"); val != "" {
		cfg.Logging.File = val
	}
	return nil
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Device.LowFreqLimit >= c.Device.HiFreqLimit {
		return fmt.Errorf("%w: %.1f >= %.1f", ErrInvalidBandLimits, c.Device.LowFreqLimit, c.Device.HiFreqLimit)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %s", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %s", ErrInvalidLogFormat, c.Logging.Format)
	}

	if c.CodeGen.Symbols.CmdPrefix == "" || c.CodeGen.Symbols.Overrides == "" {
		return ErrMissingPrefix
	}

	return nil
}
