package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/iamNilotpal/squeeze/internal/core/domain"
	"github.com/iamNilotpal/squeeze/pkg/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "SQUEEZE_"

type Config struct {
	DefaultPreset domain.Preset           `yaml:"default_preset"` // Preset used when none is given
	MaxInputSize  int64                   `yaml:"max_input_size"` // Largest accepted input in bytes, 0 for no limit
	EnableMetrics bool                    `yaml:"enable_metrics"` // Enable metrics collection
	Log           LogConfig               `yaml:"log"`
	Watermark     domain.WatermarkOptions `yaml:"watermark"`
	PDF           PDFConfig               `yaml:"pdf"`
}

// Holds logger configuration
type LogConfig struct {
	Level      string `yaml:"level"`       // debug, info, warn, error
	File       string `yaml:"file"`        // Log file path, stderr when empty
	MaxSizeMB  int    `yaml:"max_size_mb"` // Size before rotation
	MaxBackups int    `yaml:"max_backups"` // Rotated files kept
}

// Holds PDF engine configuration
type PDFConfig struct {
	LicenseKey string `yaml:"license_key"` // Metered license key, optional
}

// Returns a Config struct with reasonable default values.
func DefaultConfig() *Config {
	return &Config{
		DefaultPreset: domain.PresetMedium,
		MaxInputSize:  256 * 1024 * 1024, // 256MB
		EnableMetrics: false,
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Watermark: *domain.DefaultWatermarkOptions(),
	}
}

// Loads configuration from a YAML file on top of the defaults, then applies
// .env and SQUEEZE_* environment overrides. An empty filename skips the file.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	if filename != "" {
		// Read the config file
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// A missing .env file is not an error.
	_ = godotenv.Load()

	if err := applyEnv(config); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func applyEnv(config *Config) error {
	if v, ok := lookup("LOG_LEVEL"); ok {
		config.Log.Level = v
	}

	if v, ok := lookup("LOG_FILE"); ok {
		config.Log.File = v
	}

	if v, ok := lookup("PDF_LICENSE_KEY"); ok {
		config.PDF.LicenseKey = v
	}

	if v, ok := lookup("DEFAULT_PRESET"); ok {
		config.DefaultPreset = domain.Preset(v)
	}

	if v, ok := lookup("ENABLE_METRICS"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return errors.NewValidationError(EnvPrefix+"ENABLE_METRICS", v, err)
		}
		config.EnableMetrics = enabled
	}

	if v, ok := lookup("MAX_INPUT_SIZE"); ok {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.NewValidationError(EnvPrefix+"MAX_INPUT_SIZE", v, err)
		}
		config.MaxInputSize = size
	}

	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func validateConfig(config *Config) error {
	if _, err := domain.ParsePreset(string(config.DefaultPreset)); err != nil {
		return err
	}

	if config.MaxInputSize < 0 {
		return errors.NewValidationError(
			"max_input_size", config.MaxInputSize, fmt.Errorf("max_input_size must not be negative"),
		)
	}

	if err := validateLogConfig(&config.Log); err != nil {
		return fmt.Errorf("invalid log configuration: %w", err)
	}

	return nil
}

func validateLogConfig(config *LogConfig) error {
	switch strings.ToLower(config.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.NewValidationError(
			"log.level", config.Level, fmt.Errorf("level must be one of debug, info, warn, error"),
		)
	}

	if config.MaxSizeMB < 0 {
		return errors.NewValidationError(
			"log.max_size_mb", config.MaxSizeMB, fmt.Errorf("max_size_mb must not be negative"),
		)
	}

	if config.MaxBackups < 0 {
		return errors.NewValidationError(
			"log.max_backups", config.MaxBackups, fmt.Errorf("max_backups must not be negative"),
		)
	}

	return nil
}
