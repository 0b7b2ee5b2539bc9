package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete DirectFS configuration.
//
// This structure captures the configurable aspects of the interception
// library: logging, metrics, and the chain of layers with their per-layer
// options. DirectFS has no user-facing surface of its own; a host process
// typically loads this section from its own configuration tree and hands the
// result to BuildChain.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (DIRECTFS_*)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging"`

	// Metrics controls Prometheus metrics collection
	Metrics MetricsConfig `mapstructure:"metrics"`

	// Chain defines the layer stack and per-layer options
	Chain ChainConfig `mapstructure:"chain"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: TRACE, DEBUG, INFO, WARN, ERROR (case-insensitive,
	// normalized to uppercase). TRACE logs every intercepted call.
	Level string `mapstructure:"level" validate:"required,oneof=TRACE DEBUG INFO WARN ERROR trace debug info warn error"`
}

// MetricsConfig controls metrics collection.
type MetricsConfig struct {
	// Enabled turns on the global Prometheus registry. When false, layers
	// receive no-op metrics sinks with zero overhead.
	Enabled bool `mapstructure:"enabled"`
}

// ChainConfig defines the interception chain.
type ChainConfig struct {
	// Layers lists layer names outermost-first. Operations enter at
	// Layers[0] and end at the terminal syscall layer.
	Layers []string `mapstructure:"layers" validate:"dive,required"`

	// Options holds each layer's configuration section, keyed by layer
	// name. Sections are decoded by the layer's own constructor, so their
	// shape is layer-specific.
	Options map[string]map[string]any `mapstructure:"options"`
}

// Load reads configuration from the given path, applies defaults, and
// validates the result.
//
// Parameters:
//   - configPath: Path to config file (empty string uses default location)
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: Configuration loading or validation error
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures viper with environment variables and config file
// settings.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use DIRECTFS_ prefix and underscores
	// Example: DIRECTFS_LOGGING_LEVEL=TRACE
	v.SetEnvPrefix("DIRECTFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists. A missing file
// is acceptable - defaults apply.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to the
// current directory if the home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "directfs")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "directfs")
}
