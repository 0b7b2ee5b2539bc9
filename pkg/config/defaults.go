package config

import (
	"strings"

	"github.com/marmos91/directfs/pkg/vfs/rdirect"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// This function is called after loading configuration from file and
// environment variables to fill in any missing values with sensible defaults.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
//   - Layer-specific defaults are handled by layer implementations
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyChainDefaults(&cfg.Chain)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)
}

// applyChainDefaults sets the default chain: just the rdirect layer over the
// terminal syscall layer.
func applyChainDefaults(cfg *ChainConfig) {
	if len(cfg.Layers) == 0 {
		cfg.Layers = []string{rdirect.LayerName}
	}
}

// GetDefaultConfig returns a configuration with all defaults applied.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
