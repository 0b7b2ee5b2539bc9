package config

import (
	"fmt"

	"github.com/marmos91/directfs/internal/logger"
	"github.com/marmos91/directfs/pkg/metrics"
	promio "github.com/marmos91/directfs/pkg/metrics/prometheus"
	"github.com/marmos91/directfs/pkg/vfs"
	"github.com/marmos91/directfs/pkg/vfs/rdirect"
)

// NewRegistry creates a layer registry with all built-in layers registered.
//
// The metrics sink is shared by all built-in layers; pass nil for no-op
// metrics.
func NewRegistry(ioMetrics metrics.IOMetrics) (*vfs.Registry, error) {
	reg := vfs.NewRegistry()

	if err := reg.Register(rdirect.LayerName, rdirect.Constructor(ioMetrics)); err != nil {
		return nil, fmt.Errorf("register %q: %w", rdirect.LayerName, err)
	}

	return reg, nil
}

// BuildChain constructs the configured interception chain over a terminal
// syscall layer.
//
// Side effects: applies the logging level and, when metrics are enabled,
// initializes the global Prometheus registry.
//
// Returns:
//   - vfs.Layer: the outermost layer of the chain
//   - error: unknown layer names or invalid layer options
func BuildChain(cfg *Config) (vfs.Layer, error) {
	logger.SetLevel(cfg.Logging.Level)

	var ioMetrics metrics.IOMetrics
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		ioMetrics = promio.NewIOMetrics()
	}

	reg, err := NewRegistry(ioMetrics)
	if err != nil {
		return nil, err
	}

	chain, err := reg.Build(cfg.Chain.Layers, vfs.NewPassthrough(), cfg.Chain.Options)
	if err != nil {
		return nil, fmt.Errorf("build chain (registered layers: %v): %w", reg.ListLayers(), err)
	}

	logger.Debug("config: built chain %v", cfg.Chain.Layers)
	return chain, nil
}
