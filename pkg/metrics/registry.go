// Package metrics defines the instrumentation sinks DirectFS layers report
// into. Metrics are optional: a host that never calls InitRegistry pays
// nothing, because every layer then runs against the no-op sink.
//
// The I/O path only ever sees the IOMetrics interface; the Prometheus
// implementation lives in the prometheus subpackage so the hot path does not
// depend on a metrics backend.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// registry is write-once: set under registryOnce, read freely after.
	registry     *prometheus.Registry
	registryOnce sync.Once
)

// InitRegistry initializes the global Prometheus registry. Safe to call more
// than once; only the first call takes effect. Hosts that skip it keep
// metrics disabled and constructors hand out no-op sinks.
func InitRegistry() {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()
	})
}

// GetRegistry returns the global registry, or nil when metrics are disabled.
// The sync.Once in InitRegistry orders the write before any read here.
func GetRegistry() *prometheus.Registry {
	return registry
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	return GetRegistry() != nil
}
