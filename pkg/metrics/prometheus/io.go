// Package prometheus contains the Prometheus-backed implementations of the
// DirectFS metrics interfaces.
package prometheus

import (
	"time"

	"github.com/marmos91/directfs/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ioMetrics is the Prometheus implementation of metrics.IOMetrics.
type ioMetrics struct {
	readsTotal     *prometheus.CounterVec
	readDuration   *prometheus.HistogramVec
	bytesRead      prometheus.Counter
	bytesRealigned prometheus.Counter
	reopensTotal   *prometheus.CounterVec
	openDecisions  *prometheus.CounterVec
}

// NewIOMetrics creates a new Prometheus-backed IOMetrics instance.
//
// Returns a no-op implementation if metrics are not enabled (InitRegistry
// not called).
func NewIOMetrics() metrics.IOMetrics {
	if !metrics.IsEnabled() {
		return metrics.NewNoopIOMetrics()
	}

	reg := metrics.GetRegistry()

	return &ioMetrics{
		readsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "directfs_reads_total",
				Help: "Total number of intercepted reads by variant and status",
			},
			[]string{"variant", "status"},
		),
		readDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "directfs_read_duration_milliseconds",
				Help: "Duration of intercepted reads in milliseconds",
				Buckets: []float64{
					1,     // 1ms
					10,    // 10ms
					100,   // 100ms
					1000,  // 1s
					10000, // 10s
				},
			},
			[]string{"variant"},
		),
		bytesRead: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "directfs_read_bytes_total",
				Help: "Total bytes delivered to callers by intercepted reads",
			},
		),
		bytesRealigned: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "directfs_realigned_bytes_total",
				Help: "Total bytes of caller buffer capacity lost to alignment rounding",
			},
		),
		reopensTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "directfs_reopens_total",
				Help: "Total independent re-opens performed by the single-shot read path",
			},
			[]string{"status"},
		),
		openDecisions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "directfs_open_direct_decisions_total",
				Help: "Open-flag policy decisions, by whether the direct-I/O flag was added",
			},
			[]string{"applied"},
		),
	}
}

func (m *ioMetrics) RecordRead(variant string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.readsTotal.WithLabelValues(variant, status).Inc()
	m.readDuration.WithLabelValues(variant).Observe(float64(duration.Milliseconds()))
}

func (m *ioMetrics) RecordBytesRead(bytes int64) {
	m.bytesRead.Add(float64(bytes))
}

func (m *ioMetrics) RecordBytesRealigned(bytes int64) {
	m.bytesRealigned.Add(float64(bytes))
}

func (m *ioMetrics) RecordReopen(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.reopensTotal.WithLabelValues(status).Inc()
}

func (m *ioMetrics) RecordOpenDirect(applied bool) {
	if applied {
		m.openDecisions.WithLabelValues("true").Inc()
		return
	}
	m.openDecisions.WithLabelValues("false").Inc()
}
