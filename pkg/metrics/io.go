package metrics

import "time"

// IOMetrics provides observability for direct-I/O layer operations.
//
// Implementations can collect metrics about reads, alignment overhead, and
// open-flag decisions. This interface is optional - if not provided to a
// layer, a no-op implementation is used with zero overhead.
type IOMetrics interface {
	// RecordRead records a completed read with its variant ("direct" or
	// "reopen"), duration, and outcome.
	RecordRead(variant string, duration time.Duration, err error)

	// RecordBytesRead records bytes delivered to the caller.
	RecordBytesRead(bytes int64)

	// RecordBytesRealigned records bytes lost to buffer rounding, i.e. the
	// gap between what the caller asked for and what the aligned window
	// could carry.
	RecordBytesRealigned(bytes int64)

	// RecordReopen records an independent re-open performed by the
	// single-shot read path and its outcome.
	RecordReopen(err error)

	// RecordOpenDirect records an open-flag decision: applied reports
	// whether the direct-I/O flag was added.
	RecordOpenDirect(applied bool)
}

// noopIOMetrics is the no-op implementation used when metrics are disabled.
type noopIOMetrics struct{}

// NewNoopIOMetrics returns an IOMetrics implementation that discards all
// observations.
func NewNoopIOMetrics() IOMetrics {
	return noopIOMetrics{}
}

func (noopIOMetrics) RecordRead(string, time.Duration, error) {}
func (noopIOMetrics) RecordBytesRead(int64)                   {}
func (noopIOMetrics) RecordBytesRealigned(int64)              {}
func (noopIOMetrics) RecordReopen(error)                      {}
func (noopIOMetrics) RecordOpenDirect(bool)                   {}
