// Package rdirect implements the direct-I/O read layer for DirectFS.
//
// The layer forces reads to bypass the page cache: it adds the platform's
// direct-I/O flag at open time (see the open-flag policy in open.go) and
// satisfies the alignment constraints direct I/O imposes on destination
// buffers, transparently, for callers that pass arbitrary unaligned buffers
// and expect ordinary read semantics.
//
// Writes are not intercepted: the layer embeds no write operations of its
// own and the chain delegates them past it untouched.
package rdirect

import (
	"context"
	"fmt"
	"time"

	"github.com/marmos91/directfs/pkg/metrics"
	"github.com/marmos91/directfs/pkg/vfs"
	"github.com/mitchellh/mapstructure"
)

// LayerName is the fixed name the layer registers under.
const LayerName = "rdirect"

// Layer is the direct-I/O read interception layer.
//
// It implements vfs.Layer. Reads run through one of two mutually exclusive
// variants selected by Config.Mode (see config.go); opens run through the
// flag policy; everything else delegates to the next layer.
//
// Thread safety:
// The layer holds no per-call mutable state. Concurrent reads on distinct
// handles are safe; serializing access to a single handle, if the host needs
// it, is the host's responsibility - the layer adds no locking.
type Layer struct {
	next    vfs.Layer
	cfg     Config
	metrics metrics.IOMetrics
	sys     sysOps
}

// New creates an rdirect layer wrapping next.
//
// A nil ioMetrics disables metrics via the no-op implementation.
func New(next vfs.Layer, cfg Config, ioMetrics metrics.IOMetrics) (*Layer, error) {
	if next == nil {
		return nil, fmt.Errorf("rdirect: next layer is required")
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("rdirect: %w", err)
	}

	if ioMetrics == nil {
		ioMetrics = metrics.NewNoopIOMetrics()
	}

	return &Layer{
		next:    next,
		cfg:     cfg,
		metrics: ioMetrics,
		sys:     hostSysOps{},
	}, nil
}

// Constructor returns a vfs.Constructor that decodes the layer's
// configuration section and builds the layer with the given metrics sink.
// This is what hosts register under LayerName.
func Constructor(ioMetrics metrics.IOMetrics) vfs.Constructor {
	return func(next vfs.Layer, options map[string]any) (vfs.Layer, error) {
		var cfg Config
		if options != nil {
			if err := mapstructure.Decode(options, &cfg); err != nil {
				return nil, fmt.Errorf("rdirect: invalid options: %w", err)
			}
		}
		return New(next, cfg, ioMetrics)
	}
}

// Pread reads from the handle at the given offset through the configured
// variant. See preadDirect and preadReopen for the variant contracts.
func (l *Layer) Pread(ctx context.Context, h *vfs.Handle, buf []byte, offset int64) (int, error) {
	start := time.Now()

	var count int
	var err error
	switch l.cfg.Mode {
	case ModeReopen:
		count, err = l.preadReopen(ctx, h, buf, offset)
	default:
		count, err = l.preadDirect(ctx, h, buf, offset)
	}

	l.metrics.RecordRead(l.cfg.Mode, time.Since(start), err)
	if count > 0 {
		l.metrics.RecordBytesRead(int64(count))
	}

	return count, err
}

// Close delegates to the next layer.
func (l *Layer) Close(h *vfs.Handle) error {
	return l.next.Close(h)
}
