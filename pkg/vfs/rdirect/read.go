package rdirect

import (
	"context"
	"fmt"

	"github.com/marmos91/directfs/internal/logger"
	"github.com/marmos91/directfs/pkg/vfs"
)

// preadDirect is the in-place direct read: it reuses the already-open handle,
// which the open-flag policy opened with the direct-I/O flag, and delegates
// the positioned read to the next layer through an aligned window over the
// caller's buffer.
//
// The window uses the relaxed policy (no length round-down): the next layer
// tolerates a non-aligned transfer length as long as the buffer base is
// aligned. Short reads keep ordinary semantics - the caller continues at
// offset+count.
func (l *Layer) preadDirect(ctx context.Context, h *vfs.Handle, buf []byte, offset int64) (int, error) {
	w, err := alignBuffer(buf, false)
	if err != nil {
		return 0, err
	}

	logger.Trace("rdirect: pread fd=%d offset=%d len=%d window off=%d n=%d",
		h.Fd, offset, len(buf), w.off, w.n)
	l.metrics.RecordBytesRealigned(int64(len(buf) - w.n))

	count, err := l.next.Pread(ctx, h, w.slice(buf), offset)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDeviceRead, err)
	}

	relocate(buf, w, count)
	return count, nil
}
