package rdirect

import (
	"context"

	"github.com/marmos91/directfs/internal/logger"
	"github.com/marmos91/directfs/pkg/vfs"
)

// PreadSubmit fakes an asynchronous read by calling the synchronous read and
// resolving the request before returning it.
//
// No overlap occurs: the calling goroutine blocks for the full duration of
// the device read, and the host's dispatch loop observes the completion on
// its next iteration as if it had been asynchronous. This is a deliberate
// calling-convention adapter, not non-blocking I/O - the loop's
// responsiveness is bounded by the device's worst-case read latency.
//
// Cancellation is not supported: once submitted, the read has already run to
// completion. The context is only consulted by the underlying read before it
// starts.
func (l *Layer) PreadSubmit(ctx context.Context, h *vfs.Handle, buf []byte, offset int64) (*vfs.Request, error) {
	req := vfs.NewRequest()

	count, err := l.Pread(ctx, h, buf, offset)
	req.Resolve(count, err)

	logger.Trace("rdirect: submit request %s fd=%d offset=%d resolved count=%d err=%v",
		req.ID, h.Fd, offset, count, err)
	return req, nil
}

// PreadCollect returns the outcome stored by PreadSubmit, propagating a
// stored error unchanged, and consumes the request.
func (l *Layer) PreadCollect(req *vfs.Request) (int, error) {
	return req.Collect()
}
