package rdirect

import (
	"context"
	"fmt"

	"github.com/marmos91/directfs/internal/logger"
	"github.com/marmos91/directfs/pkg/vfs"
)

// preadReopen is the re-opened single-shot read: instead of trusting the
// handle's open flags, it resolves the descriptor's current path and opens an
// independent direct-I/O descriptor scoped to this one call.
//
// The variant does not support continuation reads. A read at any nonzero
// offset returns 0 ("end of file") without issuing a single syscall, so the
// entire file must fit in one call. Files larger than the caller's buffer are
// silently truncated - the price of tolerating hosts that drop the adjusted
// open flags.
func (l *Layer) preadReopen(ctx context.Context, h *vfs.Handle, buf []byte, offset int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if offset > 0 {
		logger.Trace("rdirect: reopen pread fd=%d offset=%d: single-shot EOF", h.Fd, offset)
		return 0, nil
	}

	if len(buf) < AlignSize {
		return 0, fmt.Errorf("%d bytes (need %d): %w", len(buf), AlignSize, ErrBufferTooSmall)
	}

	path, err := l.sys.FdPath(h.Fd)
	if err != nil {
		return 0, fmt.Errorf("%w: fd=%d: %w", ErrPathResolution, h.Fd, err)
	}

	fd, err := l.sys.OpenDirect(path)
	l.metrics.RecordReopen(err)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}
	// Scoped acquisition: the independent descriptor is released on every
	// exit path, success or failure.
	defer l.sys.Close(fd)

	// Strict policy: the freshly-opened descriptor carries the direct-I/O
	// flag, so the transfer length must be a multiple of the alignment
	// unit as well.
	w, err := alignBuffer(buf, true)
	if err != nil {
		return 0, err
	}

	logger.Trace("rdirect: reopen pread %q fd=%d window off=%d n=%d", path, fd, w.off, w.n)
	l.metrics.RecordBytesRealigned(int64(len(buf) - w.n))

	count, err := l.sys.Pread(fd, w.slice(buf), 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDeviceRead, err)
	}

	relocate(buf, w, count)

	// Optional terminator for callers that expect string-like results.
	// Written only into spare capacity, never past the caller's buffer.
	if l.cfg.AppendNUL && count < len(buf) {
		buf[count] = 0
	}

	return count, nil
}
