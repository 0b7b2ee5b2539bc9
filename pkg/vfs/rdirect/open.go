package rdirect

import (
	"context"

	"github.com/marmos91/directfs/internal/logger"
	"github.com/marmos91/directfs/pkg/vfs"
	"golang.org/x/sys/unix"
)

// wantsDirect decides whether an open should bypass the page cache.
//
// Pure function of the open intent. Direct I/O is requested unless:
//   - the open targets a directory (O_DIRECTORY set), or
//   - mode is zero, a heuristic for pseudo and special files (for example
//     /proc/self/fd links) where direct I/O is unsafe or meaningless.
//
// The mode heuristic is a conservative approximation, not a guarantee: it
// can misclassify legitimate zero-mode files and misfire on other
// pseudo-filesystems. Callers needing strict correctness must treat the
// policy as best-effort.
func wantsDirect(flags int, mode uint32) bool {
	if flags&unix.O_DIRECTORY != 0 {
		return false
	}
	if mode == 0 {
		return false
	}
	return true
}

// decideFlags returns the effective open flags: the requested flags with the
// platform's direct-I/O flag added when the policy asks for it. Pure
// function: same inputs always yield the same output.
func decideFlags(flags int, mode uint32) int {
	if !wantsDirect(flags, mode) {
		return flags
	}
	return flags | directIOFlag
}

// OpenAt applies the open-flag policy and always delegates the (possibly
// adjusted) open to the next layer. On platforms where cache bypass is a
// per-descriptor property rather than an open flag, it is applied to the
// returned handle after the delegated open succeeds.
func (l *Layer) OpenAt(ctx context.Context, dir *vfs.Handle, name string, flags int, mode uint32) (*vfs.Handle, error) {
	direct := wantsDirect(flags, mode)
	effective := decideFlags(flags, mode)

	logger.Trace("rdirect: openat %q flags=%#x mode=%#o direct=%t", name, flags, mode, direct)
	l.metrics.RecordOpenDirect(direct && directIOSupported)

	h, err := l.next.OpenAt(ctx, dir, name, effective, mode)
	if err != nil {
		return nil, err
	}

	if direct && directIOFlag == 0 {
		if err := enableDirectIO(h.Fd); err != nil {
			// Degraded to a cached open; the read path still works.
			logger.Warn("rdirect: could not enable direct I/O on %q: %v", h.Path, err)
		}
	}

	return h, nil
}
