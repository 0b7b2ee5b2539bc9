package vfs

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/marmos91/directfs/internal/logger"
	"golang.org/x/sys/unix"
)

// Passthrough is the terminal layer of every chain. It performs the real
// syscalls and fakes the submit/collect protocol over its own synchronous
// Pread, so that a chain with no interception layers still honors the full
// Layer contract.
type Passthrough struct{}

// NewPassthrough creates the terminal syscall layer.
func NewPassthrough() *Passthrough {
	return &Passthrough{}
}

// OpenAt opens name relative to dir via openat(2).
//
// Context Cancellation:
// The context is checked before the syscall. The syscall itself is not
// interruptible.
func (p *Passthrough) OpenAt(ctx context.Context, dir *Handle, name string, flags int, mode uint32) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirfd := unix.AT_FDCWD
	path := name
	if dir != nil {
		dirfd = dir.Fd
		if !filepath.IsAbs(name) {
			path = filepath.Join(dir.Path, name)
		}
	}

	fd, err := unix.Openat(dirfd, name, flags, mode)
	if err != nil {
		return nil, fmt.Errorf("openat %q: %w", path, err)
	}

	logger.Trace("vfs: openat %q flags=%#x mode=%#o fd=%d", path, flags, mode, fd)

	return &Handle{
		Fd:    fd,
		Path:  path,
		Flags: flags,
		Mode:  mode,
	}, nil
}

// Pread reads from the handle at the given offset via pread(2).
func (p *Passthrough) Pread(ctx context.Context, h *Handle, buf []byte, offset int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	n, err := unix.Pread(h.Fd, buf, offset)
	if err != nil {
		return 0, fmt.Errorf("pread fd=%d offset=%d: %w", h.Fd, offset, err)
	}

	logger.Trace("vfs: pread fd=%d offset=%d n=%d -> %d", h.Fd, offset, len(buf), n)
	return n, nil
}

// PreadSubmit fakes an asynchronous read by calling the synchronous Pread
// and resolving the request before returning it.
func (p *Passthrough) PreadSubmit(ctx context.Context, h *Handle, buf []byte, offset int64) (*Request, error) {
	req := NewRequest()
	n, err := p.Pread(ctx, h, buf, offset)
	req.Resolve(n, err)
	return req, nil
}

// PreadCollect returns the outcome stored by PreadSubmit.
func (p *Passthrough) PreadCollect(req *Request) (int, error) {
	return req.Collect()
}

// Close releases the handle's descriptor.
func (p *Passthrough) Close(h *Handle) error {
	if err := unix.Close(h.Fd); err != nil {
		return fmt.Errorf("close fd=%d: %w", h.Fd, err)
	}
	return nil
}
