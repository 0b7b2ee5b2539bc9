// Package vfs implements the interception chain DirectFS layers plug into.
//
// A chain is an ordered stack of Layer implementations terminated by a
// Passthrough that performs real syscalls. Each non-terminal layer wraps the
// next one and may observe or rewrite an operation before delegating. Layers
// must always delegate operations they do not fully own: a layer that adjusts
// open flags still hands the adjusted open to the next layer, never to the
// kernel directly.
package vfs

import "context"

// Layer is the capability interface every interception layer implements.
//
// The four pread-related operations come in two calling conventions:
//
//   - Pread is the synchronous positioned read.
//   - PreadSubmit/PreadCollect expose the same read through a two-call
//     request/completion protocol for hosts whose dispatch loop expects
//     asynchronous completions.
//
// A Request returned by PreadSubmit must be resolved before PreadSubmit
// returns (see Request); PreadCollect only retrieves the stored outcome.
//
// Thread safety:
// Layers keep no per-call mutable state, so distinct handles and offsets may
// be used concurrently. Layers perform no locking of their own; serializing
// access to a single handle is the host's responsibility.
type Layer interface {
	// OpenAt opens name relative to dir (or the working directory when dir
	// is nil) and returns a new handle owned by the caller.
	OpenAt(ctx context.Context, dir *Handle, name string, flags int, mode uint32) (*Handle, error)

	// Pread reads up to len(buf) bytes from h at the given offset.
	// Ordinary short-read semantics apply: the returned count may be less
	// than len(buf), and the caller continues at offset+count.
	Pread(ctx context.Context, h *Handle, buf []byte, offset int64) (int, error)

	// PreadSubmit performs the read synchronously and returns an
	// already-resolved request. See package doc for why this is not
	// overlapped I/O.
	PreadSubmit(ctx context.Context, h *Handle, buf []byte, offset int64) (*Request, error)

	// PreadCollect returns the outcome stored in req and consumes it.
	// A second collect on the same request fails with ErrRequestConsumed.
	PreadCollect(req *Request) (int, error)

	// Close releases the handle.
	Close(h *Handle) error
}
