package vfs

import "fmt"

// Handle represents an open file as seen by the interception chain.
//
// Handles are created by the terminal layer's OpenAt and owned by the host
// runtime. Intermediate layers only read fields from a handle; the one
// exception is a layer that opens a second, independent descriptor for the
// duration of a single call, which must close that descriptor itself on every
// exit path.
type Handle struct {
	// Fd is the underlying file descriptor.
	Fd int

	// Path is the path the handle was opened with, joined against its
	// directory handle. Informational: layers that need the descriptor's
	// current path should resolve it through the OS instead, since the
	// file may have been renamed since the open.
	Path string

	// Flags are the effective open flags, after any layer adjustments.
	Flags int

	// Mode contains the mode bits passed to the open call.
	Mode uint32
}

func (h *Handle) String() string {
	return fmt.Sprintf("fd=%d path=%q flags=%#x", h.Fd, h.Path, h.Flags)
}
