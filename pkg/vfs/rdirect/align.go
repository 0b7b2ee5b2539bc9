package rdirect

import (
	"fmt"
	"unsafe"
)

// AlignSize is the device alignment unit. Direct I/O requires the destination
// buffer base (and, for strict backends, the transfer length) to be a
// multiple of this value.
const AlignSize = 512

// window describes the aligned sub-slice of a caller's buffer usable as a
// direct-I/O target. It is a derived, ephemeral view - recomputed per call,
// never stored.
type window struct {
	// off is the rounding offset: bytes skipped at the front of the
	// caller's buffer to reach the next AlignSize boundary. In [0, 512).
	off int

	// n is the usable length of the aligned sub-slice.
	n int
}

// alignment returns the misalignment of the buffer base with respect to
// AlignSize. Zero means the base is already aligned.
//
// Can't inspect a zero-sized buffer as &buf[0] is invalid; callers check
// length first.
func alignment(buf []byte) int {
	return int(uintptr(unsafe.Pointer(&buf[0])) & uintptr(AlignSize-1))
}

// alignBuffer computes the aligned window over buf.
//
// The window base is buf's address rounded up to the next AlignSize
// boundary, and the window length is what remains of buf past that point.
// With strict set, the length is additionally rounded down to a multiple of
// AlignSize, for backends that reject non-aligned transfer lengths.
//
// Returns ErrBufferTooSmall when len(buf) < AlignSize, or when the rounding
// leaves a strict window with no usable bytes. Without the second check a
// misaligned buffer of just over AlignSize would round down to an empty
// window and turn every read into a zero-length transfer.
func alignBuffer(buf []byte, strict bool) (window, error) {
	if len(buf) < AlignSize {
		return window{}, fmt.Errorf("%d bytes (need %d): %w", len(buf), AlignSize, ErrBufferTooSmall)
	}

	off := 0
	if a := alignment(buf); a != 0 {
		off = AlignSize - a
	}

	n := len(buf) - off
	if strict {
		n &^= AlignSize - 1
	}
	if n == 0 {
		return window{}, fmt.Errorf("%d bytes usable after alignment (need %d): %w", n, AlignSize, ErrBufferTooSmall)
	}

	return window{off: off, n: n}, nil
}

// slice returns the aligned sub-slice of buf described by w.
func (w window) slice(buf []byte) []byte {
	return buf[w.off : w.off+w.n]
}

// relocate moves count bytes read into the aligned window back to the start
// of the caller's buffer, restoring normal read semantics (result at offset
// 0). The regions overlap, but the destination precedes the source, so Go's
// copy handles the overlap correctly.
func relocate(buf []byte, w window, count int) {
	if w.off == 0 || count <= 0 {
		return
	}
	copy(buf[:count], buf[w.off:w.off+count])
}
