package rdirect

import "errors"

// These errors tag each failure kind of the direct-read path explicitly, so
// callers can distinguish them with errors.Is instead of inspecting errno
// values. Every failure site wraps the sentinel together with the underlying
// OS error:
//
//	n, err := layer.Pread(ctx, h, buf, off)
//	if errors.Is(err, rdirect.ErrBufferTooSmall) {
//	    // caller must supply at least 512 bytes
//	}
var (
	// ErrBufferTooSmall indicates the caller's buffer is shorter than the
	// 512-byte alignment unit. Rounding the buffer base up could otherwise
	// leave zero or negative usable length.
	ErrBufferTooSmall = errors.New("buffer too small for direct I/O")

	// ErrPathResolution indicates the descriptor-to-path resolution failed.
	// Only the re-opened read path resolves paths; the in-place path never
	// returns this error.
	ErrPathResolution = errors.New("descriptor path resolution failed")

	// ErrOpenFailed indicates the independent direct-I/O re-open failed.
	ErrOpenFailed = errors.New("direct re-open failed")

	// ErrDeviceRead indicates the underlying positioned read failed. The
	// wrapped error carries the OS errno.
	ErrDeviceRead = errors.New("device read failed")
)
