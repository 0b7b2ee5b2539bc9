package vfs

import "errors"

// These errors provide a consistent way to indicate chain-level failure
// conditions. Layer implementations wrap them with additional context:
//
//	return 0, fmt.Errorf("request %s: %w", req.ID, vfs.ErrRequestConsumed)
var (
	// ErrRequestConsumed indicates a request was collected twice.
	// Requests are single-use: the first PreadCollect consumes the stored
	// outcome and destroys the request's usefulness.
	ErrRequestConsumed = errors.New("request already collected")

	// ErrRequestNotResolved indicates a collect on a request that was never
	// resolved. Should not happen with well-behaved layers, since every
	// layer resolves requests before returning them from PreadSubmit.
	ErrRequestNotResolved = errors.New("request not resolved")

	// ErrLayerNotFound indicates a chain referenced a layer name that was
	// never registered.
	ErrLayerNotFound = errors.New("layer not found")

	// ErrUnsupported indicates an operation the current platform cannot
	// perform (e.g. descriptor-to-path resolution outside Linux).
	ErrUnsupported = errors.New("operation not supported on this platform")
)
