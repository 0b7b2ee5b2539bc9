//go:build unix && !linux && !darwin

package rdirect

import (
	"fmt"

	"github.com/marmos91/directfs/pkg/vfs"
	"golang.org/x/sys/unix"
)

// directIOFlag is zero on platforms without a cache-bypass open flag, so the
// open-flag policy leaves flags untouched.
const directIOFlag = 0

// directIOSupported reports whether this platform can bypass the page cache.
const directIOSupported = false

func enableDirectIO(fd int) error {
	return nil
}

// openDirect falls back to a plain read-only open. Reads still work; they
// just go through the page cache.
func openDirect(path string) (int, error) {
	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		return -1, fmt.Errorf("open %q: %w", path, err)
	}
	return fd, nil
}

func fdPath(fd int) (string, error) {
	return "", fmt.Errorf("fd %d path resolution: %w", fd, vfs.ErrUnsupported)
}
