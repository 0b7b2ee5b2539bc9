package rdirect

import "golang.org/x/sys/unix"

// sysOps abstracts the raw syscalls the re-opened read path performs. The
// production implementation forwards to the platform functions; tests
// substitute instrumented fakes to count opens and closes and to run without
// a filesystem that accepts direct I/O.
type sysOps interface {
	// FdPath resolves the descriptor's current path.
	FdPath(fd int) (string, error)

	// OpenDirect opens path read-only with the page cache bypassed.
	OpenDirect(path string) (int, error)

	// Pread performs a positioned read on the raw descriptor.
	Pread(fd int, buf []byte, offset int64) (int, error)

	// Close releases the raw descriptor.
	Close(fd int) error
}

// hostSysOps executes real syscalls.
type hostSysOps struct{}

func (hostSysOps) FdPath(fd int) (string, error) {
	return fdPath(fd)
}

func (hostSysOps) OpenDirect(path string) (int, error) {
	return openDirect(path)
}

func (hostSysOps) Pread(fd int, buf []byte, offset int64) (int, error) {
	return unix.Pread(fd, buf, offset)
}

func (hostSysOps) Close(fd int) error {
	return unix.Close(fd)
}
