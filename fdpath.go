package fdpath

import (
	"os"

	"github.com/restic/fdpath/internal/fs"
)

// PathResolver returns the path of an open file descriptor (POSIX) or handle
// (Windows). Code which needs to substitute a fake in tests should depend on
// this interface.
type PathResolver = fs.PathResolver

var (
	// ErrPathGrew is returned on Windows when the file was renamed to a
	// longer path while it was being resolved.
	ErrPathGrew = fs.ErrPathGrew

	// ErrUnsupported is returned on platforms without a way to query the path
	// of a file handle.
	ErrUnsupported = fs.ErrUnsupported
)

// New returns the PathResolver for the current platform.
func New() PathResolver {
	return fs.NewResolver()
}

// Path returns the path the operating system currently reports for f.
func Path(f *os.File) (string, error) {
	return fs.FilePath(fs.NewResolver(), f)
}

// PathFd returns the path the operating system currently reports for the
// descriptor or handle fd. The caller must keep fd open during the call.
func PathFd(fd uintptr) (string, error) {
	return fs.NewResolver().Resolve(fd)
}
