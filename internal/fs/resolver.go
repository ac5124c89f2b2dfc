package fs

import (
	"errors"
	"os"
	"strconv"

	"github.com/restic/fdpath/internal/debug"
)

// PathResolver returns the path the operating system currently associates
// with an open file handle. On POSIX systems fd is a file descriptor, on
// Windows it is the value of a HANDLE.
//
// The handle is only borrowed: implementations never close or duplicate it,
// and they do not keep any state between calls. The returned path is a
// snapshot, the file may be renamed or removed as soon as Resolve returns.
type PathResolver interface {
	Resolve(fd uintptr) (string, error)
}

// ErrPathGrew is returned when the path of a handle became longer between
// querying its length and fetching it. The query is not retried.
var ErrPathGrew = errors.New("path changed while it was being resolved")

// ErrUnsupported is returned by the resolver on platforms which provide no
// way to query the path of a handle.
var ErrUnsupported = errors.Join(errors.New("resolving the path of a file handle is not supported on this platform"), errors.ErrUnsupported)

// NewResolver returns the PathResolver for the current platform.
func NewResolver() PathResolver {
	return newPlatformResolver()
}

// FilePath returns the current path of f as reported by r. The query runs
// while f's descriptor is pinned, so a concurrent Close cannot release the
// descriptor mid-call. A nil or closed file results in an error without any
// query being issued.
func FilePath(r PathResolver, f *os.File) (string, error) {
	if f == nil {
		return "", os.ErrInvalid
	}

	conn, err := f.SyscallConn()
	if err != nil {
		return "", err
	}

	var (
		path       string
		resolveErr error
	)
	err = conn.Control(func(fd uintptr) {
		path, resolveErr = r.Resolve(fd)
	})
	if err != nil {
		// Control only fails once the file has been closed
		debug.Log("unable to access descriptor of %v: %v", f.Name(), err)
		return "", &os.PathError{Op: "resolve", Path: f.Name(), Err: os.ErrClosed}
	}

	return path, resolveErr
}

// fdName is used as the Path of errors returned by the resolvers.
func fdName(fd uintptr) string {
	return "fd " + strconv.FormatUint(uint64(fd), 10)
}
