package fs

import (
	"os"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/restic/fdpath/internal/debug"
)

// maxPathLen is MAXPATHLEN from <sys/param.h>, the size F_GETPATH expects.
const maxPathLen = 1024

// fcntlResolver asks the kernel for the path of a descriptor using
// fcntl(F_GETPATH).
type fcntlResolver struct{}

func newPlatformResolver() PathResolver {
	return fcntlResolver{}
}

func (fcntlResolver) Resolve(fd uintptr) (string, error) {
	buf, err := getPath(fd)
	if err != nil {
		debug.Log("fcntl(%d, F_GETPATH) failed: %v", fd, err)
		return "", &os.PathError{Op: "fcntl", Path: fdName(fd), Err: err}
	}

	path := string(cString(buf))
	debug.Log("fd %d resolved to %q", fd, path)
	return path, nil
}

// getPath issues fcntl(fd, F_GETPATH, buf) and returns the filled buffer.
func getPath(fd uintptr) ([]byte, error) {
	buf := make([]byte, maxPathLen+1)
	_, err := unix.FcntlInt(fd, unix.F_GETPATH, int(uintptr(unsafe.Pointer(&buf[0]))))
	runtime.KeepAlive(buf)
	if err != nil {
		return nil, err
	}
	return buf, nil
}
