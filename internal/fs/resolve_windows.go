package fs

import (
	"os"

	"golang.org/x/sys/windows"

	"github.com/restic/fdpath/internal/debug"
)

// finalPathResolver asks Windows for the final path of a handle with
// GetFinalPathNameByHandleW.
type finalPathResolver struct{}

func newPlatformResolver() PathResolver {
	return finalPathResolver{}
}

func (finalPathResolver) Resolve(fd uintptr) (string, error) {
	h := windows.Handle(fd)

	buf, err := fetchFinalPath(func(buf []uint16) (uint32, error) {
		return getFinalPathName(h, buf)
	})
	if err != nil {
		debug.Log("GetFinalPathNameByHandle(%v) failed: %v", fd, err)
		return "", &os.PathError{Op: "GetFinalPathNameByHandle", Path: fdName(fd), Err: err}
	}

	path := windows.UTF16ToString(normaliseFinalPath(buf))
	debug.Log("handle %v resolved to %q", fd, path)
	return path, nil
}

// Flags for GetFinalPathNameByHandleW, from <fileapi.h>.
const (
	fileNameNormalized = 0x0
	volumeNameDOS      = 0x0
)

// getFinalPathName returns the number of UTF-16 code units GetFinalPathNameByHandleW
// reports for h. An empty buf only queries the required size.
func getFinalPathName(h windows.Handle, buf []uint16) (uint32, error) {
	var p *uint16
	if len(buf) > 0 {
		p = &buf[0]
	}

	n, err := windows.GetFinalPathNameByHandle(h, p, uint32(len(buf)), fileNameNormalized|volumeNameDOS)
	if err != nil {
		return 0, err
	}

	return n, nil
}
