package fs

import (
	"os"
	"strconv"

	"github.com/restic/fdpath/internal/debug"
)

// procfsResolver reads the link the kernel maintains for every open
// descriptor below /proc/self/fd.
type procfsResolver struct{}

func newPlatformResolver() PathResolver {
	return procfsResolver{}
}

func (procfsResolver) Resolve(fd uintptr) (string, error) {
	link := "/proc/self/fd/" + strconv.FormatUint(uint64(fd), 10)

	path, err := os.Readlink(link)
	if err != nil {
		debug.Log("readlink %v failed: %v", link, err)
		return "", err
	}

	debug.Log("fd %d resolved to %q", fd, path)
	return path, nil
}
