//go:build !linux && !darwin && !windows

package fs

import "os"

type unsupportedResolver struct{}

func newPlatformResolver() PathResolver {
	return unsupportedResolver{}
}

func (unsupportedResolver) Resolve(fd uintptr) (string, error) {
	return "", &os.PathError{Op: "resolve", Path: fdName(fd), Err: ErrUnsupported}
}
