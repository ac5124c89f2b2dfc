//go:build linux || darwin || windows

package fdpath_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/restic/fdpath"
	rtest "github.com/restic/fdpath/internal/test"
)

func TestPath(t *testing.T) {
	tempdir := rtest.TempDir(t)

	f, err := os.Create(filepath.Join(tempdir, "testfile"))
	rtest.OK(t, err)
	defer func() {
		rtest.OK(t, f.Close())
	}()

	path, err := fdpath.Path(f)
	rtest.OK(t, err)
	rtest.Equals(t, filepath.Join(tempdir, "testfile"), path)

	path, err = fdpath.PathFd(f.Fd())
	rtest.OK(t, err)
	rtest.Equals(t, filepath.Join(tempdir, "testfile"), path)

	path, err = fdpath.New().Resolve(f.Fd())
	rtest.OK(t, err)
	rtest.Equals(t, filepath.Join(tempdir, "testfile"), path)
}
