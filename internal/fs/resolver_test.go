//go:build linux || darwin || windows

package fs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/restic/fdpath/internal/debug"
	"github.com/restic/fdpath/internal/errors"
	rtest "github.com/restic/fdpath/internal/test"
)

func createFile(t testing.TB, filename string, data []byte) *os.File {
	f, err := os.Create(filename)
	rtest.OK(t, err)
	t.Cleanup(func() {
		_ = f.Close()
	})

	if data != nil {
		_, err = f.Write(data)
		rtest.OK(t, err)
	}

	return f
}

func TestFilePathBaseName(t *testing.T) {
	tempdir := rtest.TempDir(t)

	for _, name := range []string{"foo", "foo bar.txt", "a.b.c", ".hidden"} {
		t.Run(name, func(t *testing.T) {
			f := createFile(t, filepath.Join(tempdir, name), nil)

			path, err := FilePath(NewResolver(), f)
			rtest.OK(t, err)
			rtest.Equals(t, name, filepath.Base(path))
			rtest.Equals(t, filepath.Join(tempdir, name), path)
		})
	}
}

func TestFilePathWorkingDir(t *testing.T) {
	tempdir := rtest.TempDir(t)
	defer rtest.Chdir(t, tempdir)()

	f := createFile(t, "foobar", nil)

	wd, err := os.Getwd()
	rtest.OK(t, err)
	wd, err = filepath.EvalSymlinks(wd)
	rtest.OK(t, err)

	path, err := FilePath(NewResolver(), f)
	rtest.OK(t, err)
	rtest.Equals(t, filepath.Join(wd, "foobar"), path)
}

func TestFilePathRoundTrip(t *testing.T) {
	tempdir := rtest.TempDir(t)
	data := rtest.Random(23, 64*1024+13)

	f := createFile(t, filepath.Join(tempdir, "data"), data)

	path, err := FilePath(NewResolver(), f)
	rtest.OK(t, err)

	buf, err := os.ReadFile(path)
	rtest.OK(t, err)
	rtest.Assert(t, bytes.Equal(data, buf), "data read from %v differs from written data", path)
}

func TestFilePathIdempotent(t *testing.T) {
	tempdir := rtest.TempDir(t)
	f := createFile(t, filepath.Join(tempdir, "file"), []byte("foo"))
	r := NewResolver()

	first, err := FilePath(r, f)
	rtest.OK(t, err)
	second, err := FilePath(r, f)
	rtest.OK(t, err)
	rtest.Equals(t, first, second)
}

func TestFilePathDebugLog(t *testing.T) {
	if debug.TestLogToStderr(t) {
		defer debug.TestDisableLog(t)
	}

	tempdir := rtest.TempDir(t)
	f := createFile(t, filepath.Join(tempdir, "file"), nil)

	path, err := FilePath(NewResolver(), f)
	rtest.OK(t, err)
	rtest.Equals(t, filepath.Join(tempdir, "file"), path)
}

func TestFilePathDirectory(t *testing.T) {
	tempdir := rtest.TempDir(t)
	dir := filepath.Join(tempdir, "subdir")
	rtest.OK(t, os.Mkdir(dir, 0o700))

	f, err := os.Open(dir)
	rtest.OK(t, err)
	defer func() {
		rtest.OK(t, f.Close())
	}()

	path, err := FilePath(NewResolver(), f)
	rtest.OK(t, err)
	rtest.Equals(t, dir, path)
}

func TestFilePathClosed(t *testing.T) {
	tempdir := rtest.TempDir(t)

	f, err := os.Create(filepath.Join(tempdir, "file"))
	rtest.OK(t, err)
	rtest.OK(t, f.Close())

	path, err := FilePath(NewResolver(), f)
	rtest.Assert(t, err != nil, "expected an error for a closed file, got path %q", path)
	rtest.Assert(t, errors.Is(err, os.ErrClosed), "unexpected error %v", err)
	rtest.Equals(t, "", path)
}

func TestFilePathNil(t *testing.T) {
	_, err := FilePath(NewResolver(), nil)
	rtest.Assert(t, errors.Is(err, os.ErrInvalid), "unexpected error %v", err)
}

func TestFilePathConcurrent(t *testing.T) {
	tempdir := rtest.TempDir(t)
	r := NewResolver()

	var files []*os.File
	for i := 0; i < 8; i++ {
		files = append(files, createFile(t, filepath.Join(tempdir, fmt.Sprintf("file-%d", i)), nil))
	}

	var g errgroup.Group
	for worker := 0; worker < 16; worker++ {
		worker := worker
		g.Go(func() error {
			for i := 0; i < 50; i++ {
				idx := (worker + i) % len(files)
				path, err := FilePath(r, files[idx])
				if err != nil {
					return err
				}

				want := filepath.Join(tempdir, fmt.Sprintf("file-%d", idx))
				if path != want {
					return fmt.Errorf("wrong path for file %d: want %q, got %q", idx, want, path)
				}
			}
			return nil
		})
	}

	rtest.OK(t, g.Wait())
}

type fakeResolver struct {
	fds  []uintptr
	path string
	err  error
}

func (r *fakeResolver) Resolve(fd uintptr) (string, error) {
	r.fds = append(r.fds, fd)
	return r.path, r.err
}

func TestFilePathUsesResolver(t *testing.T) {
	tempdir := rtest.TempDir(t)
	f := createFile(t, filepath.Join(tempdir, "file"), nil)

	r := &fakeResolver{path: "/some/where/else"}
	path, err := FilePath(r, f)
	rtest.OK(t, err)
	rtest.Equals(t, "/some/where/else", path)
	rtest.Equals(t, []uintptr{f.Fd()}, r.fds)

	failure := &os.PathError{Op: "readlink", Path: "fd 3", Err: os.ErrNotExist}
	r = &fakeResolver{err: failure}
	_, err = FilePath(r, f)
	rtest.Assert(t, err == error(failure), "error was not returned unchanged: %v", err)
}
