// Package test contains helpers shared by the tests of all packages.
package test

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

// fail prints msg in red, prefixed with the position of the failed check,
// and stops the test.
func fail(tb testing.TB, msg string, v ...interface{}) {
	_, file, line, _ := runtime.Caller(2)
	fmt.Printf("\033[31m%s:%d: %s\033[39m\n\n", filepath.Base(file), line, fmt.Sprintf(msg, v...))
	tb.FailNow()
}

// Assert fails the test if the condition is false.
func Assert(tb testing.TB, condition bool, msg string, v ...interface{}) {
	if !condition {
		fail(tb, msg, v...)
	}
}

// OK fails the test if an err is not nil.
func OK(tb testing.TB, err error) {
	if err != nil {
		fail(tb, "unexpected error: %+v", err)
	}
}

// Equals fails the test if exp is not equal to act.
func Equals(tb testing.TB, exp, act interface{}) {
	if !reflect.DeepEqual(exp, act) {
		fail(tb, "\n\n\texp: %#v\n\n\tgot: %#v", exp, act)
	}
}

// Random returns count bytes of pseudo-random data derived from the seed.
func Random(seed, count int) []byte {
	p := make([]byte, count)
	rnd := rand.New(rand.NewSource(int64(seed)))
	_, _ = rnd.Read(p)
	return p
}

// TempDir returns a temporary directory that is removed by t.Cleanup,
// except if TestCleanupTempDirs is set to false. Symlinks in the name are
// resolved, so paths below it can be compared with resolved paths.
func TempDir(t testing.TB) string {
	tempdir, err := os.MkdirTemp(TestTempDir, "fdpath-test-")
	OK(t, err)

	t.Cleanup(func() {
		if !TestCleanupTempDirs {
			t.Logf("leaving temporary directory %v used for test", tempdir)
			return
		}

		OK(t, os.RemoveAll(tempdir))
	})

	resolved, err := filepath.EvalSymlinks(tempdir)
	OK(t, err)
	return resolved
}

// Chdir changes the current directory to dest.
// The function back returns to the previous directory.
func Chdir(t testing.TB, dest string) (back func()) {
	t.Helper()

	prev, err := os.Getwd()
	OK(t, err)

	t.Logf("chdir to %v", dest)
	OK(t, os.Chdir(dest))

	return func() {
		t.Helper()
		t.Logf("chdir back to %v", prev)
		OK(t, os.Chdir(prev))
	}
}
