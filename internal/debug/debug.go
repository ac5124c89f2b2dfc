// Package debug writes a debug log if enabled through the environment:
//
//	DEBUG_LOG=/path/to/file   write all messages to file
//	DEBUG_FUNCS=Resolve,-main print messages from matching functions to stderr
//	DEBUG_FILES=fs/*          print messages from matching files to stderr
package debug

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// filter maps glob patterns to whether matching keys are printed.
type filter map[string]bool

var opts struct {
	isEnabled bool
	logger    *log.Logger
	funcs     filter
	files     filter
}

// make sure that all the initialization happens before the init() functions
// are called, cf https://golang.org/ref/spec#Package_initialization
var _ = initDebug()

func initDebug() bool {
	opts.logger = openLogFile(os.Getenv("DEBUG_LOG"))
	opts.funcs = parseFilter("DEBUG_FUNCS", padFunc)
	opts.files = parseFilter("DEBUG_FILES", padFile)

	opts.isEnabled = opts.logger != nil || len(opts.funcs) > 0 || len(opts.files) > 0
	if opts.isEnabled {
		fmt.Fprintf(os.Stderr, "debug enabled\n")
	}
	return opts.isEnabled
}

func openLogFile(name string) *log.Logger {
	if name == "" {
		return nil
	}

	fmt.Fprintf(os.Stderr, "debug log file %v\n", name)

	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to open debug log file: %v\n", err)
		os.Exit(2)
	}

	return log.New(f, "", log.LstdFlags)
}

// parseFilter reads a comma separated list of patterns from envname. A
// leading '-' disables a pattern, a leading '+' is ignored.
func parseFilter(envname string, pad func(string) string) filter {
	f := make(filter)

	for _, item := range strings.Split(os.Getenv(envname), ",") {
		pattern := pad(strings.TrimSpace(item))
		if pattern == "" {
			continue
		}

		enabled := pattern[0] != '-'
		pattern = strings.TrimLeft(pattern, "+-")

		if _, err := path.Match(pattern, ""); err != nil {
			fmt.Fprintf(os.Stderr, "error: invalid pattern %q: %v\n", pattern, err)
			os.Exit(5)
		}

		f[pattern] = enabled
	}

	return f
}

func padFunc(s string) string {
	return s
}

// padFile turns "file.go" into "*/file.go:*" so that it matches any line.
func padFile(s string) string {
	if s == "all" || s == "" {
		return s
	}

	if !strings.Contains(s, "/") {
		s = "*/" + s
	}

	if !strings.Contains(s, ":") {
		s = s + ":*"
	}

	return s
}

// match reports whether key is enabled, either directly, by a pattern, or
// by the tag "all".
func (f filter) match(key string) bool {
	if v, ok := f[key]; ok {
		return v
	}

	for pattern, v := range f {
		if m, _ := path.Match(pattern, key); m {
			return v
		}
	}

	return f["all"]
}

// caller describes the place debug.Log was called from.
type caller struct {
	fn  string
	pos string
}

// taken from https://github.com/VividCortex/trace
func getCaller() caller {
	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		return caller{}
	}

	pos := fmt.Sprintf("%s/%s:%d", filepath.Base(filepath.Dir(file)), filepath.Base(file), line)
	return caller{fn: path.Base(runtime.FuncForPC(pc).Name()), pos: pos}
}

// taken from https://github.com/VividCortex/trace
func goroutineNum() int {
	b := make([]byte, 20)
	runtime.Stack(b, false)
	var num int

	_, _ = fmt.Sscanf(string(b), "goroutine %d ", &num)
	return num
}

// Log prints a message to the debug log (if debug is enabled).
func Log(f string, args ...interface{}) {
	if !opts.isEnabled {
		return
	}

	c := getCaller()
	msg := fmt.Sprintf(f, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}

	line := fmt.Sprintf("%s\t%s\t%d\t%s", c.pos, c.fn, goroutineNum(), msg)

	if opts.logger != nil {
		opts.logger.Print(line)
	}

	if opts.files.match(c.pos) || opts.funcs.match(c.fn) {
		_, _ = os.Stderr.WriteString(line)
	}
}
