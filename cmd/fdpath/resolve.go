package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/restic/fdpath/internal/debug"
	"github.com/restic/fdpath/internal/errors"
	"github.com/restic/fdpath/internal/fs"
)

// ErrSomePathsFailed is returned when at least one file or descriptor could
// not be resolved. The paths of all other arguments have been printed.
var ErrSomePathsFailed = errors.New("at least one path could not be resolved")

// ResolveOptions collects all options for resolving paths.
type ResolveOptions struct {
	Fds   []uint
	JSON  bool
	Quiet bool
}

func (opts *ResolveOptions) AddFlags(f *pflag.FlagSet) {
	f.UintSliceVar(&opts.Fds, "fd", nil, "resolve the inherited file descriptor `n` (can be specified multiple times)")
	f.BoolVar(&opts.JSON, "json", false, "print one JSON object per line")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "only print the resolved paths")
}

// target is a file or descriptor given on the command line.
type target struct {
	source string
	name   string
	fd     uintptr
}

type result struct {
	source string
	path   string
	err    error
}

func collectTargets(opts ResolveOptions, args []string) []target {
	targets := make([]target, 0, len(opts.Fds)+len(args))
	for _, fd := range opts.Fds {
		targets = append(targets, target{source: "fd " + strconv.FormatUint(uint64(fd), 10), fd: uintptr(fd)})
	}
	for _, name := range args {
		targets = append(targets, target{source: name, name: name})
	}
	return targets
}

// resolveTarget resolves a single target. Files given by name are opened
// read-only and closed again, descriptors are only borrowed.
func resolveTarget(r fs.PathResolver, t target) (string, error) {
	if t.name == "" {
		return r.Resolve(t.fd)
	}

	f, err := os.Open(t.name)
	if err != nil {
		return "", err
	}

	path, err := fs.FilePath(r, f)
	cerr := f.Close()
	if err != nil {
		return "", err
	}

	return path, cerr
}

// resolveAll resolves all targets concurrently. A failure for one target
// does not affect the others, the results are returned in input order.
func resolveAll(ctx context.Context, r fs.PathResolver, targets []target) ([]result, error) {
	results := make([]result, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			path, err := resolveTarget(r, t)
			debug.Log("%v: path %q, err %v", t.source, path, err)
			results[i] = result{source: t.source, path: path, err: err}
			return nil
		})
	}

	return results, g.Wait()
}

type jsonResult struct {
	MessageType string `json:"message_type"` // "path" or "error"
	Source      string `json:"source"`
	Path        string `json:"path,omitempty"`
	Error       string `json:"error,omitempty"`
}

func printResults(opts ResolveOptions, results []result, stdout, stderr io.Writer) error {
	enc := json.NewEncoder(stdout)

	for _, res := range results {
		var err error
		switch {
		case opts.JSON && res.err != nil:
			err = enc.Encode(jsonResult{MessageType: "error", Source: res.source, Error: res.err.Error()})
		case opts.JSON:
			err = enc.Encode(jsonResult{MessageType: "path", Source: res.source, Path: res.path})
		case res.err != nil:
			_, err = fmt.Fprintf(stderr, "unable to resolve %v: %v\n", res.source, res.err)
		case opts.Quiet:
			_, err = fmt.Fprintln(stdout, res.path)
		default:
			_, err = fmt.Fprintf(stdout, "%v\t%v\n", res.source, res.path)
		}

		if err != nil {
			return errors.Wrap(err, "print")
		}
	}

	return nil
}

func runResolve(ctx context.Context, opts ResolveOptions, r fs.PathResolver, args []string, stdout, stderr io.Writer) error {
	targets := collectTargets(opts, args)
	if len(targets) == 0 {
		return errors.Fatal("no file or descriptor given")
	}

	results, err := resolveAll(ctx, r, targets)
	if err != nil {
		return err
	}

	err = printResults(opts, results, stdout, stderr)
	if err != nil {
		return err
	}

	for _, res := range results {
		if res.err != nil {
			return ErrSomePathsFailed
		}
	}

	return nil
}
