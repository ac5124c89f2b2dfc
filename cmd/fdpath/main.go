package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/restic/fdpath/internal/debug"
	"github.com/restic/fdpath/internal/errors"
	"github.com/restic/fdpath/internal/fs"
)

func init() {
	// don't import `go.uber.org/automaxprocs` to disable the log output
	_, _ = maxprocs.Set()
}

var version = "0.1.0-dev"

func newRootCommand(resolver fs.PathResolver) *cobra.Command {
	opts := &ResolveOptions{}

	cmd := &cobra.Command{
		Use:   "fdpath [flags] [FILE...]",
		Short: "Print the path the operating system reports for open files",
		Long: `
fdpath opens each FILE and prints the path the operating system currently
associates with the open file. Descriptors inherited from the parent process
are resolved with --fd without being opened or closed.

EXIT STATUS
===========

Exit status is 0 if all paths were resolved.
Exit status is 1 if there was a fatal error (no path was resolved).
Exit status is 3 if at least one path could not be resolved.
`,
		Args:              cobra.ArbitraryArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.Context(), *opts, resolver, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	opts.AddFlags(cmd.Flags())

	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(
		newVersionCommand(),
	)

	return cmd
}

func main() {
	// install custom global logger into a buffer, if an error occurs
	// we can show the logs
	logBuffer := bytes.NewBuffer(nil)
	log.SetOutput(logBuffer)

	debug.Log("main %#v", os.Args)
	debug.Log("fdpath %s compiled with %v on %v/%v",
		version, runtime.Version(), runtime.GOOS, runtime.GOARCH)

	ctx := createGlobalContext()
	err := newRootCommand(fs.NewResolver()).ExecuteContext(ctx)
	if err == nil {
		err = ctx.Err()
	}

	var exitMessage string
	switch {
	case err == nil:
	case err == ErrSomePathsFailed:
		exitMessage = fmt.Sprintf("Warning: %v", err)
	case errors.IsFatal(err):
		exitMessage = err.Error()
	default:
		exitMessage = fmt.Sprintf("%+v", err)

		if logBuffer.Len() > 0 {
			exitMessage += "also, the following messages were logged by a library:\n"
			sc := bufio.NewScanner(logBuffer)
			for sc.Scan() {
				exitMessage += fmt.Sprintln(sc.Text())
			}
		}
	}

	code := exitCode(err)
	if code != 0 {
		_, _ = fmt.Fprintln(os.Stderr, exitMessage)
	}
	Exit(code)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case err == ErrSomePathsFailed:
		return 3
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}
