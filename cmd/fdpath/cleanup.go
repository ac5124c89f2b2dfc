package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/restic/fdpath/internal/debug"
)

// createGlobalContext returns a context which is canceled on SIGINT or
// SIGTERM. With FDPATH_DEBUG_STACKTRACE_SIGINT set, the stacks of all
// goroutines are printed first.
func createGlobalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		s := <-ch
		debug.Log("signal %v received, canceling", s)

		if os.Getenv("FDPATH_DEBUG_STACKTRACE_SIGINT") != "" {
			_, _ = os.Stderr.WriteString("\n--- STACKTRACE START ---\n\n" +
				debug.DumpStacktrace() +
				"\n--- STACKTRACE END ---\n")
		}

		cancel()
	}()

	return ctx
}

// Exit terminates the process with the given exit code.
func Exit(code int) {
	debug.Log("exiting with status code %d", code)
	os.Exit(code)
}
