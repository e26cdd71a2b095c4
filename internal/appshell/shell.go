// Package appshell is the process wrapper shared by the command binaries.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is an application entry point returning an exit code.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs run with a context canceled on SIGINT/SIGTERM and exits with its
// code.
func Main(run RunFunc) {
	os.Exit(exec(run, os.Args[1:], os.Stdout, os.Stderr))
}

func exec(run RunFunc, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(argv) == 0 {
		argv = []string{"--help"}
	}
	code := run(ctx, argv, stdout, stderr)
	// A signal that arrived after the last row still means the run was cut.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
