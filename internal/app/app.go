// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"mirpair/internal/writers"
)

// Exit codes.
const (
	exitOK       = 0
	exitUsage    = 2
	exitRuntime  = 3
	exitCanceled = 130
)

// usageError marks bad invocations and configuration (exit 2).
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usage(err error) error {
	if err == nil {
		return nil
	}
	return usageError{err}
}

func usagef(format string, a ...any) error { return usageError{fmt.Errorf(format, a...)} }

// RunContext executes the command line argv and returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	st := &state{stdout: outw, stderr: stderr}
	root := newRootCmd(st)
	root.SetArgs(argv)
	root.SetOut(outw)
	root.SetErr(stderr)

	err := root.ExecuteContext(parent)
	st.close()

	if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) && err == nil {
		err = e
	}
	return exitCode(err, stderr)
}

// Run is RunContext without cancellation.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func exitCode(err error, stderr io.Writer) int {
	var ue usageError
	switch {
	case err == nil:
		return exitOK
	case writers.IsBrokenPipe(err):
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitCanceled
	case errors.As(err, &ue):
		_, _ = fmt.Fprintln(stderr, "error:", err)
		_, _ = fmt.Fprintln(stderr, "Run 'mirpair --help' for usage.")
		return exitUsage
	default:
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return exitRuntime
	}
}
