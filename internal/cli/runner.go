// Package cli is the command line surface: the interactive screen by default
// plus the ls, add and done subcommands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Version is stamped at build time.
var Version = "dev"

// usageError marks a bad invocation rather than a failed operation.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, a ...any) error {
	return usageError{fmt.Errorf(format, a...)}
}

// usageArgs turns cobra's argument validation failures into usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var ue usageError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &ue):
		return ExitUsage
	default:
		return ExitError
	}
}

// Execute runs the command line and returns the process exit code. Errors
// are reported on stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root, a := newRoot()
	defer a.close()

	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	ui.Fprintln(stderr, false, err.Error())
	code := ExitCode(err)
	if code == ExitUsage {
		fmt.Fprintln(stderr, "Run 'todo --help' for usage.")
	}
	return code
}
