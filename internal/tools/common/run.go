package common

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/identity-core/internal/observability"
	"github.com/sandeepkv93/identity-core/internal/tools/ui"
)

const failureExitCode = 3

// Options are the persistent flags shared by every authctl subcommand.
type Options struct {
	EnvFile string
	Timeout time.Duration
	CI      bool
}

func BindFlags(cmd *cobra.Command, opts *Options) {
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "path to env file")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "operation timeout")
	cmd.PersistentFlags().BoolVar(&opts.CI, "ci", false, "non-interactive machine-readable output")
}

type Action func(ctx context.Context) ([]string, error)

// ExitError carries the process exit code for a failed tool command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// Run executes fn either behind the interactive status view or, in CI mode,
// directly with JSON output on the command's stdout.
func Run(cmd *cobra.Command, opts *Options, tool, command string, fn Action) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	title := tool + " " + command
	start := time.Now()

	var (
		details []string
		err     error
	)
	if opts.CI {
		runCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		details, err = fn(runCtx)
		cancel()
		PrintCIResult(cmd.OutOrStdout(), err == nil, title, details, err)
	} else {
		details, err = ui.Run(title, opts.Timeout, fn)
	}

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	observability.RecordToolCommandRun(ctx, tool, command, outcome)
	observability.RecordToolCommandDuration(ctx, tool, command, outcome, time.Since(start))
	if err != nil {
		return &ExitError{Code: failureExitCode, Err: err}
	}
	return nil
}
