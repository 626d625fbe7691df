// Package executor runs external commands on behalf of atlas.
//
// Everything atlas learns about the host toolchain, and every cargo
// invocation it delegates, goes through this package so that command
// execution is logged and error handling stays uniform.
package executor

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"time"

	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/logging"
)

// Result holds the outcome of a captured command execution
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the command exited zero
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Run executes a command with captured output. A non-zero exit is not an
// error; callers inspect Result.ExitCode. An error means the command
// could not be started at all.
func Run(name string, args []string, dir string) (*Result, error) {
	return RunContext(context.Background(), name, args, dir)
}

// RunContext is Run with a caller-supplied context for deadlines.
func RunContext(ctx context.Context, name string, args []string, dir string) (*Result, error) {
	logger := logging.GetLogger("executor")
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.LogCommand(name, args)
	err := cmd.Run()

	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			return nil, errors.Wrapf(err, errors.ErrCommandFailed, "failed to execute %s", name)
		}
	}

	logger.Debug().
		Str("command", name).
		Int("exitCode", result.ExitCode).
		Dur("duration", time.Since(start)).
		Msg("Command finished")

	return result, nil
}

// RunStreaming executes a command with the process's own stdio attached,
// for long-running commands whose output the user should see live. A
// non-zero exit is reported as a COMMAND_FAILED error.
func RunStreaming(name string, args []string, dir string) error {
	cmd := exec.Command(name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logging.LogCommand(name, args)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return errors.Newf(errors.ErrCommandFailed,
				"command %s failed with exit code %d", name, exitErr.ExitCode())
		}
		return errors.Wrapf(err, errors.ErrCommandFailed, "failed to execute %s", name)
	}
	return nil
}

// RunStreamingContext is RunStreaming with a deadline-carrying context.
func RunStreamingContext(ctx context.Context, name string, args []string, dir string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logging.LogCommand(name, args)
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return errors.Wrapf(ctx.Err(), errors.ErrCommandFailed, "command %s timed out", name)
		}
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return errors.Newf(errors.ErrCommandFailed,
				"command %s failed with exit code %d", name, exitErr.ExitCode())
		}
		return errors.Wrapf(err, errors.ErrCommandFailed, "failed to execute %s", name)
	}
	return nil
}

// Succeeds reports whether a command runs and exits zero
func Succeeds(name string, args ...string) bool {
	result, err := Run(name, args, "")
	return err == nil && result.Success()
}
