// Package dev holds the inner-loop developer workflows: quick syntax
// checks, file watching, build profiling, and clean rebuilds.
package dev

import (
	"context"

	"github.com/arthur-debert/atlas/pkg/config"
	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/executor"
	"github.com/arthur-debert/atlas/pkg/logging"
	"github.com/arthur-debert/atlas/pkg/project"
	"github.com/arthur-debert/atlas/pkg/system"
)

// Runner executes one command with attached output. Tests substitute a
// recording fake.
type Runner func(ctx context.Context, name string, args []string, dir string) error

// Options holds options shared by the dev subcommands.
type Options struct {
	ProjectDir string
	// Release rebuilds in release mode (clean-build only).
	Release bool

	ConfigManager *config.Manager
	Snapshot      *system.Snapshot
	Run           Runner
}

// Result reports the commands a dev workflow ran, in order.
type Result struct {
	ProjectRoot string
	Commands    [][]string
}

func resolve(opts Options) (string, *config.Config, *system.Snapshot, Runner, error) {
	root := opts.ProjectDir
	if root == "" {
		var err error
		root, err = project.FindRoot(".")
		if err != nil {
			return "", nil, nil, nil, err
		}
	}

	mgr := opts.ConfigManager
	if mgr == nil {
		mgr = config.DefaultManager()
	}
	cfg, err := mgr.LoadOrDefault()
	if err != nil {
		return "", nil, nil, nil, err
	}

	snap := opts.Snapshot
	if snap == nil {
		snap = system.Detect()
	}

	run := opts.Run
	if run == nil {
		run = executor.RunStreamingContext
	}
	return root, cfg, snap, run, nil
}

func execute(root string, run Runner, result *Result, name string, args ...string) error {
	logger := logging.GetLogger("commands.dev")
	logger.Debug().Str("cmd", name).Strs("args", args).Msg("Running")

	if err := run(context.Background(), name, args, root); err != nil {
		return errors.Wrapf(err, errors.ErrCommandFailed, "%s failed", name)
	}
	result.Commands = append(result.Commands, append([]string{name}, args...))
	return nil
}

// QuickCheck runs the fastest possible syntax check over the workspace
// libraries and binaries.
func QuickCheck(opts Options) (*Result, error) {
	root, _, _, run, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	result := &Result{ProjectRoot: root}
	err = execute(root, run, result, "cargo",
		"check", "--lib", "--bins", "--workspace", "--message-format=short")
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Profile builds the workspace with timing instrumentation. Cargo
// writes the report to target/cargo-timings/cargo-timing.html.
func Profile(opts Options) (*Result, error) {
	root, _, _, run, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	result := &Result{ProjectRoot: root}
	if err := execute(root, run, result, "cargo", "build", "--timings"); err != nil {
		return nil, err
	}
	return result, nil
}

// CleanBuild removes all artifacts and rebuilds from scratch.
func CleanBuild(opts Options) (*Result, error) {
	root, _, _, run, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	result := &Result{ProjectRoot: root}
	if err := execute(root, run, result, "cargo", "clean"); err != nil {
		return nil, err
	}
	args := []string{"build"}
	if opts.Release {
		args = append(args, "--release")
	}
	if err := execute(root, run, result, "cargo", args...); err != nil {
		return nil, err
	}
	return result, nil
}
