// Package build runs the optimized cargo workflows: fast checks,
// builds, tests, and workspace cleaning.
package build

import (
	"context"
	"strconv"
	"time"

	"github.com/arthur-debert/atlas/pkg/config"
	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/executor"
	"github.com/arthur-debert/atlas/pkg/logging"
	"github.com/arthur-debert/atlas/pkg/project"
	"github.com/arthur-debert/atlas/pkg/system"
)

// Runner executes one cargo invocation with attached output. Tests
// substitute a recording fake.
type Runner func(ctx context.Context, name string, args []string, dir string) error

// Options holds options shared by the build subcommands.
type Options struct {
	// ProjectDir is the project to operate on. Empty means discover the
	// root upward from the working directory.
	ProjectDir string
	// Release builds with optimizations (build only).
	Release bool
	// Jobs overrides the configured parallelism. Zero means use the
	// configured or detected value.
	Jobs int

	ConfigManager *config.Manager
	Snapshot      *system.Snapshot
	Run           Runner
}

// Result reports what ran.
type Result struct {
	ProjectRoot string
	// Command is the cargo invocation that was executed, binary first.
	Command []string
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

func execute(root string, run Runner, args []string) (*Result, error) {
	logger := logging.GetLogger("commands.build")
	logger.Debug().Strs("args", args).Str("root", root).Msg("Running cargo")
	defer logging.LogDuration(time.Now(), "cargo "+args[0])

	if err := run(context.Background(), "cargo", args, root); err != nil {
		return nil, errors.Wrapf(err, errors.ErrCommandFailed,
			"cargo %s failed", args[0])
	}
	return &Result{
		ProjectRoot: root,
		Command:     append([]string{"cargo"}, args...),
	}, nil
}

func jobsFlag(opts Options, cfg *config.Config, snap *system.Snapshot) string {
	jobs := opts.Jobs
	if jobs == 0 {
		jobs = cfg.EffectiveParallelJobs(snap)
	}
	return strconv.Itoa(jobs)
}

// Check runs a fast full-workspace type check.
func Check(opts Options) (*Result, error) {
	root, cfg, snap, run, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	args := []string{"check", "--workspace", "--all-targets",
		"--jobs", jobsFlag(opts, cfg, snap)}
	return execute(root, run, args)
}

// Build compiles the workspace, in release mode when requested.
func Build(opts Options) (*Result, error) {
	root, cfg, snap, run, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	args := []string{"build", "--workspace",
		"--jobs", jobsFlag(opts, cfg, snap)}
	if opts.Release {
		args = append(args, "--release")
	}
	return execute(root, run, args)
}

// Test runs the workspace test suite, preferring cargo-nextest when the
// host has it.
func Test(opts Options) (*Result, error) {
	root, _, snap, run, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	args := []string{"test", "--workspace"}
	if snap.IsToolInstalled("cargo-nextest") {
		args = []string{"nextest", "run", "--workspace"}
	}
	return execute(root, run, args)
}

// Clean removes the workspace's build artifacts.
func Clean(opts Options) (*Result, error) {
	root, _, _, run, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	return execute(root, run, []string{"clean"})
}

// Stats prints the shared compilation cache statistics. It fails with a
// tool-not-found error when sccache is missing.
func Stats(opts Options) (*Result, error) {
	root, _, snap, run, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if !snap.IsToolInstalled("sccache") {
		return nil, errors.New(errors.ErrToolNotFound, "sccache is not installed")
	}
	if err := run(context.Background(), "sccache", []string{"--show-stats"}, root); err != nil {
		return nil, errors.Wrap(err, errors.ErrCommandFailed, "sccache --show-stats failed")
	}
	return &Result{
		ProjectRoot: root,
		Command:     []string{"sccache", "--show-stats"},
	}, nil
}
