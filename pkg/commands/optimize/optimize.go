// Package optimize performs maintenance passes over a project: pruning
// stale build artifacts, flagging unused dependencies, and timing a
// baseline check.
package optimize

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/atlas/pkg/config"
	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/executor"
	"github.com/arthur-debert/atlas/pkg/logging"
	"github.com/arthur-debert/atlas/pkg/project"
	"github.com/arthur-debert/atlas/pkg/system"
)

// Runner executes one command with attached output.
type Runner func(ctx context.Context, name string, args []string, dir string) error

// Options holds options for the optimize command.
type Options struct {
	ProjectDir string
	// All enables every pass.
	All bool
	// Clean prunes build artifacts older than the retention window.
	Clean bool
	// Deps checks for unused dependencies with cargo-udeps.
	Deps bool
	// Benchmark times a full workspace check.
	Benchmark bool

	ConfigManager *config.Manager
	Snapshot      *system.Snapshot
	Run           Runner

	// Now substitutes the clock, for tests. Nil means time.Now.
	Now func() time.Time
}

// Result reports what each enabled pass did.
type Result struct {
	ProjectRoot string

	// Clean pass.
	Cleaned        bool
	RemovedFiles   int
	ReclaimedBytes uint64

	// Deps pass.
	DepsChecked bool
	// DepsSkipped is set when cargo-udeps is not installed.
	DepsSkipped bool

	// Benchmark pass.
	Benchmarked   bool
	CheckDuration time.Duration
}

// Optimize runs the enabled passes in order. A pass that cannot run on
// this host is skipped and recorded, never fatal.
func Optimize(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.optimize")

	root := opts.ProjectDir
	if root == "" {
		var err error
		root, err = project.FindRoot(".")
		if err != nil {
			return nil, err
		}
	}

	mgr := opts.ConfigManager
	if mgr == nil {
		mgr = config.DefaultManager()
	}
	cfg, err := mgr.LoadOrDefault()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	snap := opts.Snapshot
	if snap == nil {
		snap = system.Detect()
	}
	run := opts.Run
	if run == nil {
		run = executor.RunStreamingContext
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	result := &Result{ProjectRoot: root}

	if opts.All || opts.Clean {
		removed, bytes, err := pruneArtifacts(root, cfg.Optimization.ArtifactRetentionDays, now())
		if err != nil {
			return nil, err
		}
		result.Cleaned = true
		result.RemovedFiles = removed
		result.ReclaimedBytes = bytes
		logger.Info().
			Int("files", removed).
			Uint64("bytes", bytes).
			Msg("Pruned stale artifacts")
	}

	if opts.All || opts.Deps {
		if snap.IsToolInstalled("cargo-udeps") {
			// Unused-dependency findings exit non-zero; that is the
			// expected report, not a failure.
			_ = run(context.Background(), "cargo",
				[]string{"+nightly", "udeps", "--all-targets"}, root)
			result.DepsChecked = true
		} else {
			result.DepsSkipped = true
			logger.Warn().Msg("cargo-udeps not installed, skipping dependency check")
		}
	}

	if opts.All || opts.Benchmark {
		start := time.Now()
		err := run(context.Background(), "cargo",
			[]string{"check", "--workspace"}, root)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCommandFailed, "benchmark check failed")
		}
		result.Benchmarked = true
		result.CheckDuration = time.Since(start)
	}

	return result, nil
}

// pruneArtifacts removes regular files under target/ whose modification
// time is older than the retention window, then clears any directories
// the removals emptied.
func pruneArtifacts(root string, retentionDays int, now time.Time) (int, uint64, error) {
	if retentionDays < config.MinRetentionDays {
		return 0, 0, errors.Newf(errors.ErrInvalidInput,
			"artifact retention cannot be negative: %d", retentionDays)
	}

	target := filepath.Join(root, "target")
	if _, err := os.Stat(target); err != nil {
		return 0, 0, nil
	}

	cutoff := now.AddDate(0, 0, -retentionDays)

	removed := 0
	var bytes uint64
	var dirs []string

	err := filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != target {
				dirs = append(dirs, path)
			}
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", path)
		}
		removed++
		bytes += uint64(info.Size())
		return nil
	})
	if err != nil {
		return removed, bytes, err
	}

	// Deepest first so nested empty directories collapse upward.
	for i := len(dirs) - 1; i >= 0; i-- {
		_ = os.Remove(dirs[i]) // fails while non-empty, which is fine
	}

	return removed, bytes, nil
}
