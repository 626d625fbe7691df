package dev

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/logging"
)

// debounceWindow coalesces editor save bursts into one check run.
const debounceWindow = 300 * time.Millisecond

// WatchOptions extends Options for the watch workflow.
type WatchOptions struct {
	Options

	// Paths overrides the configured watch paths, relative to the
	// project root.
	Paths []string
	// Debounce overrides the coalescing window. Zero means the default.
	Debounce time.Duration
	// OnRun is called after each triggered check, with its error. Used
	// by tests to observe the loop.
	OnRun func(err error)
}

// Watch blocks watching the configured paths and re-runs the quick
// check whenever a watched file changes. It returns when the context is
// cancelled. Directories are watched recursively as they appear.
func Watch(ctx context.Context, opts WatchOptions) error {
	logger := logging.GetLogger("commands.dev")

	root, cfg, _, run, err := resolve(opts.Options)
	if err != nil {
		return err
	}

	paths := opts.Paths
	if len(paths) == 0 {
		paths = cfg.Development.WatchPaths
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create file watcher")
	}
	defer func() { _ = watcher.Close() }()

	watched := 0
	for _, p := range paths {
		abs := filepath.Join(root, p)
		if err := addRecursive(watcher, abs, logger); err == nil {
			watched++
		}
	}
	if watched == 0 {
		return errors.New(errors.ErrInvalidInput, "no watchable paths found")
	}

	debounce := opts.Debounce
	if debounce == 0 {
		debounce = debounceWindow
	}

	check := func() {
		err := run(ctx, "cargo",
			[]string{"check", "--workspace", "--message-format=short"}, root)
		if err != nil {
			logger.Warn().Err(err).Msg("Check failed, watching for next change")
		} else if cfg.Development.AutoTestOnChange {
			err = run(ctx, "cargo", []string{"test", "--workspace"}, root)
			if err != nil {
				logger.Warn().Err(err).Msg("Tests failed, watching for next change")
			}
		}
		if opts.OnRun != nil {
			opts.OnRun(err)
		}
	}

	// Run once up front so the first feedback does not wait for an edit.
	check()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name, logger)
				}
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
				!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).
				Msg("Change detected")
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}
		case <-timerC:
			check()
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(werr).Msg("Watcher error")
		}
	}
}

func addRecursive(watcher *fsnotify.Watcher, path string, logger zerolog.Logger) error {
	info, err := os.Stat(path)
	if err != nil {
		logger.Debug().Str("path", path).Msg("Skipping missing watch path")
		return err
	}
	if !info.IsDir() {
		return watcher.Add(path)
	}
	return filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
}
