package dev

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/atlas/pkg/config"
	"github.com/arthur-debert/atlas/pkg/system"
	"github.com/arthur-debert/atlas/pkg/testutil"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) run(ctx context.Context, name string, args []string, dir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]string{name}, args...))
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func newOptions(t *testing.T, rec *recorder) Options {
	t.Helper()
	root := testutil.TempDir(t, "atlas-dev")
	testutil.CreateFile(t, root, "Cargo.toml", "[package]\n")
	testutil.CreateDir(t, root, "src")
	return Options{
		ProjectDir:    root,
		ConfigManager: config.NewManager(testutil.TempDir(t, "atlas-cfg")),
		Snapshot: &system.Snapshot{
			OS:       system.OperatingSystem{Family: system.OSLinux, Raw: "linux"},
			Arch:     system.Architecture{Family: system.ArchX86_64, Raw: "amd64"},
			CPUCores: 4,
		},
		Run: rec.run,
	}
}

func TestQuickCheck(t *testing.T) {
	rec := &recorder{}
	result, err := QuickCheck(newOptions(t, rec))
	require.NoError(t, err)

	want := []string{"cargo", "check", "--lib", "--bins", "--workspace", "--message-format=short"}
	require.Len(t, result.Commands, 1)
	assert.Equal(t, want, result.Commands[0])
}

func TestProfile(t *testing.T) {
	rec := &recorder{}
	result, err := Profile(newOptions(t, rec))
	require.NoError(t, err)

	require.Len(t, result.Commands, 1)
	assert.Equal(t, []string{"cargo", "build", "--timings"}, result.Commands[0])
}

func TestCleanBuild(t *testing.T) {
	rec := &recorder{}
	opts := newOptions(t, rec)
	opts.Release = true

	result, err := CleanBuild(opts)
	require.NoError(t, err)

	require.Len(t, result.Commands, 2)
	assert.Equal(t, []string{"cargo", "clean"}, result.Commands[0])
	assert.Equal(t, []string{"cargo", "build", "--release"}, result.Commands[1])
}

func TestWatchRunsInitialCheckAndReactsToWrites(t *testing.T) {
	rec := &recorder{}
	opts := newOptions(t, rec)

	runs := make(chan error, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, WatchOptions{
			Options:  opts,
			Debounce: 20 * time.Millisecond,
			OnRun:    func(err error) { runs <- err },
		})
	}()

	// Initial check fires before any file change.
	select {
	case err := <-runs:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for initial check")
	}

	testutil.CreateFile(t, opts.ProjectDir, "src/main.rs", "fn main() {}\n")

	select {
	case err := <-runs:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change-triggered check")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop on cancellation")
	}

	assert.GreaterOrEqual(t, rec.count(), 2)
}

func TestWatchRunsTestsWhenConfigured(t *testing.T) {
	rec := &recorder{}
	opts := newOptions(t, rec)

	cfg := config.Default()
	cfg.Development.AutoTestOnChange = true
	mgr := config.NewManager(testutil.TempDir(t, "atlas-cfg"))
	require.NoError(t, mgr.Save(cfg))
	opts.ConfigManager = mgr

	runs := make(chan error, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, WatchOptions{
			Options:  opts,
			Debounce: 20 * time.Millisecond,
			OnRun:    func(err error) { runs <- err },
		})
	}()

	select {
	case err := <-runs:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for initial check")
	}
	cancel()
	<-done

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.calls, 2)
	assert.Equal(t, "check", rec.calls[0][1])
	assert.Equal(t, []string{"cargo", "test", "--workspace"}, rec.calls[1])
}

func TestWatchFailsWithoutWatchablePaths(t *testing.T) {
	rec := &recorder{}
	opts := newOptions(t, rec)

	err := Watch(context.Background(), WatchOptions{
		Options: opts,
		Paths:   []string{"does-not-exist"},
	})
	require.Error(t, err)
}
