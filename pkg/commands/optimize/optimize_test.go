package optimize

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/atlas/pkg/config"
	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/system"
	"github.com/arthur-debert/atlas/pkg/testutil"
)

func testSnapshot(installed ...string) *system.Snapshot {
	var statuses []system.ToolStatus
	for _, name := range installed {
		statuses = append(statuses, system.ToolStatus{Name: name, Installed: true})
	}
	return &system.Snapshot{
		OS:       system.OperatingSystem{Family: system.OSLinux, Raw: "linux"},
		Arch:     system.Architecture{Family: system.ArchX86_64, Raw: "amd64"},
		CPUCores: 4,
		Tools:    statuses,
	}
}

func newOptions(t *testing.T, calls *[][]string, installed ...string) Options {
	t.Helper()
	root := testutil.TempDir(t, "atlas-opt")
	testutil.CreateFile(t, root, "Cargo.toml", "[package]\n")
	return Options{
		ProjectDir:    root,
		ConfigManager: config.NewManager(testutil.TempDir(t, "atlas-cfg")),
		Snapshot:      testSnapshot(installed...),
		Run: func(ctx context.Context, name string, args []string, dir string) error {
			*calls = append(*calls, append([]string{name}, args...))
			return nil
		},
	}
}

func ageFile(t *testing.T, path string, age time.Duration) {
	t.Helper()
	old := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, old, old))
}

func TestCleanPrunesOnlyStaleArtifacts(t *testing.T) {
	var calls [][]string
	opts := newOptions(t, &calls)
	opts.Clean = true

	stale := testutil.CreateFile(t, opts.ProjectDir, "target/debug/stale.o", "xxxx")
	fresh := testutil.CreateFile(t, opts.ProjectDir, "target/debug/fresh.o", "yy")
	ageFile(t, stale, 10*24*time.Hour) // past the 7 day default retention

	result, err := Optimize(opts)
	require.NoError(t, err)

	assert.True(t, result.Cleaned)
	assert.Equal(t, 1, result.RemovedFiles)
	assert.Equal(t, uint64(4), result.ReclaimedBytes)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
}

func TestCleanRemovesEmptiedDirectories(t *testing.T) {
	var calls [][]string
	opts := newOptions(t, &calls)
	opts.Clean = true

	stale := testutil.CreateFile(t, opts.ProjectDir, "target/debug/deps/old.rlib", "data")
	ageFile(t, stale, 30*24*time.Hour)

	_, err := Optimize(opts)
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(opts.ProjectDir, "target", "debug", "deps"))
	assert.DirExists(t, filepath.Join(opts.ProjectDir, "target"))
}

func TestCleanRejectsNegativeRetention(t *testing.T) {
	var calls [][]string
	opts := newOptions(t, &calls)
	opts.Clean = true

	bad := config.Default()
	bad.Optimization.ArtifactRetentionDays = -1
	mgr := config.NewManager(testutil.TempDir(t, "atlas-cfg"))
	require.NoError(t, mgr.Save(bad))
	opts.ConfigManager = mgr

	fresh := testutil.CreateFile(t, opts.ProjectDir, "target/debug/just-built.rlib", "data")

	_, err := Optimize(opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))

	// A bad retention window must never reach the prune pass.
	assert.FileExists(t, fresh)
}

func TestPruneArtifactsGuardsNegativeRetention(t *testing.T) {
	root := testutil.TempDir(t, "atlas-opt")
	fresh := testutil.CreateFile(t, root, "target/debug/just-built.rlib", "data")

	_, _, err := pruneArtifacts(root, -1, time.Now())
	require.Error(t, err)
	assert.FileExists(t, fresh)
}

func TestCleanWithoutTargetDirIsNoop(t *testing.T) {
	var calls [][]string
	opts := newOptions(t, &calls)
	opts.Clean = true

	result, err := Optimize(opts)
	require.NoError(t, err)
	assert.Zero(t, result.RemovedFiles)
}

func TestDepsSkippedWithoutUdeps(t *testing.T) {
	var calls [][]string
	opts := newOptions(t, &calls)
	opts.Deps = true

	result, err := Optimize(opts)
	require.NoError(t, err)
	assert.True(t, result.DepsSkipped)
	assert.False(t, result.DepsChecked)
	assert.Empty(t, calls)
}

func TestDepsRunsNightlyUdeps(t *testing.T) {
	var calls [][]string
	opts := newOptions(t, &calls, "cargo-udeps")
	opts.Deps = true

	result, err := Optimize(opts)
	require.NoError(t, err)
	assert.True(t, result.DepsChecked)
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"cargo", "+nightly", "udeps", "--all-targets"}, calls[0])
}

func TestAllRunsEveryPass(t *testing.T) {
	var calls [][]string
	opts := newOptions(t, &calls, "cargo-udeps")
	opts.All = true

	result, err := Optimize(opts)
	require.NoError(t, err)
	assert.True(t, result.Cleaned)
	assert.True(t, result.DepsChecked)
	assert.True(t, result.Benchmarked)
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"cargo", "check", "--workspace"}, calls[1])
}
