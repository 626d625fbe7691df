package installtools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/atlas/pkg/config"
	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/system"
	"github.com/arthur-debert/atlas/pkg/testutil"
	"github.com/arthur-debert/atlas/pkg/tools"
)

func testSnapshot(installed ...string) *system.Snapshot {
	have := make(map[string]bool, len(installed))
	for _, name := range installed {
		have[name] = true
	}
	var statuses []system.ToolStatus
	for _, name := range tools.All() {
		statuses = append(statuses, system.ToolStatus{
			Name:      name,
			Installed: have[name],
		})
	}
	return &system.Snapshot{
		OS:       system.OperatingSystem{Family: system.OSLinux, Raw: "linux"},
		Arch:     system.Architecture{Family: system.ArchX86_64, Raw: "amd64"},
		CPUCores: 8,
		Tools:    statuses,
	}
}

func newOptions(t *testing.T, calls *[][]string) Options {
	t.Helper()
	cfg := config.Default()
	return Options{
		ConfigManager: config.NewManager(testutil.TempDir(t, "atlas-cfg")),
		Installer: tools.NewInstallerWithRunner(&cfg.Tools,
			func(ctx context.Context, name string, args []string, dir string) error {
				*calls = append(*calls, append([]string{name}, args...))
				return nil
			}),
	}
}

func TestInstallToolsDefaultsToPreferredSet(t *testing.T) {
	var calls [][]string
	opts := newOptions(t, &calls)
	opts.Snapshot = testSnapshot()

	result, err := InstallTools(opts)
	require.NoError(t, err)

	assert.Equal(t, config.Default().Tools.PreferredTools, result.Requested)
	assert.Len(t, result.Results, len(result.Requested))
	assert.False(t, result.Failed())
}

func TestInstallToolsRejectsUnknownNameUpfront(t *testing.T) {
	var calls [][]string
	opts := newOptions(t, &calls)
	opts.Snapshot = testSnapshot()
	opts.Tools = []string{"sccache", "not-a-tool"}

	_, err := InstallTools(opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrToolNotFound))
	assert.Empty(t, calls, "nothing should install when any name is unknown")
}

func TestInstallToolsListDoesNotInstall(t *testing.T) {
	var calls [][]string
	opts := newOptions(t, &calls)
	opts.Snapshot = testSnapshot()
	opts.List = true
	opts.All = true

	result, err := InstallTools(opts)
	require.NoError(t, err)

	assert.Equal(t, tools.All(), result.Requested)
	assert.Empty(t, result.Results)
	assert.Empty(t, calls)
}

func TestInstallToolsSkipsInstalled(t *testing.T) {
	var calls [][]string
	opts := newOptions(t, &calls)
	opts.Snapshot = testSnapshot("cargo-nextest")
	opts.Tools = []string{"cargo-nextest"}

	result, err := InstallTools(opts)
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.True(t, result.Results[0].Skipped)
	assert.Empty(t, calls)
}
