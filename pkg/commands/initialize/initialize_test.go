package initialize

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/atlas/pkg/config"
	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/system"
	"github.com/arthur-debert/atlas/pkg/testutil"
	"github.com/arthur-debert/atlas/pkg/tools"
)

func testSnapshot() *system.Snapshot {
	return &system.Snapshot{
		OS:       system.OperatingSystem{Family: system.OSLinux, Raw: "linux"},
		Arch:     system.Architecture{Family: system.ArchX86_64, Raw: "amd64"},
		CPUCores: 4,
		Tools: []system.ToolStatus{
			{Name: "sccache", Installed: true, Path: "/usr/bin/sccache"},
			{Name: "cargo-nextest", Installed: false},
			{Name: "mold", Installed: false},
		},
	}
}

func fakeInstaller(t *testing.T, calls *[][]string) *tools.Installer {
	t.Helper()
	cfg := config.Default()
	return tools.NewInstallerWithRunner(&cfg.Tools,
		func(ctx context.Context, name string, args []string, dir string) error {
			*calls = append(*calls, append([]string{name}, args...))
			return nil
		})
}

func TestInitializeWritesConfigAndProfiles(t *testing.T) {
	root := testutil.TempDir(t, "atlas-init")
	testutil.CreateFile(t, root, "Cargo.toml", "[package]\nname = \"demo\"\n")
	cfgDir := testutil.TempDir(t, "atlas-cfg")

	result, err := Initialize(Options{
		ProjectDir:    root,
		NoTools:       true,
		ConfigManager: config.NewManager(cfgDir),
		Snapshot:      testSnapshot(),
	})
	require.NoError(t, err)

	assert.Equal(t, root, result.ProjectRoot)
	assert.True(t, result.Merge.ConfigWritten)
	assert.True(t, result.Merge.ProfilesAppended)

	written := testutil.ReadFile(t, filepath.Join(root, ".cargo", "config.toml"))
	assert.Contains(t, written, "jobs = 4")
	assert.Contains(t, written, "[target.x86_64-unknown-linux-gnu]")

	manifest := testutil.ReadFile(t, filepath.Join(root, "Cargo.toml"))
	assert.Contains(t, manifest, "[profile.dev]")
	assert.Contains(t, manifest, "# Optimized build profiles added by atlas")

	// First run persists the configuration for later invocations.
	assert.FileExists(t, filepath.Join(cfgDir, "config.toml"))
}

func TestInitializeRequiresManifest(t *testing.T) {
	root := testutil.TempDir(t, "atlas-init")

	_, err := Initialize(Options{
		ProjectDir: root,
		NoTools:    true,
		Snapshot:   testSnapshot(),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrProjectInvalid))
}

func TestInitializeInstallsMissingPreferredTools(t *testing.T) {
	root := testutil.TempDir(t, "atlas-init")
	testutil.CreateFile(t, root, "Cargo.toml", "[package]\n")
	cfgDir := testutil.TempDir(t, "atlas-cfg")

	var calls [][]string
	result, err := Initialize(Options{
		ProjectDir:    root,
		ConfigManager: config.NewManager(cfgDir),
		Snapshot:      testSnapshot(),
		Installer:     fakeInstaller(t, &calls),
	})
	require.NoError(t, err)

	want := config.Default().Tools.PreferredTools
	require.Len(t, result.ToolResults, len(want))

	// sccache is already installed in the snapshot, so it is skipped
	// and no command runs for it.
	for _, res := range result.ToolResults {
		if res.Tool == "sccache" {
			assert.True(t, res.Skipped)
		}
	}
	for _, call := range calls {
		assert.NotContains(t, strings.Join(call, " "), "sccache")
	}
}

func TestInitializeBackupGuardsExistingConfig(t *testing.T) {
	root := testutil.TempDir(t, "atlas-init")
	testutil.CreateFile(t, root, "Cargo.toml", "[package]\n")
	testutil.CreateDir(t, root, ".cargo")
	testutil.CreateFile(t, root, filepath.Join(".cargo", "config.toml"), "# old\n")
	cfgDir := testutil.TempDir(t, "atlas-cfg")

	result, err := Initialize(Options{
		ProjectDir:    root,
		NoTools:       true,
		Force:         true,
		ConfigManager: config.NewManager(cfgDir),
		Snapshot:      testSnapshot(),
	})
	require.NoError(t, err)

	require.NotEmpty(t, result.Merge.ConfigBackupPath)
	backup, err := os.ReadFile(result.Merge.ConfigBackupPath)
	require.NoError(t, err)
	assert.Equal(t, "# old\n", string(backup))
}

func TestInitializeDoesNotOverwriteSavedConfig(t *testing.T) {
	root := testutil.TempDir(t, "atlas-init")
	testutil.CreateFile(t, root, "Cargo.toml", "[package]\n")
	cfgDir := testutil.TempDir(t, "atlas-cfg")

	mgr := config.NewManager(cfgDir)
	custom := config.Default()
	custom.Optimization.ArtifactRetentionDays = 30
	require.NoError(t, mgr.Save(custom))

	_, err := Initialize(Options{
		ProjectDir:    root,
		NoTools:       true,
		ConfigManager: mgr,
		Snapshot:      testSnapshot(),
	})
	require.NoError(t, err)

	loaded, err := mgr.Load()
	require.NoError(t, err)
	assert.Equal(t, 30, loaded.Optimization.ArtifactRetentionDays)
}
