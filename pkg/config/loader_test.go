package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/testutil"
)

func TestLoadOrDefaultWithoutFile(t *testing.T) {
	m := NewManager(testutil.TempDir(t, "config"))

	cfg, err := m.LoadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, m.Exists())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := testutil.TempDir(t, "config")
	m := NewManager(dir)

	cfg := Default()
	cfg.Build.ParallelJobs = intPtr(12)
	cfg.Build.TargetCPU = "x86-64-v3"
	cfg.Tools.PreferredTools = []string{"sccache", "mold"}
	cfg.Optimization.ArtifactRetentionDays = 30
	cfg.Development.WatchPaths = []string{"src", "benches", "Cargo.toml"}

	require.NoError(t, m.Save(cfg))
	assert.True(t, m.Exists())
	assert.Equal(t, filepath.Join(dir, ConfigFileName), m.Path())

	loaded, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded, "round trip must lose no information")
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	dir := testutil.TempDir(t, "config")
	m := NewManager(dir)

	// A sparse user file only overrides what it names.
	testutil.CreateFile(t, dir, ConfigFileName, "[build]\ntarget_cpu = \"znver4\"\n")

	cfg, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "znver4", cfg.Build.TargetCPU)
	assert.True(t, cfg.Build.UseFastLinker, "unnamed settings keep their defaults")
	assert.Equal(t, 300, cfg.Tools.InstallTimeoutSeconds)
}

func TestLoadMissingFile(t *testing.T) {
	m := NewManager(testutil.TempDir(t, "config"))

	_, err := m.Load()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestLoadMalformedFile(t *testing.T) {
	dir := testutil.TempDir(t, "config")
	m := NewManager(dir)
	testutil.CreateFile(t, dir, ConfigFileName, "not = [valid toml")

	_, err := m.Load()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}
