package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/system"
)

func intPtr(n int) *int { return &n }

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Nil(t, cfg.Build.ParallelJobs, "parallel jobs default to auto-detect")
	assert.True(t, cfg.Build.Incremental)
	assert.Equal(t, "native", cfg.Build.TargetCPU)
	assert.True(t, cfg.Build.UseFastLinker)
	assert.True(t, cfg.Build.SeparateAnalyzerTarget)
	assert.True(t, cfg.Build.EnableSccache)

	assert.True(t, cfg.Tools.AutoInstall)
	assert.Equal(t, []string{"sccache", "cargo-nextest", "cargo-udeps", "cargo-hakari", "cargo-watch"},
		cfg.Tools.PreferredTools)
	assert.Equal(t, 300, cfg.Tools.InstallTimeoutSeconds)

	assert.Equal(t, 7, cfg.Optimization.ArtifactRetentionDays)
	assert.Equal(t, []string{"src", "Cargo.toml"}, cfg.Development.WatchPaths)

	assert.NoError(t, cfg.Validate(), "defaults must validate")
}

func TestValidateBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"jobs zero fails", func(c *Config) { c.Build.ParallelJobs = intPtr(0) }, true},
		{"jobs one passes", func(c *Config) { c.Build.ParallelJobs = intPtr(1) }, false},
		{"jobs 64 passes", func(c *Config) { c.Build.ParallelJobs = intPtr(64) }, false},
		{"jobs 65 fails", func(c *Config) { c.Build.ParallelJobs = intPtr(65) }, true},
		{"retention zero passes", func(c *Config) { c.Optimization.ArtifactRetentionDays = 0 }, false},
		{"retention negative fails", func(c *Config) { c.Optimization.ArtifactRetentionDays = -5 }, true},
		{"retention 365 passes", func(c *Config) { c.Optimization.ArtifactRetentionDays = 365 }, false},
		{"retention 366 fails", func(c *Config) { c.Optimization.ArtifactRetentionDays = 366 }, true},
		{"timeout 29 fails", func(c *Config) { c.Tools.InstallTimeoutSeconds = 29 }, true},
		{"timeout 30 passes", func(c *Config) { c.Tools.InstallTimeoutSeconds = 30 }, false},
		{"missing watch path is only a warning", func(c *Config) {
			c.Development.WatchPaths = []string{"no/such/path/anywhere"}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := Default()
	cfg.Build.ParallelJobs = intPtr(65)
	cfg.Optimization.ArtifactRetentionDays = 400
	cfg.Tools.InstallTimeoutSeconds = 5

	err := cfg.Validate()
	require.Error(t, err)

	multi, ok := errors.AsMulti(err)
	require.True(t, ok, "want an aggregate error")
	assert.Len(t, multi.Errors, 3, "every violation must be collected")
}

func TestEffectiveParallelJobs(t *testing.T) {
	snap := &system.Snapshot{CPUCores: 8}

	cfg := Default()
	assert.Equal(t, 8, cfg.EffectiveParallelJobs(snap), "auto-detect uses snapshot cores")

	cfg.Build.ParallelJobs = intPtr(4)
	assert.Equal(t, 4, cfg.EffectiveParallelJobs(snap))
}
