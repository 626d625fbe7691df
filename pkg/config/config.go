// Package config defines the user-tunable settings for atlas, their
// defaults, validation rules, and persistence to the per-user
// configuration file.
package config

import (
	"github.com/arthur-debert/atlas/pkg/system"
)

// Config holds every user-tunable setting, grouped into sections that
// mirror the persisted TOML document.
type Config struct {
	Build        BuildConfig        `koanf:"build" toml:"build"`
	Tools        ToolsConfig        `koanf:"tools" toml:"tools"`
	Optimization OptimizationConfig `koanf:"optimization" toml:"optimization"`
	Development  DevelopmentConfig  `koanf:"development" toml:"development"`
}

// BuildConfig controls the synthesized cargo build settings.
type BuildConfig struct {
	// ParallelJobs is the build parallelism. nil means auto-detect from
	// the CPU core count.
	ParallelJobs           *int   `koanf:"parallel_jobs" toml:"parallel_jobs,omitempty"`
	Incremental            bool   `koanf:"incremental" toml:"incremental"`
	TargetCPU              string `koanf:"target_cpu" toml:"target_cpu"`
	UseFastLinker          bool   `koanf:"use_fast_linker" toml:"use_fast_linker"`
	SeparateAnalyzerTarget bool   `koanf:"separate_rust_analyzer_target" toml:"separate_rust_analyzer_target"`
	EnableSccache          bool   `koanf:"enable_sccache" toml:"enable_sccache"`
}

// ToolsConfig controls auxiliary tool installation.
type ToolsConfig struct {
	AutoInstall           bool     `koanf:"auto_install" toml:"auto_install"`
	PreferredTools        []string `koanf:"preferred_tools" toml:"preferred_tools"`
	InstallTimeoutSeconds int      `koanf:"install_timeout_seconds" toml:"install_timeout_seconds"`
}

// OptimizationConfig controls artifact cleanup and dependency analysis.
type OptimizationConfig struct {
	CleanOldArtifacts     bool `koanf:"clean_old_artifacts" toml:"clean_old_artifacts"`
	ArtifactRetentionDays int  `koanf:"artifact_retention_days" toml:"artifact_retention_days"`
	CheckUnusedDeps       bool `koanf:"check_unused_deps" toml:"check_unused_deps"`
	OptimizeProfiles      bool `koanf:"optimize_profiles" toml:"optimize_profiles"`
}

// DevelopmentConfig controls the watch-mode workflow.
type DevelopmentConfig struct {
	WatchModeEnabled bool     `koanf:"watch_mode_enabled" toml:"watch_mode_enabled"`
	WatchPaths       []string `koanf:"watch_paths" toml:"watch_paths"`
	AutoTestOnChange bool     `koanf:"auto_test_on_change" toml:"auto_test_on_change"`
	QuickCheckOnSave bool     `koanf:"quick_check_on_save" toml:"quick_check_on_save"`
}

// Default returns a fully populated configuration with the documented
// defaults. ParallelJobs stays nil so parallelism is auto-detected.
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			ParallelJobs:           nil,
			Incremental:            true,
			TargetCPU:              "native",
			UseFastLinker:          true,
			SeparateAnalyzerTarget: true,
			EnableSccache:          true,
		},
		Tools: ToolsConfig{
			AutoInstall: true,
			PreferredTools: []string{
				"sccache",
				"cargo-nextest",
				"cargo-udeps",
				"cargo-hakari",
				"cargo-watch",
			},
			InstallTimeoutSeconds: 300,
		},
		Optimization: OptimizationConfig{
			CleanOldArtifacts:     true,
			ArtifactRetentionDays: 7,
			CheckUnusedDeps:       true,
			OptimizeProfiles:      true,
		},
		Development: DevelopmentConfig{
			WatchModeEnabled: true,
			WatchPaths:       []string{"src", "Cargo.toml"},
			AutoTestOnChange: false,
			QuickCheckOnSave: true,
		},
	}
}

// EffectiveParallelJobs resolves the build parallelism: the configured
// value when set, otherwise the detected CPU core count.
func (c *Config) EffectiveParallelJobs(snap *system.Snapshot) int {
	if c.Build.ParallelJobs != nil {
		return *c.Build.ParallelJobs
	}
	return snap.CPUCores
}
