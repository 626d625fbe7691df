package main

// Short messages (one-liners)
const (
	MsgRootShort = "Accelerate Rust compilation with intelligent optimizations"
	MsgRootLong  = `atlas inspects your machine, synthesizes an optimized cargo
configuration for it, and merges that configuration into your Rust
project. It can also install the supporting tools (shared compilation
caches, fast linkers, better test runners) that make the settings pay
off.`

	MsgInitShort         = "Set up build optimization for a Rust project"
	MsgInstallToolsShort = "Install the recommended optimization tools"
	MsgBuildShort        = "Run optimized build workflows"
	MsgCheckShort        = "Fast type check of the whole workspace"
	MsgBuildBuildShort   = "Compile the workspace"
	MsgTestShort         = "Run tests, preferring cargo-nextest"
	MsgCleanShort        = "Remove build artifacts"
	MsgStatsShort        = "Show compilation cache statistics"
	MsgDevShort          = "Inner-loop development workflows"
	MsgQuickCheckShort   = "Ultra-fast syntax check"
	MsgWatchShort        = "Re-check on every file change"
	MsgProfileShort      = "Profile build times"
	MsgCleanBuildShort   = "Rebuild everything from scratch"
	MsgOptimizeShort     = "Prune artifacts and analyze dependencies"
	MsgStatusShort       = "Show system and optimization status"
	MsgConfigShort       = "Manage atlas configuration"
	MsgConfigShowShort   = "Print the effective configuration"
	MsgConfigEditShort   = "Open the configuration in your editor"
	MsgConfigResetShort  = "Restore the default configuration"
	MsgConfigValidShort  = "Check the configuration for errors"
	MsgConfigExportShort = "Export the configuration as toml, yaml, or json"
	MsgUpdateShort       = "Update atlas to the latest release"
	MsgVersionShort      = "Print version information"
	MsgCompletionShort   = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagForce      = "Overwrite existing files without prompting"
	MsgFlagProjectDir = "Project directory (default: discovered from the working directory)"
	MsgFlagNoBackup   = "Skip backing up existing files"
	MsgFlagNoTools    = "Skip tool installation"
	MsgFlagRelease    = "Build with release optimizations"
	MsgFlagJobs       = "Override build parallelism"
	MsgFlagAllTools   = "Install every known tool"
	MsgFlagListTools  = "List tool availability without installing"
	MsgFlagDetailed   = "Include tool versions in the output"
	MsgFlagJSON       = "Emit machine-readable JSON"
	MsgFlagOptAll     = "Run every optimization pass"
	MsgFlagOptClean   = "Prune stale build artifacts"
	MsgFlagOptDeps    = "Check for unused dependencies"
	MsgFlagOptBench   = "Time a baseline workspace check"
	MsgFlagFormat     = "Output format: toml, yaml, or json"
	MsgFlagOutput     = "Write to a file instead of stdout"
	MsgFlagCheckOnly  = "Check for updates without installing"

	// Status messages
	MsgInitDone           = "Build optimization initialized for %s"
	MsgConfigInstalled    = "Installed optimized cargo settings: %s"
	MsgConfigSkipped      = "Left existing cargo settings untouched"
	MsgProfilesAdded      = "Added optimized build profiles to Cargo.toml"
	MsgProfilesSkipped    = "Left existing build profiles untouched"
	MsgProfilesDuplicated = "Note: Cargo.toml now contains more than one dev profile section"
	MsgBackupCreated      = "Backed up %s"
	MsgToolInstalled      = "  installed %s"
	MsgToolSkipped        = "  %s already installed"
	MsgToolFailed         = "  %s failed: %v"
	MsgDetectedSystem     = "Detected %s %s with %d CPU cores"
	MsgWatchStarted       = "Watching for changes, Ctrl-C to stop"
	MsgCleanedArtifacts   = "Removed %d stale files, reclaimed %s"
	MsgBenchmarkResult    = "Workspace check took %s"
	MsgConfigValidOK      = "Configuration is valid"
	MsgConfigResetOK      = "Configuration reset to defaults"
	MsgConfigResetNo      = "Configuration left unchanged"
	MsgExportedTo         = "Configuration exported to %s"
	MsgUpdateLatest       = "You are running version %s"
	MsgUpdateDone         = "atlas updated successfully"
	MsgProfileReport      = "Build profile written to target/cargo-timings/cargo-timing.html"
)
