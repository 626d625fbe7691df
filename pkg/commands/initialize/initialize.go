package initialize

import (
	"github.com/arthur-debert/atlas/pkg/cargo"
	"github.com/arthur-debert/atlas/pkg/config"
	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/logging"
	"github.com/arthur-debert/atlas/pkg/project"
	"github.com/arthur-debert/atlas/pkg/system"
	"github.com/arthur-debert/atlas/pkg/tools"
)

// Options holds options for the initialize command.
type Options struct {
	// ProjectDir is the directory to initialize. Empty means discover
	// the project root upward from the working directory.
	ProjectDir string
	// NoBackup skips the pre-modification backup of existing files.
	NoBackup bool
	// NoTools skips installation of the preferred tool set.
	NoTools bool
	// Force overwrites existing files without prompting.
	Force bool

	// ConfigManager loads and persists the user configuration. Nil means
	// the default XDG location.
	ConfigManager *config.Manager
	// Confirm answers overwrite prompts. Nil declines everything.
	Confirm project.Confirmer
	// Snapshot substitutes a pre-built capability snapshot, for tests.
	// Nil means probe the live host.
	Snapshot *system.Snapshot
	// Installer substitutes the tool installer, for tests.
	Installer *tools.Installer
}

// Result describes everything initialize did.
type Result struct {
	ProjectRoot string
	Snapshot    *system.Snapshot
	Config      *config.Config
	Merge       *project.MergeReport
	ToolResults []tools.InstallResult
}

// Initialize probes the host, loads and validates the configuration,
// synthesizes the optimized cargo documents, and merges them into the
// project. When tool installation is enabled it also installs every
// preferred tool that is missing.
func Initialize(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.initialize")

	root := opts.ProjectDir
	if root == "" {
		var err error
		root, err = project.FindRoot(".")
		if err != nil {
			return nil, err
		}
	}
	if !project.IsCargoProject(root) {
		return nil, errors.Newf(errors.ErrProjectInvalid,
			"no %s found in %s", project.ManifestName, root)
	}

	snap := opts.Snapshot
	if snap == nil {
		snap = system.Detect()
	}
	logger.Info().
		Stringer("os", snap.OS).
		Stringer("arch", snap.Arch).
		Int("cpuCores", snap.CPUCores).
		Msg("Detected system")

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

	artifact := cargo.Synthesize(cfg, snap)
	report, err := project.Apply(root, artifact, project.MergeOptions{
		Force:   opts.Force,
		Backup:  !opts.NoBackup,
		Confirm: opts.Confirm,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		ProjectRoot: root,
		Snapshot:    snap,
		Config:      cfg,
		Merge:       report,
	}

	if !opts.NoTools {
		ins := opts.Installer
		if ins == nil {
			ins = tools.NewInstaller(&cfg.Tools)
		}
		result.ToolResults = ins.InstallAll(cfg.Tools.PreferredTools, snap)
	}

	// Persist the configuration so later invocations start from the
	// same settings the project was initialized with.
	if !mgr.Exists() {
		if err := mgr.Save(cfg); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("root", root).
		Bool("configWritten", report.ConfigWritten).
		Bool("profilesAppended", report.ProfilesAppended).
		Msg("Initialization complete")

	return result, nil
}
