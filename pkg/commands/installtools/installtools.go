package installtools

import (
	"github.com/arthur-debert/atlas/pkg/config"
	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/logging"
	"github.com/arthur-debert/atlas/pkg/system"
	"github.com/arthur-debert/atlas/pkg/tools"
)

// Options holds options for the install-tools command.
type Options struct {
	// Tools is the explicit set to install. Empty means the preferred
	// tool set from the configuration.
	Tools []string
	// All installs every tool atlas knows how to install.
	All bool
	// List only reports tool availability without installing anything.
	List bool

	ConfigManager *config.Manager
	// Snapshot substitutes a pre-built capability snapshot, for tests.
	Snapshot *system.Snapshot
	// Installer substitutes the tool installer, for tests.
	Installer *tools.Installer
}

// Result describes the install-tools outcome.
type Result struct {
	Snapshot *system.Snapshot
	// Requested is the resolved tool list in installation order.
	Requested []string
	// Results is empty when Options.List was set.
	Results []tools.InstallResult
}

// Failed reports whether any installation in the batch failed.
func (r *Result) Failed() bool {
	for _, res := range r.Results {
		if res.Err != nil {
			return true
		}
	}
	return false
}

// InstallTools installs the requested tools, skipping ones the host
// already has. Unknown tool names fail before anything is installed.
func InstallTools(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.installtools")

	mgr := opts.ConfigManager
	if mgr == nil {
		mgr = config.DefaultManager()
	}
	cfg, err := mgr.LoadOrDefault()
	if err != nil {
		return nil, err
	}

	requested := opts.Tools
	switch {
	case opts.All:
		requested = tools.All()
	case len(requested) == 0:
		requested = cfg.Tools.PreferredTools
	}

	for _, name := range requested {
		if !tools.Known(name) {
			return nil, errors.Newf(errors.ErrToolNotFound,
				"unknown tool: %s", name)
		}
	}

	snap := opts.Snapshot
	if snap == nil {
		snap = system.Detect()
	}

	result := &Result{Snapshot: snap, Requested: requested}
	if opts.List {
		return result, nil
	}

	ins := opts.Installer
	if ins == nil {
		ins = tools.NewInstaller(&cfg.Tools)
	}
	result.Results = ins.InstallAll(requested, snap)

	failed := 0
	for _, res := range result.Results {
		if res.Err != nil {
			failed++
		}
	}
	logger.Info().
		Int("requested", len(requested)).
		Int("failed", failed).
		Msg("Tool installation finished")

	return result, nil
}
