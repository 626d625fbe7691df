package tools

import (
	"context"
	"time"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/atlas/pkg/config"
	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/executor"
	"github.com/arthur-debert/atlas/pkg/logging"
	"github.com/arthur-debert/atlas/pkg/system"
)

// Runner executes one installation command. Production use streams the
// command's output; tests substitute a recording fake.
type Runner func(ctx context.Context, name string, args []string, dir string) error

// Installer drives tool installation with a per-tool timeout taken from
// the tool preferences.
type Installer struct {
	timeout time.Duration
	runner  Runner
	quiet   bool
}

// InstallResult records the outcome for one tool.
type InstallResult struct {
	Tool    string
	Skipped bool // already installed
	Err     error
}

// NewInstaller creates an Installer honoring the configured install
// timeout.
func NewInstaller(cfg *config.ToolsConfig) *Installer {
	return &Installer{
		timeout: time.Duration(cfg.InstallTimeoutSeconds) * time.Second,
		runner:  executor.RunStreamingContext,
	}
}

// NewInstallerWithRunner is like NewInstaller but substitutes the
// command runner and suppresses progress output. Tests use it to avoid
// spawning real processes.
func NewInstallerWithRunner(cfg *config.ToolsConfig, run Runner) *Installer {
	ins := NewInstaller(cfg)
	ins.runner = run
	ins.quiet = true
	return ins
}

func (ins *Installer) run(ctx context.Context, name string, args ...string) error {
	return ins.runner(ctx, name, args, "")
}

// Install installs a single tool, skipping it when the snapshot already
// shows it installed.
func (ins *Installer) Install(name string, snap *system.Snapshot) InstallResult {
	logger := logging.GetLogger("tools")

	fn, err := lookup(name)
	if err != nil {
		return InstallResult{Tool: name, Err: err}
	}

	if snap.IsToolInstalled(name) {
		logger.Debug().Str("tool", name).Msg("Tool already installed, skipping")
		return InstallResult{Tool: name, Skipped: true}
	}

	ctx, cancel := context.WithTimeout(context.Background(), ins.timeout)
	defer cancel()

	var spinner *pterm.SpinnerPrinter
	if !ins.quiet {
		spinner, _ = pterm.DefaultSpinner.Start("Installing " + name)
	}

	err = fn(ctx, ins, snap)

	if spinner != nil {
		if err != nil {
			spinner.Fail("Failed to install " + name)
		} else {
			spinner.Success("Installed " + name)
		}
	}

	if err != nil {
		return InstallResult{
			Tool: name,
			Err:  errors.Wrapf(err, errors.ErrToolInstall, "failed to install %s", name),
		}
	}
	return InstallResult{Tool: name}
}

// InstallAll installs every named tool in order, collecting per-tool
// results. One failure never aborts the remaining installations.
func (ins *Installer) InstallAll(names []string, snap *system.Snapshot) []InstallResult {
	results := make([]InstallResult, 0, len(names))
	for _, name := range names {
		results = append(results, ins.Install(name, snap))
	}
	return results
}
