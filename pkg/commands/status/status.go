// Package status reports the host's optimization readiness: the
// capability snapshot, tool availability, and configuration state.
package status

import (
	"encoding/json"

	"github.com/arthur-debert/atlas/pkg/config"
	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/project"
	"github.com/arthur-debert/atlas/pkg/system"
)

// Options holds options for the status command.
type Options struct {
	// ProjectDir is the project to inspect. Empty means discover from
	// the working directory; a missing project is reported, not fatal.
	ProjectDir string

	ConfigManager *config.Manager
	Snapshot      *system.Snapshot
}

// ToolReport is one tool's availability for serialized output.
type ToolReport struct {
	Name      string `json:"name"`
	Installed bool   `json:"is_installed"`
	Version   string `json:"version,omitempty"`
	Path      string `json:"path,omitempty"`
}

// Report is the full status document.
type Report struct {
	System struct {
		OS           string `json:"os"`
		Arch         string `json:"arch"`
		CPUCores     int    `json:"cpu_cores"`
		RustVersion  string `json:"rust_version,omitempty"`
		CargoVersion string `json:"cargo_version,omitempty"`
	} `json:"system"`
	Tools []ToolReport `json:"tools"`

	Project struct {
		Root        string `json:"root,omitempty"`
		Initialized bool   `json:"initialized"`
	} `json:"project"`

	Config struct {
		Path   string `json:"path"`
		Exists bool   `json:"exists"`
	} `json:"config"`

	snapshot *system.Snapshot
	cfg      *config.Config
}

// Snapshot returns the capability snapshot the report was built from.
func (r *Report) Snapshot() *system.Snapshot { return r.snapshot }

// EffectiveConfig returns the configuration the report was built with.
func (r *Report) EffectiveConfig() *config.Config { return r.cfg }

// MissingTools lists the catalog tools the host does not have.
func (r *Report) MissingTools() []string {
	var missing []string
	for _, tool := range r.Tools {
		if !tool.Installed {
			missing = append(missing, tool.Name)
		}
	}
	return missing
}

// JSON renders the report as an indented JSON document.
func (r *Report) JSON() (string, error) {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrSerialize, "failed to encode status report")
	}
	return string(out), nil
}

// Status gathers the report. It never fails on a missing project or
// missing configuration file; both are part of the answer.
func Status(opts Options) (*Report, error) {
	snap := opts.Snapshot
	if snap == nil {
		snap = system.Detect()
	}

	mgr := opts.ConfigManager
	if mgr == nil {
		mgr = config.DefaultManager()
	}
	cfg, err := mgr.LoadOrDefault()
	if err != nil {
		return nil, err
	}

	report := &Report{snapshot: snap, cfg: cfg}
	report.System.OS = snap.OS.String()
	report.System.Arch = snap.Arch.String()
	report.System.CPUCores = snap.CPUCores
	report.System.RustVersion = snap.RustVersion
	report.System.CargoVersion = snap.CargoVersion

	for _, tool := range snap.Tools {
		report.Tools = append(report.Tools, ToolReport{
			Name:      tool.Name,
			Installed: tool.Installed,
			Version:   tool.Version,
			Path:      tool.Path,
		})
	}

	report.Config.Path = mgr.Path()
	report.Config.Exists = mgr.Exists()

	start := opts.ProjectDir
	if start == "" {
		start = "."
	}
	if root, err := project.FindRoot(start); err == nil {
		report.Project.Root = root
		report.Project.Initialized = project.IsInitialized(root)
	}

	return report, nil
}
