// Package system probes the running host for build-relevant capabilities.
//
// Detection is infallible by design: a sub-probe that cannot determine a
// value yields an absence (empty string, Unknown variant) rather than
// failing the whole probe. Every invocation re-probes the live
// environment; there is no cache.
package system

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/arthur-debert/atlas/pkg/logging"
)

// OSFamily classifies the host operating system
type OSFamily int

const (
	OSUnknown OSFamily = iota
	OSMacOS
	OSLinux
	OSWindows
)

// OperatingSystem is a tagged variant: a known family, or Unknown with
// the raw platform identifier preserved for display and reporting.
type OperatingSystem struct {
	Family OSFamily
	// Raw is the platform identifier as reported by the runtime. Always
	// set, so unknown platforms are never discarded.
	Raw string
}

func (o OperatingSystem) String() string {
	switch o.Family {
	case OSMacOS:
		return "macOS"
	case OSLinux:
		return "Linux"
	case OSWindows:
		return "Windows"
	default:
		return fmt.Sprintf("Unknown (%s)", o.Raw)
	}
}

// ArchFamily classifies the host CPU architecture
type ArchFamily int

const (
	ArchUnknown ArchFamily = iota
	ArchX86_64
	ArchAarch64
)

// Architecture is a tagged variant mirroring OperatingSystem.
type Architecture struct {
	Family ArchFamily
	Raw    string
}

func (a Architecture) String() string {
	switch a.Family {
	case ArchX86_64:
		return "x86_64"
	case ArchAarch64:
		return "aarch64"
	default:
		return fmt.Sprintf("Unknown (%s)", a.Raw)
	}
}

// ToolStatus describes one auxiliary tool from the probe catalog.
// Installed == false implies Path and Version are empty.
type ToolStatus struct {
	Name      string
	Installed bool
	Path      string
	Version   string
}

// Snapshot is an immutable record of detected host capabilities for one
// invocation. Construct it with Detect; never mutate it afterwards.
type Snapshot struct {
	OS           OperatingSystem
	Arch         Architecture
	CPUCores     int
	RustVersion  string // empty means not detected
	CargoVersion string // empty means not detected
	Tools        []ToolStatus
}

// toolCatalog is the fixed set of auxiliary tools the probe checks for.
var toolCatalog = []string{
	"sccache",
	"cargo-nextest",
	"cargo-udeps",
	"cargo-hakari",
	"cargo-watch",
	"cargo-expand",
	"cargo-bloat",
	"lld",
	"mold",
	"zld",
	"clang",
	"gcc",
}

// Detect inspects the running host and returns a fresh snapshot.
func Detect() *Snapshot {
	logger := logging.GetLogger("system")

	snap := &Snapshot{
		OS:           detectOS(runtime.GOOS),
		Arch:         detectArch(runtime.GOARCH),
		CPUCores:     detectCPUCores(),
		RustVersion:  toolVersion("rustc"),
		CargoVersion: toolVersion("cargo"),
		Tools:        detectTools(),
	}

	logger.Debug().
		Stringer("os", snap.OS).
		Stringer("arch", snap.Arch).
		Int("cpuCores", snap.CPUCores).
		Msg("System detection complete")

	return snap
}

func detectOS(goos string) OperatingSystem {
	switch goos {
	case "darwin":
		return OperatingSystem{Family: OSMacOS, Raw: goos}
	case "linux":
		return OperatingSystem{Family: OSLinux, Raw: goos}
	case "windows":
		return OperatingSystem{Family: OSWindows, Raw: goos}
	default:
		return OperatingSystem{Family: OSUnknown, Raw: goos}
	}
}

func detectArch(goarch string) Architecture {
	switch goarch {
	case "amd64":
		return Architecture{Family: ArchX86_64, Raw: goarch}
	case "arm64":
		return Architecture{Family: ArchAarch64, Raw: goarch}
	default:
		return Architecture{Family: ArchUnknown, Raw: goarch}
	}
}

func detectCPUCores() int {
	cores := runtime.NumCPU()
	if cores < 1 {
		cores = 1
	}
	return cores
}

// toolVersion invokes a tool with --version and returns the first line
// of stdout, trimmed. Any failure yields an empty string, never an error.
func toolVersion(tool string) string {
	out, err := exec.Command(tool, "--version").Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line)
}

func detectTools() []ToolStatus {
	tools := make([]ToolStatus, 0, len(toolCatalog))
	for _, name := range toolCatalog {
		path, err := exec.LookPath(name)
		if err != nil {
			tools = append(tools, ToolStatus{Name: name})
			continue
		}
		tools = append(tools, ToolStatus{
			Name:      name,
			Installed: true,
			Path:      path,
			Version:   toolVersion(name),
		})
	}
	return tools
}

// Tool returns the catalog entry for name, or nil if the catalog does
// not include it.
func (s *Snapshot) Tool(name string) *ToolStatus {
	for i := range s.Tools {
		if s.Tools[i].Name == name {
			return &s.Tools[i]
		}
	}
	return nil
}

// IsToolInstalled reports whether the named tool was found on the path.
func (s *Snapshot) IsToolInstalled(name string) bool {
	tool := s.Tool(name)
	return tool != nil && tool.Installed
}

// RecommendedLinker returns the fast linker for the detected platform,
// or empty when no alternative linker is known for it.
func (s *Snapshot) RecommendedLinker() string {
	switch {
	case s.OS.Family == OSMacOS && s.Arch.Family == ArchAarch64:
		return "system"
	case s.OS.Family == OSMacOS:
		return "zld"
	case s.OS.Family == OSLinux:
		return "mold"
	case s.OS.Family == OSWindows:
		return "lld"
	default:
		return ""
	}
}

// SupportsFastLinker reports whether the platform has a known fast linker.
func (s *Snapshot) SupportsFastLinker() bool {
	return s.RecommendedLinker() != ""
}

// PackageManager returns the host's package manager, probing the search
// path on Linux to tell distributions apart. Empty when none is known.
func (s *Snapshot) PackageManager() string {
	switch s.OS.Family {
	case OSMacOS:
		return "brew"
	case OSLinux:
		for _, pm := range []struct{ probe, name string }{
			{"apt-get", "apt"},
			{"yum", "yum"},
			{"pacman", "pacman"},
		} {
			if _, err := exec.LookPath(pm.probe); err == nil {
				return pm.name
			}
		}
		return ""
	case OSWindows:
		return "winget"
	default:
		return ""
	}
}
