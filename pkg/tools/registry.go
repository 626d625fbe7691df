// Package tools installs the auxiliary build tools atlas recommends.
//
// Installation routines are held in a static registry keyed by tool
// name. Looking up an unknown name is a tool-not-found error, never a
// default branch.
package tools

import (
	"context"
	"sort"

	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/system"
)

// InstallFunc installs one tool on the probed platform.
type InstallFunc func(ctx context.Context, ins *Installer, snap *system.Snapshot) error

// registry maps tool names to their installation strategies. cargo
// subcommands all install the same way; linkers and sccache need
// platform-specific handling.
var registry = map[string]InstallFunc{
	"sccache":       installSccache,
	"cargo-nextest": cargoInstall("cargo-nextest"),
	"cargo-udeps":   cargoInstall("cargo-udeps"),
	"cargo-hakari":  cargoInstall("cargo-hakari"),
	"cargo-watch":   cargoInstall("cargo-watch"),
	"cargo-expand":  cargoInstall("cargo-expand"),
	"cargo-bloat":   cargoInstall("cargo-bloat"),
	"mold":          installMold,
	"zld":           installZld,
	"lld":           installLld,
}

// All returns every installable tool name in a stable order.
func All() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether the registry has an installation strategy for
// the named tool.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// lookup returns the strategy for a tool name.
func lookup(name string) (InstallFunc, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, errors.Newf(errors.ErrToolNotFound, "unknown tool: %s", name)
	}
	return fn, nil
}

func cargoInstall(tool string) InstallFunc {
	return func(ctx context.Context, ins *Installer, snap *system.Snapshot) error {
		return ins.run(ctx, "cargo", "install", tool, "--locked")
	}
}

func installSccache(ctx context.Context, ins *Installer, snap *system.Snapshot) error {
	switch snap.OS.Family {
	case system.OSMacOS:
		return ins.run(ctx, "brew", "install", "sccache")
	case system.OSLinux:
		switch snap.PackageManager() {
		case "apt":
			if err := ins.run(ctx, "sudo", "apt-get", "update"); err == nil {
				return ins.run(ctx, "sudo", "apt-get", "install", "-y", "sccache")
			}
			return ins.run(ctx, "cargo", "install", "sccache", "--locked")
		case "yum":
			if err := ins.run(ctx, "sudo", "yum", "install", "-y", "sccache"); err == nil {
				return nil
			}
			return ins.run(ctx, "cargo", "install", "sccache", "--locked")
		case "pacman":
			if err := ins.run(ctx, "sudo", "pacman", "-S", "--noconfirm", "sccache"); err == nil {
				return nil
			}
			return ins.run(ctx, "cargo", "install", "sccache", "--locked")
		default:
			return ins.run(ctx, "cargo", "install", "sccache", "--locked")
		}
	case system.OSWindows:
		if err := ins.run(ctx, "winget", "install", "Mozilla.sccache"); err == nil {
			return nil
		}
		return ins.run(ctx, "cargo", "install", "sccache", "--locked")
	default:
		return ins.run(ctx, "cargo", "install", "sccache", "--locked")
	}
}

func installMold(ctx context.Context, ins *Installer, snap *system.Snapshot) error {
	if snap.OS.Family != system.OSLinux {
		return errors.New(errors.ErrUnsupportedPlatform, "mold is only available on Linux")
	}
	switch snap.PackageManager() {
	case "apt":
		return ins.run(ctx, "sudo", "apt-get", "install", "-y", "mold")
	case "yum":
		return ins.run(ctx, "sudo", "yum", "install", "-y", "mold")
	case "pacman":
		return ins.run(ctx, "sudo", "pacman", "-S", "--noconfirm", "mold")
	default:
		return errors.New(errors.ErrUnsupportedPlatform, "no supported package manager found for mold installation")
	}
}

func installZld(ctx context.Context, ins *Installer, snap *system.Snapshot) error {
	if snap.OS.Family != system.OSMacOS {
		return errors.New(errors.ErrUnsupportedPlatform, "zld is only available on macOS")
	}
	return ins.run(ctx, "brew", "install", "zld")
}

func installLld(ctx context.Context, ins *Installer, snap *system.Snapshot) error {
	switch snap.OS.Family {
	case system.OSMacOS:
		return ins.run(ctx, "brew", "install", "llvm")
	case system.OSLinux:
		switch snap.PackageManager() {
		case "apt":
			return ins.run(ctx, "sudo", "apt-get", "install", "-y", "lld")
		case "yum":
			return ins.run(ctx, "sudo", "yum", "install", "-y", "lld")
		case "pacman":
			return ins.run(ctx, "sudo", "pacman", "-S", "--noconfirm", "lld")
		default:
			return errors.New(errors.ErrUnsupportedPlatform, "no supported package manager found for lld installation")
		}
	case system.OSWindows:
		return ins.run(ctx, "winget", "install", "LLVM.LLVM")
	default:
		return errors.New(errors.ErrUnsupportedPlatform, "lld installation is not supported on this platform")
	}
}
