// Package cargo synthesizes cargo configuration artifacts from a system
// snapshot and a validated configuration.
//
// Synthesis is a pure function: identical inputs always produce
// byte-identical output. That property is what makes the project merge
// idempotent and the generators trivially testable.
package cargo

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/atlas/pkg/config"
	"github.com/arthur-debert/atlas/pkg/system"
)

// Artifact is the pair of generated documents: the .cargo/config.toml
// content and the profile block appended to Cargo.toml.
type Artifact struct {
	ConfigTOML   string
	ProfilesTOML string
}

// Synthesize produces both artifacts for the given configuration and
// snapshot.
func Synthesize(cfg *config.Config, snap *system.Snapshot) *Artifact {
	return &Artifact{
		ConfigTOML:   GenerateConfig(cfg, snap),
		ProfilesTOML: GenerateProfiles(),
	}
}

// GenerateConfig produces the content of .cargo/config.toml. Sections
// are emitted in fixed order: build parallelism, environment, the
// platform-conditional linker block, then registry and network settings.
func GenerateConfig(cfg *config.Config, snap *system.Snapshot) string {
	var b strings.Builder

	b.WriteString("# Cargo Configuration for Optimized Builds\n")
	b.WriteString("# Generated by atlas\n\n")

	b.WriteString("[build]\n")
	fmt.Fprintf(&b, "jobs = %d\n", cfg.EffectiveParallelJobs(snap))
	b.WriteString("target-dir = \"target\"\n")
	b.WriteString("pipelining = true\n\n")

	b.WriteString("[env]\n")
	if cfg.Build.SeparateAnalyzerTarget {
		b.WriteString("CARGO_TARGET_DIR = { value = \"target/rust-analyzer\", condition = \"cfg(rust_analyzer)\" }\n")
	}
	incremental := "0"
	if cfg.Build.Incremental {
		incremental = "1"
	}
	fmt.Fprintf(&b, "CARGO_INCREMENTAL = %q\n", incremental)
	b.WriteString("CARGO_PROFILE_DEV_INCREMENTAL = \"true\"\n")
	b.WriteString("CARGO_BUILD_CACHE = \"1\"\n")
	b.WriteString("CARGO_NET_RETRY = \"3\"\n")
	b.WriteString("CARGO_NET_GIT_FETCH_WITH_CLI = \"true\"\n\n")

	if cfg.Build.UseFastLinker {
		writeTargetBlock(&b, cfg, snap)
	}

	b.WriteString("[registries.crates-io]\n")
	b.WriteString("protocol = \"sparse\"\n\n")

	b.WriteString("[net]\n")
	b.WriteString("retry = 3\n")
	b.WriteString("git-fetch-with-cli = true\n")

	return b.String()
}

// writeTargetBlock emits the per-target linker/flags section selected by
// the (os, arch) decision table. Platforms without a known fast linker
// get no block at all.
func writeTargetBlock(b *strings.Builder, cfg *config.Config, snap *system.Snapshot) {
	if !snap.SupportsFastLinker() {
		return
	}

	switch {
	case snap.OS.Family == system.OSMacOS && snap.Arch.Family == system.ArchAarch64:
		// Apple silicon: the system linker is already fast, so only
		// tune codegen and strip dead code.
		b.WriteString("[target.aarch64-apple-darwin]\n")
		b.WriteString("rustflags = [\n")
		fmt.Fprintf(b, "    \"-C\", \"target-cpu=%s\",\n", cfg.Build.TargetCPU)
		b.WriteString("    \"-C\", \"codegen-units=16\",\n")
		b.WriteString("    \"-C\", \"link-arg=-Wl,-dead_strip\",\n")
		b.WriteString("    \"-C\", \"link-arg=-Wl,-no_compact_unwind\",\n")
		b.WriteString("]\n\n")
	case snap.OS.Family == system.OSMacOS:
		b.WriteString("[target.x86_64-apple-darwin]\n")
		b.WriteString("linker = \"clang\"\n")
		b.WriteString("rustflags = [\n")
		b.WriteString("    \"-C\", \"link-arg=-fuse-ld=/usr/local/bin/zld\",\n")
		fmt.Fprintf(b, "    \"-C\", \"target-cpu=%s\",\n", cfg.Build.TargetCPU)
		b.WriteString("    \"-C\", \"codegen-units=1\",\n")
		b.WriteString("]\n\n")
	case snap.OS.Family == system.OSLinux:
		b.WriteString("[target.x86_64-unknown-linux-gnu]\n")
		b.WriteString("linker = \"clang\"\n")
		b.WriteString("rustflags = [\n")
		b.WriteString("    \"-C\", \"link-arg=-fuse-ld=mold\",\n")
		fmt.Fprintf(b, "    \"-C\", \"target-cpu=%s\",\n", cfg.Build.TargetCPU)
		b.WriteString("    \"-C\", \"codegen-units=1\",\n")
		b.WriteString("]\n\n")
	}
}
