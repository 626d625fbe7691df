package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectOS(t *testing.T) {
	tests := []struct {
		goos   string
		family OSFamily
		str    string
	}{
		{"darwin", OSMacOS, "macOS"},
		{"linux", OSLinux, "Linux"},
		{"windows", OSWindows, "Windows"},
		{"freebsd", OSUnknown, "Unknown (freebsd)"},
		{"plan9", OSUnknown, "Unknown (plan9)"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			os := detectOS(tt.goos)
			assert.Equal(t, tt.family, os.Family)
			assert.Equal(t, tt.goos, os.Raw, "raw identifier must be preserved")
			assert.Equal(t, tt.str, os.String())
		})
	}
}

func TestDetectArch(t *testing.T) {
	tests := []struct {
		goarch string
		family ArchFamily
		str    string
	}{
		{"amd64", ArchX86_64, "x86_64"},
		{"arm64", ArchAarch64, "aarch64"},
		{"riscv64", ArchUnknown, "Unknown (riscv64)"},
	}

	for _, tt := range tests {
		t.Run(tt.goarch, func(t *testing.T) {
			arch := detectArch(tt.goarch)
			assert.Equal(t, tt.family, arch.Family)
			assert.Equal(t, tt.goarch, arch.Raw)
			assert.Equal(t, tt.str, arch.String())
		})
	}
}

func TestDetectCPUCores(t *testing.T) {
	assert.GreaterOrEqual(t, detectCPUCores(), 1)
}

func TestDetect(t *testing.T) {
	snap := Detect()
	require.NotNil(t, snap)

	assert.GreaterOrEqual(t, snap.CPUCores, 1)
	assert.Len(t, snap.Tools, len(toolCatalog))

	// Catalog order and the installed invariant
	for i, tool := range snap.Tools {
		assert.Equal(t, toolCatalog[i], tool.Name)
		if !tool.Installed {
			assert.Empty(t, tool.Path, "%s: path must be absent when not installed", tool.Name)
			assert.Empty(t, tool.Version, "%s: version must be absent when not installed", tool.Name)
		}
	}
}

func TestRecommendedLinker(t *testing.T) {
	tests := []struct {
		name   string
		os     OSFamily
		arch   ArchFamily
		linker string
	}{
		{"macos arm", OSMacOS, ArchAarch64, "system"},
		{"macos intel", OSMacOS, ArchX86_64, "zld"},
		{"linux x86_64", OSLinux, ArchX86_64, "mold"},
		{"linux arm", OSLinux, ArchAarch64, "mold"},
		{"windows", OSWindows, ArchX86_64, "lld"},
		{"unknown", OSUnknown, ArchX86_64, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &Snapshot{
				OS:   OperatingSystem{Family: tt.os},
				Arch: Architecture{Family: tt.arch},
			}
			assert.Equal(t, tt.linker, snap.RecommendedLinker())
			assert.Equal(t, tt.linker != "", snap.SupportsFastLinker())
		})
	}
}

func TestToolLookup(t *testing.T) {
	snap := &Snapshot{
		Tools: []ToolStatus{
			{Name: "mold", Installed: true, Path: "/usr/bin/mold", Version: "mold 2.0.0"},
			{Name: "zld"},
		},
	}

	mold := snap.Tool("mold")
	require.NotNil(t, mold)
	assert.Equal(t, "/usr/bin/mold", mold.Path)
	assert.True(t, snap.IsToolInstalled("mold"))

	assert.False(t, snap.IsToolInstalled("zld"))
	assert.Nil(t, snap.Tool("sccache"))
	assert.False(t, snap.IsToolInstalled("sccache"))
}

func TestToolVersionMissingTool(t *testing.T) {
	assert.Empty(t, toolVersion("definitely-not-a-real-tool-name"))
}
