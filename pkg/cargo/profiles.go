package cargo

// ProfileMarker is the substring the merger scans for to decide whether
// a profile block has already been appended to a manifest.
const ProfileMarker = "[profile.dev]"

// AppendHeader precedes the profile block when it is appended to an
// existing Cargo.toml.
const AppendHeader = "# Optimized build profiles added by atlas\n"

// profilesTOML is constant across all platforms and configurations.
const profilesTOML = `# Optimized build profiles for better performance and faster compilation
[profile.dev]
# Enable incremental compilation for faster rebuilds
incremental = true
# Optimize for compilation speed in development
opt-level = 0
# Enable debug info for better debugging experience
debug = true
# Reduce binary size in development
strip = false
# Use more codegen units for faster parallel compilation
codegen-units = 512
# Enable overflow checks in development
overflow-checks = true
# Enable debug assertions
debug-assertions = true
# Faster compilation with less optimization
lto = false
# Enable panic unwinding for better error messages
panic = "unwind"

[profile.dev.package."*"]
# Optimize dependencies even in dev mode for better performance
opt-level = 3
# Disable debug info for dependencies to speed up compilation
debug = false

[profile.release]
# Maximum optimization for production builds
opt-level = 3
# Disable debug info in release builds
debug = false
# Strip symbols to reduce binary size
strip = "symbols"
# Use single codegen unit for better optimization
codegen-units = 1
# Enable Link Time Optimization for better performance
lto = "thin"
# Enable overflow checks even in release (security)
overflow-checks = true
# Disable debug assertions in release
debug-assertions = false
# Abort on panic for smaller binary size
panic = "abort"

[profile.release-with-debug]
# Release profile with debug info for profiling
inherits = "release"
debug = true
strip = false

[profile.bench]
# Optimized profile for benchmarking
inherits = "release"
debug = true
lto = true

[profile.test]
# Optimized profile for testing
inherits = "dev"
opt-level = 1
# Faster test compilation
codegen-units = 512
`

// GenerateProfiles returns the build-profile declarations appended to a
// project's Cargo.toml. The content is independent of the snapshot.
func GenerateProfiles() string {
	return profilesTOML
}
