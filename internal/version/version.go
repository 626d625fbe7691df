package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/atlas/internal/version.Version={{.Version}}
	Commit  = "none"    // Set by goreleaser: -X github.com/arthur-debert/atlas/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/atlas/internal/version.Date={{.Date}}
)
