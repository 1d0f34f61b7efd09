package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/dirtree/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/dirtree/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/dirtree/internal/version.Date={{.Date}}
)

// String is the one-line version banner
func String() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
