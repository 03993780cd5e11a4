// Package version holds build-time version metadata for the wispc CLI.
package version

// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// String renders the version for the one-line banner cobra prints for
// --version.
func String() string {
	if Version == "" {
		return "dev"
	}
	return Version
}
