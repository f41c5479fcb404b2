// Package version carries build-time version information.
package version

import "fmt"

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/machlab/marchexec/pkg/version.Version=1.0.0"
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns the human-readable version line printed by --version.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
