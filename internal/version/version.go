// Package version holds build metadata for naveeka, injected via ldflags.
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "0.0.0-dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build metadata as a single banner line.
func String() string {
	return fmt.Sprintf("naveeka %s (commit %s, built %s)", Version, Commit, Date)
}
