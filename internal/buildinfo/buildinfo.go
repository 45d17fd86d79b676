// Package buildinfo carries the version stamped into the pertpath binary.
package buildinfo

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/GuilhermmeDev/pert-path-visualizer/internal/buildinfo.Version=...".
var (
	// Version is the release tag or git describe output.
	Version = "dev"
	// Commit is the short commit SHA.
	Commit = "unknown"
	// Date is the UTC build time, RFC 3339.
	Date = "unknown"
)

// Info is the JSON form printed by `pertpath version --json`.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns the stamped build information.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String formats the info on one line, e.g.
// "pertpath v1.2.0 (commit: a1b2c3d, built: 2026-02-17T10:00:00Z)".
func (i Info) String() string {
	return fmt.Sprintf("pertpath v%s (commit: %s, built: %s)", i.Version, i.Commit, i.Date)
}
