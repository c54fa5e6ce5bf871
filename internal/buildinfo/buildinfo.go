// Package buildinfo carries release metadata injected at link time.
package buildinfo

// These values are set via ldflags for release binaries and stay empty for
// local builds, where the version command falls back to debug.ReadBuildInfo.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
