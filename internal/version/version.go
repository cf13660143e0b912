// Package version provides version information for rowswipe.
package version

// Version is the release version, set at build time with -ldflags.
var Version = "development"

// Commit is the git commit hash, set at build time with -ldflags.
var Commit = "unknown"

// String returns the version, with the commit appended when known.
func String() string {
	if Commit != "unknown" && Commit != "" {
		return Version + "+" + Commit
	}
	return Version
}
