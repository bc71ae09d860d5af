// Package buildinfo carries version metadata injected at build time.
package buildinfo

// Set via -ldflags "-X github.com/tallyup-dev/tallyup/internal/buildinfo.Version=..." at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
