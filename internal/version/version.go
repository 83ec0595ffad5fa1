// Package version reports how the chromaset binary was built.
// Release builds set the variables with ldflags; other builds fall back to
// the VCS stamp the Go toolchain embeds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const unknown = "unknown"

// shortCommitLen is how much of the commit hash String prints.
const shortCommitLen = 8

var (
	// Version is set with -ldflags "-X github.com/jmylchreest/chromaset/internal/version.Version=x.y.z".
	Version = "dev"

	// Commit is the git revision, set with -X ...version.Commit=$(git rev-parse HEAD).
	Commit = unknown

	// Date is the RFC3339 build time, set with -X ...version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ).
	Date = unknown

	// GoVersion is the Go version used to build the binary.
	GoVersion = runtime.Version()

	readBuildInfo = debug.ReadBuildInfo
)

// Info is the build metadata printed by `chromaset version`.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns the build metadata. Commit and Date not set by ldflags
// are taken from the embedded VCS settings when present.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == unknown && s.Value != "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == unknown && s.Value != "" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// ShortCommit returns the first eight characters of the commit, or all of
// it when shorter.
func (i Info) ShortCommit() string {
	if len(i.Commit) > shortCommitLen {
		return i.Commit[:shortCommitLen]
	}
	return i.Commit
}

// String returns a human-readable version line.
func String() string {
	info := GetInfo()
	if info.Commit == unknown || info.Date == unknown {
		return fmt.Sprintf("chromaset version %s (%s, %s)", info.Version, info.GoVersion, info.Platform)
	}

	commit := info.ShortCommit()
	if info.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("chromaset version %s (commit: %s, built: %s, %s, %s)",
		info.Version, commit, info.Date, info.GoVersion, info.Platform)
}

// Short returns the bare version for cobra's --version flag.
func Short() string {
	return Version
}
