// Package version reports which build of monkeys is running.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via ldflags. When empty, the VCS stamp that the Go
// toolchain embeds in the binary is used instead.
var (
	Commit    = ""
	BuildTime = ""
)

const unknown = "unknown"

// Info describes one build.
type Info struct {
	Commit    string
	BuildTime string
	Modified  bool // built from a dirty worktree
}

// Current returns the running build's info.
func Current() Info {
	return resolve(Commit, BuildTime, debug.ReadBuildInfo)
}

// String returns the version string (commit-hash based, no semver)
func String() string {
	return Current().String()
}

func (i Info) String() string {
	commit := i.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if i.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("monkeys dev (commit: %s, built: %s)", commit, i.BuildTime)
}

func resolve(commit, built string, readBuildInfo func() (*debug.BuildInfo, bool)) Info {
	info := Info{Commit: commit, BuildTime: built}

	if bi, ok := readBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}

	if info.Commit == "" {
		info.Commit = unknown
	}
	if info.BuildTime == "" {
		info.BuildTime = unknown
	}
	return info
}
