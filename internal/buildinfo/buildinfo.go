// Package buildinfo identifies the running firmware or host build. The
// variables are stamped at link time, e.g.
//
//	-ldflags "-X usdr/internal/buildinfo.Version=v1.1 -X usdr/internal/buildinfo.Commit=3f2a9c1"
package buildinfo

import "strings"

var (
	// Version is the release tag, "dev" for untagged builds.
	Version = "dev"
	// Commit is the source revision.
	Commit = ""
	// Date is the build date.
	Date = ""
)

// maxShort is what fits the intro screen's version line.
const maxShort = 24

// Short returns the release tag, else the abbreviated commit, else "dev".
// It labels the intro screen and the host window title.
func Short() string {
	v := strings.TrimSpace(Version)
	if v == "" || v == "dev" {
		v = "dev"
		if c := strings.TrimSpace(Commit); c != "" && c != "unknown" {
			v = "dev-" + abbrev(c)
		}
	}
	if len(v) > maxShort {
		v = v[:maxShort]
	}
	return v
}

// String is the long form for --version and the start-up log line, e.g.
// "v1.1 (3f2a9c1, 2026-10-01)".
func String() string {
	var extra []string
	if c := strings.TrimSpace(Commit); c != "" && c != "unknown" {
		extra = append(extra, abbrev(c))
	}
	if d := strings.TrimSpace(Date); d != "" && d != "unknown" {
		extra = append(extra, d)
	}
	v := strings.TrimSpace(Version)
	if v == "" {
		v = "dev"
	}
	if len(extra) == 0 {
		return v
	}
	return v + " (" + strings.Join(extra, ", ") + ")"
}

func abbrev(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
