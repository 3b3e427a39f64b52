// Package buildinfo carries the version stamped into the binary at link
// time:
//
//	go build -ldflags "-X github.com/matzehuels/mmcf/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/mmcf/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/mmcf/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build stamp as reported by the HTTP health endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"built"`
}

// Current returns the stamp of the running binary.
func Current() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// CacheScope prefixes cache keys so that entries written by one build are
// never served to another.
func CacheScope() string {
	commit := Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return Version + "+" + commit + ":"
}
