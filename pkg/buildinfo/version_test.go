package buildinfo

import (
	"strings"
	"testing"
)

func TestCacheScope(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	defer func() { Version, Commit = oldVersion, oldCommit }()

	Version, Commit = "v1.0.0", "0123456789abcdef0123"
	if got, want := CacheScope(), "v1.0.0+0123456789ab:"; got != want {
		t.Errorf("CacheScope() = %q, want %q", got, want)
	}

	Commit = "none"
	if got, want := CacheScope(), "v1.0.0+none:"; got != want {
		t.Errorf("CacheScope() = %q, want %q", got, want)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), Version) {
		t.Errorf("Template() = %q, missing version %q", Template(), Version)
	}
}

func TestCurrent(t *testing.T) {
	old := Commit
	defer func() { Commit = old }()

	Commit = "abc"
	if got := Current(); got.Commit != "abc" || got.Version != Version {
		t.Errorf("Current() = %+v", got)
	}
}
