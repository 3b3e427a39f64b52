package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mmcf/pkg/buildinfo"
	"github.com/matzehuels/mmcf/pkg/cache"
)

func TestRootCommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()

	want := []string{"convert", "inspect", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootVersion(t *testing.T) {
	isolate(t)
	out, err := execute(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, buildinfo.Version) {
		t.Errorf("version output %q should contain %q", out, buildinfo.Version)
	}
}

func TestCachePath(t *testing.T) {
	dir := isolate(t)
	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "cache", appName); strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestCacheClear(t *testing.T) {
	dir := isolate(t)
	fc, err := cache.NewFileCache(filepath.Join(dir, "cache", appName))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"network:a", "artifact:b"} {
		if err := fc.Set(ctx, key, []byte("x"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, ok, _ := fc.Get(ctx, "network:a"); ok {
		t.Error("entry survived cache clear")
	}
}

func TestConvertPopulatesCache(t *testing.T) {
	dir := isolate(t)
	input := writeInstance(t, dir, "net.json", sample)
	if _, err := execute(t, "convert", input, "-o", filepath.Join(dir, "net.lp")); err != nil {
		t.Fatal(err)
	}

	fc, err := cache.NewFileCache(filepath.Join(dir, "cache", appName))
	if err != nil {
		t.Fatal(err)
	}
	n, err := fc.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("cleared %d entries, want network and artifact", n)
	}
}

func TestCacheInfo(t *testing.T) {
	dir := isolate(t)
	out, err := execute(t, "cache", "info")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "entries 0\n") {
		t.Errorf("empty cache info = %q", out)
	}

	fc, err := cache.NewFileCache(filepath.Join(dir, "cache", appName))
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "network:a", []byte("x"), time.Hour); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "cache", "info")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "entries 1\n") {
		t.Errorf("cache info = %q, want one entry", out)
	}
}

func TestCacheClearExpired(t *testing.T) {
	dir := isolate(t)
	fc, err := cache.NewFileCache(filepath.Join(dir, "cache", appName))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := fc.Set(ctx, "network:a", []byte("x"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "cache", "clear", "--expired"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := fc.Get(ctx, "network:a"); !ok {
		t.Error("live entry removed by clear --expired")
	}
}
