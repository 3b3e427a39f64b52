package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestXDGPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name  string
		env   string
		value string
		get   func() (string, error)
		want  string
	}{
		{"cache default", "XDG_CACHE_HOME", "", cacheDir, filepath.Join(home, ".cache", appName)},
		{"cache xdg", "XDG_CACHE_HOME", "/tmp/xdg-cache", cacheDir, filepath.Join("/tmp/xdg-cache", appName)},
		{"config default", "XDG_CONFIG_HOME", "", defaultConfigPath, filepath.Join(home, ".config", appName, "config.toml")},
		{"config xdg", "XDG_CONFIG_HOME", "/tmp/xdg-config", defaultConfigPath, filepath.Join("/tmp/xdg-config", appName, "config.toml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			got, err := tt.get()
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCacheNoCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c, err := newCache(true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)); !os.IsNotExist(err) {
		t.Error("--no-cache should not create the cache directory")
	}
	if _, ok, _ := c.Get(t.Context(), "anything"); ok {
		t.Error("null cache returned a hit")
	}
}
