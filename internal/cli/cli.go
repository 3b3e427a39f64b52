package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mmcf/pkg/buildinfo"
	"github.com/matzehuels/mmcf/pkg/cache"
	"github.com/matzehuels/mmcf/pkg/pipeline"
)

const appName = "mmcf"

// Levels selectable from main.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI is the state shared by every subcommand.
type CLI struct {
	Logger *log.Logger

	// Config is loaded by the root command before any subcommand runs.
	Config Config

	configPath string
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// newRunner returns a pipeline runner over the file cache, or over no cache
// at all when noCache is set. Keys are scoped to the running build and the
// configured cache_ttl overrides the runner's default.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	r := pipeline.NewRunner(store, keyer, c.Logger)
	if ttl := time.Duration(c.Config.CacheTTL); ttl > 0 {
		r.TTL = ttl
	}
	return r, nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		// No home directory: run uncached rather than fail.
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// xdgDir resolves $env/mmcf, falling back to ~/fallback/mmcf.
func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}

func cacheDir() (string, error) { return xdgDir("XDG_CACHE_HOME", ".cache") }

func defaultConfigPath() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
