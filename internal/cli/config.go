package cli

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	errs "github.com/matzehuels/mmcf/pkg/errors"
	"github.com/matzehuels/mmcf/pkg/pipeline"
)

// Config holds defaults read from the TOML config file:
//
//	type = "mps"
//	model = "penalized"
//	policy = "fail"
//	demand_scale = 1.5
//	writer = "native"
//	cache_ttl = "24h"
//	addr = ":8080"
//
// A zero demand_scale is the same as leaving the key out.
type Config struct {
	Type        string   `toml:"type"`
	Model       string   `toml:"model"`
	Policy      string   `toml:"policy"`
	DemandScale float64  `toml:"demand_scale"`
	Writer      string   `toml:"writer"`
	CacheTTL    Duration `toml:"cache_ttl"`
	Addr        string   `toml:"addr"`
}

// Duration is a time.Duration written as a string such as "36h".
type Duration time.Duration

// UnmarshalText parses a duration with time.ParseDuration.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// LoadConfig reads the config file at path. A missing file yields the zero
// Config unless required is set. Unknown keys are rejected so that typos do
// not silently fall back to defaults.
func LoadConfig(path string, required bool) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if !required {
				return Config{}, nil
			}
			return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// applyTo copies config values into opts for every flag the user did not
// set explicitly.
func (cfg Config) applyTo(flags *pflag.FlagSet, opts *pipeline.Options) {
	set := func(flag, value string, dst *string) {
		if value != "" && !flags.Changed(flag) {
			*dst = value
		}
	}
	set("type", cfg.Type, &opts.Format)
	set("model", cfg.Model, &opts.Model)
	set("policy", cfg.Policy, &opts.Policy)
	set("writer", cfg.Writer, &opts.Writer)
	if cfg.DemandScale != 0 && !flags.Changed("demand-scale") {
		opts.DemandScale = cfg.DemandScale
	}
}
