// Package pipeline converts MMCF instances into solver input.
//
// This package implements the load → normalize → export pipeline shared by
// the CLI commands and the HTTP server, so both produce byte-identical
// artifacts for the same input and options.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: decode the JSON instance
//  2. Normalize: validate, aggregate endpoints, index, filter valid arcs
//  3. Export: build the LP model and encode it, or encode the network itself
//
// Normalized networks and exported artifacts are cached separately, keyed by
// the hash of the input document and the options each stage depends on.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, input, pipeline.Options{
//	    Format: pipeline.FormatLP,
//	    Model:  pipeline.ModelMMCF,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("out.lp", result.Artifact, 0o644)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mmcf/pkg/cache"
	errs "github.com/matzehuels/mmcf/pkg/errors"
	"github.com/matzehuels/mmcf/pkg/lpformat"
	"github.com/matzehuels/mmcf/pkg/model"
	"github.com/matzehuels/mmcf/pkg/network"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// Output formats.
const (
	FormatLP      = lpformat.FormatLP
	FormatMPS     = lpformat.FormatMPS
	FormatNetwork = "network"
	FormatJSON    = "json"
)

// Model formulations.
const (
	ModelMMCF      = "mmcf"
	ModelPenalized = "penalized"
)

const (
	DefaultFormat      = FormatLP
	DefaultModel       = ModelMMCF
	DefaultPolicy      = string(network.PolicyCap)
	DefaultWriter      = lpformat.WriterNative
	DefaultName        = "mmcf"
	DefaultDemandScale = 1.0
)

// Formats lists the accepted output formats.
var Formats = []string{FormatLP, FormatMPS, FormatNetwork, FormatJSON}

// Models lists the accepted model formulations.
var Models = []string{ModelMMCF, ModelPenalized}

// Policies lists the accepted imbalance policies.
var Policies = []string{string(network.PolicyCap), string(network.PolicyFail)}

// Extension returns the file extension used for format, without the dot.
// JSON output gets a compound extension so it never replaces its input.
func Extension(format string) string {
	if format == FormatJSON {
		return "normalized.json"
	}
	return format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a conversion.
// The JSON names match the config file keys and the server's query parameters.
type Options struct {
	Format      string  `json:"type,omitempty"`
	Model       string  `json:"model,omitempty"`
	Policy      string  `json:"policy,omitempty"`
	// DemandScale 0 means unset and becomes DefaultDemandScale. Callers
	// taking an explicit value reject 0 themselves.
	DemandScale float64 `json:"demand_scale,omitempty"`
	Writer      string  `json:"writer,omitempty"`
	Name        string  `json:"name,omitempty"`
	Refresh     bool    `json:"refresh,omitempty"`

	// Runtime options (not serialized). A nil Logger uses the runner's.
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Network is the normalized network.
	Network *network.Network

	// Imbalances lists the commodities whose supply and demand were capped.
	Imbalances []network.Imbalance

	// Model is the built model. It is nil for network and json output and
	// when the artifact came from the cache.
	Model *model.Model

	// Artifact is the encoded output.
	Artifact []byte

	// InputHash is the SHA-256 of the input document.
	InputHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Network       NetworkStats
	Model         model.Stats
	LoadTime      time.Duration
	NormalizeTime time.Duration
	ExportTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	NetworkHit  bool
	ArtifactHit bool
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks every option.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := errs.ValidateChoice(errs.ErrCodeInvalidFormat, "type", o.Format, Formats...); err != nil {
		return err
	}
	if err := errs.ValidateChoice(errs.ErrCodeInvalidModel, "model", o.Model, Models...); err != nil {
		return err
	}
	if err := errs.ValidateChoice(errs.ErrCodeInvalidPolicy, "policy", o.Policy, Policies...); err != nil {
		return err
	}
	if err := errs.ValidatePositive("demand_scale", o.DemandScale); err != nil {
		return err
	}
	if o.NeedsEncoder() {
		if _, err := lpformat.Lookup(o.Writer, o.Format); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset options.
func (o *Options) SetDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.Policy == "" {
		o.Policy = DefaultPolicy
	}
	if o.DemandScale == 0 {
		o.DemandScale = DefaultDemandScale
	}
	if o.Writer == "" {
		o.Writer = DefaultWriter
	}
	if o.Name == "" {
		o.Name = DefaultName
	}
}

// NeedsEncoder reports whether the format goes through a model encoder.
func (o *Options) NeedsEncoder() bool {
	return o.Format == FormatLP || o.Format == FormatMPS
}

// NetworkKeyOpts returns cache key options for normalization.
func (o *Options) NetworkKeyOpts() cache.NetworkKeyOpts {
	return cache.NetworkKeyOpts{Policy: o.Policy}
}

// ArtifactKeyOpts returns cache key options for the exported artifact.
// Model options are left out for formats that do not build a model.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: o.Format, Policy: o.Policy}
	if o.NeedsEncoder() {
		k.Model = o.Model
		k.DemandScale = o.DemandScale
		k.Writer = o.Writer
		k.Name = o.Name
	}
	return k
}
