package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mmcf/pkg/cache"
	mio "github.com/matzehuels/mmcf/pkg/io"
	"github.com/matzehuels/mmcf/pkg/model"
	"github.com/matzehuels/mmcf/pkg/network"
	"github.com/matzehuels/mmcf/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// cachedNetwork is the cache entry of the normalize stage. Imbalances are
// stored alongside the instance because re-aggregating a balanced instance
// reports none.
type cachedNetwork struct {
	Instance   json.RawMessage     `json:"instance"`
	Imbalances []network.Imbalance `json:"imbalances,omitempty"`
}

// cachedArtifact is the cache entry of the export stage.
type cachedArtifact struct {
	Data  []byte      `json:"data"`
	Model model.Stats `json:"model"`
}

// Execute runs the complete load → normalize → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	result := &Result{InputHash: cache.Hash(input)}

	// Stages 1 and 2: Load and Normalize
	net, imbalances, hit, err := r.normalize(ctx, input, result, opts)
	if err != nil {
		return nil, err
	}
	result.Network = net
	result.Imbalances = imbalances
	result.CacheInfo.NetworkHit = hit
	result.Stats.Network = Summarize(net)
	result.Stats.Network.Imbalanced = len(imbalances)
	logImbalances(logger, imbalances)

	logger.Info("normalized network",
		"nodes", net.NodeCount(),
		"arcs", net.ArcCount(),
		"valid_arcs", result.Stats.Network.ValidArcs,
		"cached", hit)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Export
	start := time.Now()
	artifact, m, stats, hit, err := r.ExportWithCacheInfo(ctx, net, result.InputHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.Model = m
	result.Stats.Model = stats
	result.Stats.ExportTime = time.Since(start)
	result.CacheInfo.ArtifactHit = hit

	logger.Info("exported",
		"type", opts.Format,
		"bytes", len(artifact),
		"duration", result.Stats.ExportTime,
		"cached", hit)

	return result, nil
}

// Normalize loads and normalizes input with caching.
func (r *Runner) Normalize(ctx context.Context, input []byte, opts Options) (*network.Network, []network.Imbalance, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	result := &Result{InputHash: cache.Hash(input)}
	net, imbalances, _, err := r.normalize(ctx, input, result, opts)
	if err != nil {
		return nil, nil, err
	}
	logImbalances(r.logger(opts), imbalances)
	return net, imbalances, nil
}

func (r *Runner) normalize(ctx context.Context, input []byte, result *Result, opts Options) (*network.Network, []network.Imbalance, bool, error) {
	key := r.Keyer.NetworkKey(result.InputHash, opts.NetworkKeyOpts())
	hooks := observability.Pipeline()

	if !opts.Refresh {
		if net, imbalances, ok := r.cachedNetwork(ctx, key, opts); ok {
			return net, imbalances, true, nil
		}
	}

	hooks.OnLoadStart(ctx, len(input))
	start := time.Now()
	inst, err := Load(input)
	result.Stats.LoadTime = time.Since(start)
	hooks.OnLoadComplete(ctx, inst.Nodes, len(inst.Arcs), result.Stats.LoadTime, err)
	if err != nil {
		return nil, nil, false, err
	}
	r.logger(opts).Debugf("loaded %d nodes, %d arcs, %d commodities, %d demand entries",
		inst.Nodes, len(inst.Arcs), inst.Commodities, len(inst.Demands))

	hooks.OnNormalizeStart(ctx, opts.Policy)
	start = time.Now()
	net, err := Normalize(inst, opts)
	result.Stats.NormalizeTime = time.Since(start)
	if err != nil {
		hooks.OnNormalizeComplete(ctx, opts.Policy, 0, 0, result.Stats.NormalizeTime, err)
		return nil, nil, false, err
	}
	hooks.OnNormalizeComplete(ctx, opts.Policy, net.NodeCount(), net.ArcCount(), result.Stats.NormalizeTime, nil)

	var buf bytes.Buffer
	if err := mio.WriteInstance(net.Instance(), &buf); err == nil {
		entry, err := json.Marshal(cachedNetwork{Instance: buf.Bytes(), Imbalances: net.Imbalances()})
		if err == nil && r.Cache.Set(ctx, key, entry, r.TTL) == nil {
			observability.Cache().OnCacheSet(ctx, "network", len(entry))
		}
	}
	return net, net.Imbalances(), false, nil
}

func (r *Runner) cachedNetwork(ctx context.Context, key string, opts Options) (*network.Network, []network.Imbalance, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "network")
		return nil, nil, false
	}
	var entry cachedNetwork
	if err := json.Unmarshal(data, &entry); err != nil {
		r.logger(opts).Debug("ignoring unreadable network cache entry", "err", err)
		return nil, nil, false
	}
	inst, err := mio.ReadInstance(bytes.NewReader(entry.Instance))
	if err != nil {
		r.logger(opts).Debug("ignoring unreadable network cache entry", "err", err)
		return nil, nil, false
	}
	net, err := Normalize(inst, opts)
	if err != nil {
		return nil, nil, false
	}
	observability.Cache().OnCacheHit(ctx, "network")
	return net, entry.Imbalances, true
}

// ExportWithCacheInfo encodes net with caching. inputHash identifies the
// document net was built from. The model is nil on a cache hit; its stats are
// restored from the cache entry.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, net *network.Network, inputHash string, opts Options) ([]byte, *model.Model, model.Stats, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, model.Stats{}, false, err
	}
	key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var entry cachedArtifact
			if err := json.Unmarshal(data, &entry); err == nil {
				observability.Cache().OnCacheHit(ctx, "artifact")
				return entry.Data, nil, entry.Model, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Pipeline()
	if opts.NeedsEncoder() {
		hooks.OnBuildStart(ctx, opts.Model)
	}
	hooks.OnExportStart(ctx, opts.Format)
	start := time.Now()
	artifact, m, err := Export(net, opts)
	elapsed := time.Since(start)
	var stats model.Stats
	if m != nil {
		stats = m.Stats()
		hooks.OnBuildComplete(ctx, opts.Model, stats.Variables, stats.Constraints, elapsed)
		r.logger(opts).Debugf("built %s model: %d variables, %d constraints, %d nonzeros",
			opts.Model, stats.Variables, stats.Constraints, stats.Nonzeros)
	}
	hooks.OnExportComplete(ctx, opts.Format, len(artifact), elapsed, err)
	if err != nil {
		return nil, nil, model.Stats{}, false, fmt.Errorf("export %s: %w", opts.Format, err)
	}

	if entry, err := json.Marshal(cachedArtifact{Data: artifact, Model: stats}); err == nil {
		if r.Cache.Set(ctx, key, entry, r.TTL) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(entry))
		}
	}
	return artifact, m, stats, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// logger prefers the logger passed in options over the runner's.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
