package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mmcf/pkg/observability"
)

// logHooks reports pipeline, cache and server events at debug level.
type logHooks struct {
	logger *log.Logger
}

func registerLogHooks(logger *log.Logger) {
	h := logHooks{logger: logger}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnLoadStart(_ context.Context, size int) {
	h.logger.Debug("load", "bytes", size)
}

func (h logHooks) OnLoadComplete(_ context.Context, nodes, arcs int, d time.Duration, err error) {
	h.logger.Debug("load done", "nodes", nodes, "arcs", arcs, "duration", d, "err", err)
}

func (h logHooks) OnNormalizeStart(_ context.Context, policy string) {
	h.logger.Debug("normalize", "policy", policy)
}

func (h logHooks) OnNormalizeComplete(_ context.Context, policy string, nodes, arcs int, d time.Duration, err error) {
	h.logger.Debug("normalize done", "policy", policy, "nodes", nodes, "arcs", arcs, "duration", d, "err", err)
}

func (h logHooks) OnBuildStart(_ context.Context, model string) {
	h.logger.Debug("build", "model", model)
}

func (h logHooks) OnBuildComplete(_ context.Context, model string, variables, constraints int, d time.Duration) {
	h.logger.Debug("build done", "model", model, "variables", variables, "constraints", constraints, "duration", d)
}

func (h logHooks) OnExportStart(_ context.Context, format string) {
	h.logger.Debug("export", "type", format)
}

func (h logHooks) OnExportComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.logger.Debug("export done", "type", format, "bytes", size, "duration", d, "err", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "key", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "key", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "key", keyType, "bytes", size)
}

func (h logHooks) OnRequest(ctx context.Context, method, path string) {
	loggerFromContext(ctx).Debug("request", "method", method, "path", path)
}

func (h logHooks) OnResponse(ctx context.Context, method, path string, status int, d time.Duration) {
	loggerFromContext(ctx).Info("response", "method", method, "path", path, "status", status, "duration", d)
}
