// Package cli implements the mmcf command-line interface.
//
// mmcf turns multi-commodity flow instances into linear programs for
// external solvers. The CLI is built using cobra and logs with
// charmbracelet/log.
//
// # Commands
//
//   - convert: Write an LP, MPS, network text or normalized JSON file
//   - inspect: Print a summary of the normalized network
//   - serve: Run the conversion pipeline behind an HTTP API
//   - cache: Manage the artifact cache
//   - completion: Generate shell completions
//
// # Configuration
//
// Defaults for convert and serve can be set in a TOML file, by default
// $XDG_CONFIG_HOME/mmcf/config.toml, or any file passed with --config.
// Flags given on the command line win over the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports per-stage timings and cache activity.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger stamping each line with "15:04:05.00".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one operation.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Wrote model.lp (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
