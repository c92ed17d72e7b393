package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cinegraph/pkg/observability"
)

// newLogger creates a logger that writes to w at the given level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with the elapsed time.
// Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to the millisecond,
// e.g. "Exported Kinoteka (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Logging Hooks
// =============================================================================

// logHooks reports pipeline and output events at debug level, and failures
// at warn level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.OutputHooks   = (*logHooks)(nil)
)

func (h *logHooks) OnResolveStart(_ context.Context, cinema string) {
	h.logger.Debug("resolving", "cinema", cinema)
}

func (h *logHooks) OnResolveComplete(_ context.Context, cinema string, s observability.GraphStats, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("resolve failed", "cinema", cinema, "duration", d)
		return
	}
	h.logger.Debug("resolved", "cinema", cinema,
		"movies", s.Movies, "users", s.Users, "comments", s.Comments, "duration", d)
}

func (h *logHooks) OnEncodeStart(_ context.Context, format string) {
	h.logger.Debug("encoding", "format", format)
}

func (h *logHooks) OnEncodeComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("encode failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("encoded", "format", format, "bytes", size, "duration", d)
}

func (h *logHooks) OnWrite(_ context.Context, path string, size int, err error) {
	if err != nil {
		h.logger.Warn("write failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("wrote", "path", path, "bytes", size)
}
