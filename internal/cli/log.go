package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/citeforest/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// elapsed returns the time since the progress was created, rounded to the
// nearest microsecond.
func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Microsecond)
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Loaded 42 affiliations (1.234ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, p.elapsed())
}

func (p *progress) donef(format string, args ...any) {
	p.done(fmt.Sprintf(format, args...))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// installLogHooks forwards store, cache and HTTP events to l.
func installLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetStoreHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

// logHooks implements every observability hook interface on top of a logger.
// Store and cache events are chatty and go to debug; requests go to info.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnMutation(op, id string, ok bool) {
	h.logger.Debug("store", "op", op, "id", id, "ok", ok)
}

func (h logHooks) OnCascade(op, id string, affected int) {
	h.logger.Debug("cascade", "op", op, "id", id, "affected", affected)
}

func (h logHooks) OnCacheHit(name string) {
	h.logger.Debug("cache hit", "cache", name)
}

func (h logHooks) OnCacheMiss(name string) {
	h.logger.Debug("cache miss", "cache", name)
}

func (h logHooks) OnCacheRebuild(name string, size int) {
	h.logger.Debug("cache rebuilt", "cache", name, "size", size)
}

func (h logHooks) OnCacheInvalidate(name string) {
	h.logger.Debug("cache invalidated", "cache", name)
}

func (h logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "duration", d.Round(time.Microsecond))
}

func (h logHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Warn("request failed", "method", method, "path", path, "err", err)
}
