package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/JonnieCache/cargo-open/pkg/observability"
)

// newLogger builds the logger every command shares. Output goes to w,
// filtered at level, with sub-second timestamps so slow cargo invocations
// stand out in verbose runs.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress measures how long an operation takes. Create one before the work
// starts, call done when it finishes.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time appended, e.g. "resolved 42 crates (128ms)".
func (p *progress) done(msg string) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Infof("%s (%s)", msg, elapsed)
}

// debugHooks forwards cache and HTTP events to the debug log.
type debugHooks struct {
	logger *log.Logger
}

func (h debugHooks) OnCacheHit(_ context.Context, key string)  { h.logger.Debugf("cache hit %s", key) }
func (h debugHooks) OnCacheMiss(_ context.Context, key string) { h.logger.Debugf("cache miss %s", key) }

func (h debugHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debugf("cache set %s (%d bytes)", key, size)
}

func (h debugHooks) OnRequest(_ context.Context, method, url string) {
	h.logger.Debugf("http %s %s", method, url)
}

func (h debugHooks) OnResponse(_ context.Context, method, url string, status int, d time.Duration) {
	h.logger.Debugf("http %s %s: %d (%s)", method, url, status, d.Round(time.Millisecond))
}

func (h debugHooks) OnError(_ context.Context, method, url string, err error) {
	h.logger.Debugf("http %s %s failed: %v", method, url, err)
}

// InstallDebugHooks routes cache and HTTP events through the CLI logger.
// Called when verbose mode is enabled.
func (c *CLI) InstallDebugHooks() {
	observability.SetCacheHooks(debugHooks{logger: c.Logger})
	observability.SetHTTPHooks(debugHooks{logger: c.Logger})
}
