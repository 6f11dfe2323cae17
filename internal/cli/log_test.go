package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		emit    func(*log.Logger)
		wantOut bool
	}{
		{"info passes at info", log.InfoLevel, func(l *log.Logger) { l.Info("resolving") }, true},
		{"debug filtered at info", log.InfoLevel, func(l *log.Logger) { l.Debug("cache probe") }, false},
		{"debug passes at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("cache probe") }, true},
		{"warn passes at info", log.InfoLevel, func(l *log.Logger) { l.Warn("two versions") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantOut {
				t.Errorf("output present = %v, want %v", got, tt.wantOut)
			}
		})
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))

	time.Sleep(10 * time.Millisecond)
	prog.done("resolved 42 crates")

	out := buf.String()
	if !strings.Contains(out, "resolved 42 crates") {
		t.Errorf("missing message in %q", out)
	}
	// The elapsed time renders in parentheses after the message.
	if !strings.Contains(out, "(") || !strings.Contains(out, "ms)") {
		t.Errorf("missing elapsed duration in %q", out)
	}
}

func TestDebugHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.DebugLevel)
	hooks := debugHooks{logger: logger}
	ctx := context.Background()

	hooks.OnCacheHit(ctx, "meta:abc")
	hooks.OnCacheMiss(ctx, "meta:def")
	hooks.OnCacheSet(ctx, "meta:def", 512)
	hooks.OnRequest(ctx, "GET", "https://crates.io/api/v1/crates/serde")
	hooks.OnResponse(ctx, "GET", "https://crates.io/api/v1/crates/serde", 200, 120*time.Millisecond)

	out := buf.String()
	for _, want := range []string{
		"cache hit meta:abc",
		"cache miss meta:def",
		"512 bytes",
		"crates/serde",
		"200",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("debug hook output missing %q:\n%s", want, out)
		}
	}
}

func TestDebugHooksRespectLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	hooks := debugHooks{logger: logger}

	hooks.OnCacheHit(context.Background(), "meta:abc")

	if buf.Len() != 0 {
		t.Errorf("hook events should be debug-level only, got %q", buf.String())
	}
}
