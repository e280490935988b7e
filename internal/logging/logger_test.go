package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevelVariants(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for input, expected := range cases {
		if got := parseLevel(input); got != expected {
			t.Fatalf("level %q expected %v, got %v", input, expected, got)
		}
	}
}

func TestFromContextReturnsStoredLogger(t *testing.T) {
	base := NewLogger(Config{Service: "playbud-discovery"})
	ctx := WithLogger(context.Background(), base)

	if got := FromContext(ctx, nil); got != base {
		t.Fatal("expected stored logger to be returned")
	}
}

func TestFromContextFallsBack(t *testing.T) {
	fallback := NewLogger(Config{})
	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Fatal("expected fallback logger")
	}
	if got := FromContext(nil, fallback); got != fallback { //nolint:staticcheck
		t.Fatal("expected fallback logger for nil context")
	}
}

func TestHelpersTolerateNilLogger(t *testing.T) {
	Info(nil, "ignored")
	Warn(nil, "ignored")
	Error(nil, "ignored", nil)
}
