package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TextHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "text", "warn")
	ctx := context.Background()

	log.Debug(ctx, "dbg")
	log.Info(ctx, "inf")
	log.Warn(ctx, "wrn", "email", "a@b.com")
	log.Error(ctx, "err")

	out := buf.String()
	assert.NotContains(t, out, "msg=dbg")
	assert.NotContains(t, out, "msg=inf")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "email=a@b.com")
	assert.Contains(t, out, "level=ERROR")
}

func TestNew_JSONHandler(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "JSON", "debug")

	log.With("module", "flow").Debug(context.Background(), "hello", "k", "v")

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "{"), "expected JSON output, got %q", out)
	assert.Contains(t, out, `"module":"flow"`)
	assert.Contains(t, out, `"k":"v"`)
	assert.Contains(t, out, `"level":"DEBUG"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseLevel(tc.in), tc.in)
	}
}

func TestNop_DiscardsAndChains(t *testing.T) {
	log := Nop()
	ctx := context.TODO()
	log.Info(ctx, "ignored")
	log.With("a", 1).Error(ctx, "ignored")
}
