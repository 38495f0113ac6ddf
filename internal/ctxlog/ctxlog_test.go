package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := New(context.Background(), logger)
	assert.Same(t, logger, Logger(ctx))

	Debug(ctx, "matched", "command", "deploy")
	assert.Contains(t, buf.String(), "command=deploy")
}

func TestLoggerDefaults(t *testing.T) {
	assert.Same(t, DefaultLogger, Logger(context.Background()))
	assert.Same(t, DefaultLogger, Logger(New(context.Background(), nil)))
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "PGUP_LOG_LEVEL", EnvName("/usr/local/bin/pgup"))
	assert.Equal(t, "PGUP_LOG_LEVEL", EnvName(`pgup.exe`))
	assert.Equal(t, "PG_UP_LOG_LEVEL", EnvName("pg-up"))
}

func TestLevelFromEnv(t *testing.T) {
	tests := map[string]slog.Level{
		"DEBUG": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"ERROR": slog.LevelError,
		"WARN":  slog.LevelWarn,
		"bogus": slog.LevelWarn,
		"":      slog.LevelWarn,
	}
	for value, want := range tests {
		t.Setenv("DISPATCH_TEST_LOG_LEVEL", value)
		assert.Equal(t, want, LevelFromEnv("DISPATCH_TEST_LOG_LEVEL"), value)
	}
}

func TestWithLevel(t *testing.T) {
	before := LevelVar.Level()

	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := New(context.Background(), base)

	Debug(ctx, "hidden")
	assert.Empty(t, buf.String())

	verbose := New(ctx, WithLevel(Logger(ctx), slog.LevelDebug).With("command", "deploy"))
	Debug(verbose, "shown")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "command=deploy")

	buf.Reset()
	Debug(ctx, "hidden again")
	assert.Empty(t, buf.String(), "the original logger keeps its level")
	assert.Equal(t, before, LevelVar.Level())
}
