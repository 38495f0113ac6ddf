// Package ctxlog carries a structured logger in a context.Context.
//
// The level of the default logger comes from the <EXECUTABLE>_LOG_LEVEL
// environment variable (DEBUG, INFO, WARN or ERROR, default WARN), where
// EXECUTABLE is the upper-cased base name of the running binary.
package ctxlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type loggerKey struct{}

// LevelVar controls the level of DefaultLogger.
var LevelVar = &slog.LevelVar{}

// DefaultLogger writes text records to stderr.
var DefaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: LevelVar}))

// Discard drops every record.
var Discard = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))

func init() {
	LevelVar.Set(LevelFromEnv(EnvName(executable())))
}

// New returns a copy of ctx carrying logger, or DefaultLogger when logger is nil.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger carried by ctx, or DefaultLogger.
func Logger(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return DefaultLogger
	}
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// WithLevel returns a logger writing through the handler of logger with its
// minimum level replaced by level. LevelVar is left untouched.
func WithLevel(logger *slog.Logger, level slog.Leveler) *slog.Logger {
	if logger == nil {
		logger = DefaultLogger
	}

	return slog.New(&levelHandler{level: level, handler: logger.Handler()})
}

type levelHandler struct {
	level   slog.Leveler
	handler slog.Handler
}

func (h *levelHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.handler.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{level: h.level, handler: h.handler.WithAttrs(attrs)}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{level: h.level, handler: h.handler.WithGroup(name)}
}

func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).DebugContext(ctx, msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).InfoContext(ctx, msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).WarnContext(ctx, msg, args...)
}

func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).ErrorContext(ctx, msg, args...)
}

// EnvName returns the name of the level variable for the executable exe.
func EnvName(exe string) string {
	base := filepath.Base(exe)
	base = strings.TrimSuffix(base, ".exe")
	base = strings.NewReplacer("-", "_", ".", "_").Replace(base)

	return strings.ToUpper(base) + "_LOG_LEVEL"
}

// LevelFromEnv reads the level from the variable env.
func LevelFromEnv(env string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(os.Getenv(env))) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func executable() string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Base(os.Args[0])
	}

	return exe
}
