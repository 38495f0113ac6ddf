package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pgup/dispatch"
	"github.com/pgup/dispatch/internal/ctxlog"
	"github.com/spf13/afero"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, afero.NewOsFs(), os.Stdout, os.Stderr, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, fs afero.Fs, stdout, stderr io.Writer, args []string) int {
	registry, err := newRegistry(fs, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return dispatch.ExitInternal
	}

	return registry.Run(ctx, args)
}

func newRegistry(fs afero.Fs, stdout, stderr io.Writer) (*dispatch.Registry, error) {
	var registry *dispatch.Registry
	registry, err := dispatch.NewRegistry(
		dispatch.WithProgramName("pgup"),
		dispatch.WithStdout(stdout),
		dispatch.WithStderr(stderr),
		dispatch.WithLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: ctxlog.LevelVar}))),
		dispatch.WithCommands(
			func() dispatch.Handler { return &deployCommand{fs: fs} },
			func() dispatch.Handler { return &listCommand{fs: fs} },
			func() dispatch.Handler { return &describeCommand{registry: func() *dispatch.Registry { return registry }} },
		),
		dispatch.WithCompletion(fs),
	)

	return registry, err
}
