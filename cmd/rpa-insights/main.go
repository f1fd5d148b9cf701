// Command rpa-insights syncs orchestrator queue items and jobs into PostgreSQL.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SKpacteazy/rpa-insights-backend/internal/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		slog.Default().ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cmd := newRootCommand(&rootOptions{
		loadConfig: bootstrap.LoadConfig,
		out:        out,
	})
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
