package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/playperu/quizdesk/internal/config"
	"github.com/playperu/quizdesk/internal/handler/health"
	"github.com/playperu/quizdesk/internal/server"
	"github.com/playperu/quizdesk/internal/workspace"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Workspaces ---
	broker := server.NewBroker()
	workspaces := workspace.NewRegistry(logger, cfg.WorkspaceTTL, workspace.OnEvict(broker.Drop))
	defer workspaces.Close()
	logger.Info("workspace registry ready", "ttl", cfg.WorkspaceTTL.String())

	// --- HTTP Server ---
	checks := map[string]health.Checker{}
	if cfg.SPADir != "" {
		checks["spa"] = spaChecker(cfg.SPADir)
	}
	srv := server.New(cfg.HTTPAddr, logger, workspaces, broker, server.Options{
		SPADir:         cfg.SPADir,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		ImportWorkers:  cfg.ImportWorkers,
		EventTick:      cfg.EventTick,
		CORSOrigins:    cfg.CORSOrigins,
		Checks:         checks,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		return workspaces.Run(gctx, cfg.JanitorInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

// spaChecker reports an error when the SPA build is missing its index.html.
func spaChecker(dir string) health.CheckerFunc {
	return func(context.Context) error {
		_, err := os.Stat(dir + "/index.html")
		return err
	}
}
