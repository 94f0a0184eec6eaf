package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/apresai/roastbot/internal/keystore"
	"github.com/apresai/roastbot/internal/mcpserver"
	"github.com/apresai/roastbot/internal/observability"
)

func main() {
	logger := observability.InitLogger(os.Getenv("DEBUG") != "")

	logger.Info("Roastbot MCP server starting...")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tp, err := observability.InitTracer(ctx, "roastbot-mcp", "1.0.0")
	if err != nil {
		logger.Warn("Failed to init tracer, continuing without tracing", "error", err)
	} else {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error("Tracer shutdown error", "error", err)
			}
		}()
	}

	cfg := mcpserver.DefaultConfig()

	if cfg.SecretPrefix != "" {
		if err := keystore.FillFromSecretsManager(ctx, cfg.SecretPrefix, logger); err != nil {
			logger.Warn("Failed to load secrets, falling back to environment", "error", err)
		}
	}

	srv := mcpserver.New(cfg, logger)

	go func() {
		<-ctx.Done()
		logger.Info("Shutdown signal received")
		os.Exit(0)
	}()

	if err := srv.Start(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
