// Command decode-server exposes the emoji interpretation pipeline over
// HTTP: a JSON endpoint for one-shot interpretations and a websocket
// endpoint that streams model output while it generates.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emojidecoded/decoder/interpret"
	"github.com/emojidecoded/decoder/interpret/provider"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	overrides, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		logger.Error("parse flags failed", "error", err)
		os.Exit(2)
	}
	cfg, err := loadConfig(overrides)
	if err != nil {
		logger.Error("load config failed", "error", err)
		os.Exit(2)
	}

	apiKey := resolveAPIKey(cfg, overrides)
	client, err := provider.New(provider.Config{
		APIKey:  apiKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		logger.Error("init model client failed", "error", err)
		os.Exit(2)
	}

	var catalog *interpret.Catalog
	if cfg.CatalogPath != "" {
		catalog, err = interpret.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			logger.Error("load catalog failed", "path", cfg.CatalogPath, "error", err)
			os.Exit(2)
		}
		logger.Info("catalog loaded", "path", cfg.CatalogPath, "entries", catalog.Len())
	} else {
		logger.Warn("no catalog configured; results will carry no slugs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := newServer(logger, client, catalog, cfg)
	if cfg.WatchCatalog {
		if err := watchCatalog(ctx, logger, cfg.CatalogPath, srv.swapCatalog); err != nil {
			logger.Error("start catalog watcher failed", "error", err)
			os.Exit(2)
		}
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("decode-server started", "addr", cfg.Addr, "model", cfg.Model)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		logger.Error("http server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}
