package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/psxcreative/engine/internal/catalog"
	"github.com/psxcreative/engine/internal/catalogdb"
	"github.com/psxcreative/engine/internal/config"
	"github.com/psxcreative/engine/internal/logging"
	"github.com/psxcreative/engine/internal/mail"
	"github.com/psxcreative/engine/internal/metrics"
	"github.com/psxcreative/engine/internal/pricing"
	"github.com/psxcreative/engine/internal/share"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Development: cfg.IsDev()})
	defer func() { _ = logger.Sync() }()

	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := loadCatalog(ctx, cfg.CatalogDBPath, logger)
	if err != nil {
		return err
	}

	secret := []byte(cfg.ShareSecret)
	if len(secret) == 0 {
		if secret, err = share.RandomSecret(); err != nil {
			return err
		}
	}

	srv := &server{
		engine:       pricing.New(cat),
		codec:        share.NewCodec(secret),
		composer:     mail.NewComposer(mail.Addresses{From: cfg.FromEmail, To: cfg.ToEmail}, nil),
		metrics:      metrics.New(),
		log:          logger,
		emailTimeout: cfg.EmailTimeout,
		baseURL:      cfg.PublicBaseURL,
	}
	if cfg.EmailEnabled() {
		sender, err := mail.NewResendSender(cfg.EmailAPIKey)
		if err != nil {
			return err
		}
		srv.sender = sender
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("environment", cfg.Environment))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// loadCatalog returns the built-in catalog when path is empty, and otherwise
// the catalog stored in the SQLite database at path.
func loadCatalog(ctx context.Context, path string, logger *zap.Logger) (*catalog.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		logger.Info("using built-in catalog")
		return catalog.Default(), nil
	}

	c, seeded, err := catalogdb.Bootstrap(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", path, err)
	}
	logger.Info("catalog loaded", zap.String("path", path), zap.Bool("seeded", seeded), zap.Int("content_types", len(c.Contents())))
	return c, nil
}
