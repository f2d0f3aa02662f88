package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mdview/mdview/internal/config"
	"github.com/mdview/mdview/internal/docsync"
	"github.com/mdview/mdview/internal/google"
	"github.com/mdview/mdview/internal/session"
	"github.com/mdview/mdview/internal/web"
)

// Timeouts for the HTTP server and outbound provider calls.
const (
	readHeaderTimeout = 10 * time.Second
	providerTimeout   = 30 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// runServe wires the application together and runs the HTTP server until the
// context is cancelled or a termination signal arrives.
func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := buildLogger(cfg.LogLevel)

	client := google.NewClient("", "", "", &http.Client{Timeout: providerTimeout}, logger)
	sessions := session.New()
	folder := google.NewAppFolder(client, cfg.AppFolder, logger)
	engine := docsync.NewEngine(client, logger)

	srv := web.New(sessions, cfg.OAuth(), client, folder, engine, logger)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", httpSrv.Addr, "folder", cfg.AppFolder)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}

	return nil
}
