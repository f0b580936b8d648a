package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/garage-storage-backend/internal/app"
	"github.com/nekogravitycat/garage-storage-backend/internal/config"
	"github.com/nekogravitycat/garage-storage-backend/internal/listing"
	"github.com/nekogravitycat/garage-storage-backend/internal/listing/remote"
	"github.com/nekogravitycat/garage-storage-backend/internal/logger"
	"github.com/nekogravitycat/garage-storage-backend/internal/session"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.IsProduction, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// The remote client authenticates with the local session's token.
	var container *app.Container
	var backend listing.Backend
	switch cfg.Backend {
	case config.BackendRemote:
		backend = remote.NewClient(cfg.RemoteBackendURL,
			remote.WithTimeout(cfg.RemoteTimeout),
			remote.WithLogger(zl),
			remote.WithTokenSource(func() (string, error) { return container.Session.Token() }),
		)
	default:
		backend = listing.NewSimulatedBackend(listing.SimulatedConfig{
			ReadDelay:  cfg.SimReadDelay,
			WriteDelay: cfg.SimWriteDelay,
			BookDelay:  cfg.SimBookDelay,
		})
	}

	container = app.NewContainer(app.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		Logger:       zl,
		JWTSecret:    cfg.JWTSecret,
		JWTTTL:       cfg.JWTAccessTokenTTL,
		Session: session.Config{
			AuthDelay:    cfg.SimAuthDelay,
			RestoreDelay: cfg.SimRestoreDelay,
		},
		Backend: backend,
	})
	defer container.Close()

	// Restore any saved session and warm the listings before serving.
	if err := container.Session.Initialize(ctx); err != nil {
		zl.Warn("session restore aborted", zap.Error(err))
	}
	if err := container.Listings.FetchListings(ctx); err != nil {
		zl.Warn("initial listings fetch failed", zap.Error(err))
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		zl.Info("server running", zap.String("addr", cfg.HTTPAddr), zap.String("backend", cfg.Backend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	zl.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exited gracefully")
}
