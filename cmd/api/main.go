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

	"contact-relay/config"
	_ "contact-relay/docs" // Important for Swagger
	"contact-relay/internal/app"
	v1 "contact-relay/internal/delivery/http/v1"
	"contact-relay/pkg/logger"
	"contact-relay/pkg/security"

	"golang.org/x/sync/errgroup"
)

// @title           Contact Relay API
// @version         1.0
// @description     Relays website contact form submissions to the site owner by email.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.Env)
	logger.Log.Info("Starting contact relay", "port", cfg.Port, "email_provider", cfg.EmailProvider)

	secLog := security.InitSecurityLogger(cfg.SecurityServiceName, cfg.Env)
	defer func() { _ = secLog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Setup Relay
	relayHandler, err := app.NewRelay(ctx, cfg, secLog)
	if err != nil {
		logger.Log.Error("Failed to build relay", "error", err)
		os.Exit(1)
	}

	// 4. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		Relay:  relayHandler,
		Config: cfg,
	})

	// 5. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Log.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Log.Info("Server exiting")
}
