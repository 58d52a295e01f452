// Command api is the QuitWise backend server.
//
// Usage:
//
//	quitwise-api
//	API_PORT=8080 quitwise-api

// @title QuitWise Backend API
// @version 1.0.0
// @description Smoking/vaping cessation backend: profile, log, and community CRUD over Firestore, analytics summaries, and JITAI push-notification dispatch.
// @host localhost:3001
// @BasePath /
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"github.com/quitwise/quitwise-backend/internal/api"
	"github.com/quitwise/quitwise-backend/internal/api/handler"
	"github.com/quitwise/quitwise-backend/internal/auth"
	"github.com/quitwise/quitwise-backend/internal/cache"
	"github.com/quitwise/quitwise-backend/internal/config"
	"github.com/quitwise/quitwise-backend/internal/jitai"
	"github.com/quitwise/quitwise-backend/internal/push"
	"github.com/quitwise/quitwise-backend/internal/store"

	_ "github.com/quitwise/quitwise-backend/docs" // swagger docs
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Initialize Firebase clients
	logger.Info("Connecting to Firebase...", "project", cfg.FirebaseProjectID)
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		logger.Error("Failed to initialize Firebase", "error", err)
		os.Exit(1)
	}
	fsClient, err := app.Firestore(ctx)
	if err != nil {
		logger.Error("Failed to connect to Firestore", "error", err)
		os.Exit(1)
	}
	defer fsClient.Close()
	msgClient, err := app.Messaging(ctx)
	if err != nil {
		logger.Error("Failed to initialize FCM", "error", err)
		os.Exit(1)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		logger.Error("Failed to initialize Firebase auth", "error", err)
		os.Exit(1)
	}
	logger.Info("Firebase connected")

	docs := store.NewFirestore(fsClient)
	sender := push.NewFCM(msgClient, logger)
	sweeper := jitai.NewSweeper(docs, docs, sender, logger)

	// Start the sweep timer unless an external scheduler drives sweeps.
	if cfg.Serverless {
		logger.Info("Serverless mode: sweep timer disabled, relying on scheduled GET trigger")
	} else {
		go jitai.StartWorker(ctx, sweeper, cfg.SweepInitialDelay, cfg.SweepInterval, logger)
	}

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Create router
	h := handler.New(handler.Deps{
		Users:    docs,
		Logs:     docs,
		JITAIs:   docs,
		Posts:    docs,
		Verifier: auth.NewFirebaseVerifier(authClient),
		Sweeper:  sweeper,
		Cache:    appCache,
		Config:   cfg,
		Logger:   logger,
	})
	router := api.NewRouter(h, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting QuitWise Backend API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
