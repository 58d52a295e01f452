// Command admin is the QuitWise operations CLI.
//
// Usage:
//
//	quitwise-admin sweep
//	quitwise-admin schedule --uid USER
//	quitwise-admin tokens clear --uid USER
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/quitwise/quitwise-backend/internal/config"
	"github.com/quitwise/quitwise-backend/internal/jitai"
	"github.com/quitwise/quitwise-backend/internal/push"
	"github.com/quitwise/quitwise-backend/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "quitwise-admin",
		Short: "QuitWise operations CLI",
	}

	root.AddCommand(sweepCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(tokensCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// sweep command
// --------------------------------------------------------------------------

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run one JITAI sweep and report counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnected(func(ctx context.Context, app *firebase.App, docs *store.Firestore) error {
				msgClient, err := app.Messaging(ctx)
				if err != nil {
					return fmt.Errorf("initialize FCM: %w", err)
				}
				sweeper := jitai.NewSweeper(docs, docs, push.NewFCM(msgClient, logger), logger)
				start := time.Now()
				res, err := sweeper.Run(ctx)
				if err != nil {
					return err
				}
				logger.Info("Sweep finished",
					"sent", res.Sent,
					"errors", res.Errors,
					"duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// schedule command
// --------------------------------------------------------------------------

func scheduleCmd() *cobra.Command {
	var uid string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule interventions from a user's risk windows",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnected(func(ctx context.Context, app *firebase.App, docs *store.Firestore) error {
				created, err := jitai.ScheduleForUser(ctx, docs, docs, docs, uid, time.Now())
				if err != nil {
					return err
				}
				logger.Info("Interventions scheduled", "uid", uid, "count", created)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "User ID (required)")
	cmd.MarkFlagRequired("uid")
	return cmd
}

// --------------------------------------------------------------------------
// tokens command
// --------------------------------------------------------------------------

func tokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Manage push delivery tokens",
	}
	cmd.AddCommand(tokensClearCmd())
	return cmd
}

func tokensClearCmd() *cobra.Command {
	var uid string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove a user's delivery token from every alias field",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnected(func(ctx context.Context, app *firebase.App, docs *store.Firestore) error {
				if err := docs.ClearPushTokens(ctx, uid); err != nil {
					return err
				}
				logger.Info("Push tokens cleared", "uid", uid)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "User ID (required)")
	cmd.MarkFlagRequired("uid")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

func runConnected(fn func(ctx context.Context, app *firebase.App, docs *store.Firestore) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		return fmt.Errorf("initialize Firebase: %w", err)
	}
	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("connect to Firestore: %w", err)
	}
	defer fsClient.Close()

	return fn(ctx, app, store.NewFirestore(fsClient))
}
