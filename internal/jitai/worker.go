package jitai

import (
	"context"
	"log/slog"
	"time"
)

// StartWorker runs sweeps on a fixed interval: one initial run after
// initialDelay, then one per tick. Blocks until ctx is cancelled; intended
// to be called with `go`. The ticker schedules but does not cancel a
// still-running sweep, so a hung downstream call stalls subsequent ticks
// rather than stacking goroutines.
func StartWorker(ctx context.Context, s *Sweeper, initialDelay, interval time.Duration, logger *slog.Logger) {
	logger.Info("JITAI sweep worker started", "initial_delay", initialDelay, "interval", interval)

	select {
	case <-time.After(initialDelay):
		runSweep(ctx, s, logger)
	case <-ctx.Done():
		logger.Info("JITAI sweep worker stopped")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			runSweep(ctx, s, logger)
		case <-ctx.Done():
			logger.Info("JITAI sweep worker stopped")
			return
		}
	}
}

func runSweep(ctx context.Context, s *Sweeper, logger *slog.Logger) {
	res, err := s.Run(ctx)
	if err != nil {
		logger.Error("sweep failed", "error", err)
		return
	}
	if res.Sent+res.Errors > 0 {
		logger.Info("sweep complete", "sent", res.Sent, "errors", res.Errors)
	}
}
