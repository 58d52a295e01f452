// Package jitai delivers just-in-time adaptive interventions: a periodic
// sweep finds due, undelivered intervention records, resolves each owner's
// push token, dispatches, and marks outcomes on the store.
package jitai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quitwise/quitwise-backend/internal/push"
	"github.com/quitwise/quitwise-backend/internal/store"
)

// pushTitle is the fixed notification title for every intervention.
const pushTitle = "QuitWise Intervention"

// Result is one sweep's outcome. Records skipped for a missing profile or
// unusable token count as neither sent nor errored.
type Result struct {
	Sent   int `json:"sent"`
	Errors int `json:"errors"`
}

// Sweeper runs due-intervention sweeps. Each invocation is stateless:
// due work is rediscovered from the store every time.
type Sweeper struct {
	jitais store.JITAIStore
	users  store.UserStore
	sender push.Sender
	logger *slog.Logger
	now    func() time.Time
}

// NewSweeper wires a sweeper to its store and dispatch collaborators.
func NewSweeper(jitais store.JITAIStore, users store.UserStore, sender push.Sender, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		jitais: jitais,
		users:  users,
		sender: sender,
		logger: logger,
		now:    time.Now,
	}
}

// Run executes one complete sweep: query due records, dispatch each
// sequentially, mark delivered on success, clear dead tokens on
// invalid-token failures.
//
// Only a non-index failure of the initial due query returns an error;
// per-record failures fold into the error count and the record stays
// undelivered for the next sweep. There is no mutual exclusion between
// concurrent sweeps (timer plus HTTP trigger), so delivery is
// at-least-once: overlapping sweeps can both select a record before
// either delivered-write lands.
func (s *Sweeper) Run(ctx context.Context) (Result, error) {
	now := s.now()

	due, err := s.jitais.DueBefore(ctx, now)
	if errors.Is(err, store.ErrMissingIndex) {
		s.logger.Warn("composite index unavailable, filtering due set in memory")
		due, err = s.dueWithoutIndex(ctx, now)
	}
	if err != nil {
		return Result{}, fmt.Errorf("query due interventions: %w", err)
	}
	if len(due) == 0 {
		return Result{}, nil
	}

	var res Result
	for _, j := range due {
		profile, err := s.users.GetUser(ctx, j.UserID)
		if err != nil {
			// Missing owner means nothing to do, not a fault.
			if !errors.Is(err, store.ErrNotFound) {
				s.logger.Warn("owner lookup failed", "jitai_id", j.ID, "user_id", j.UserID, "error", err)
			}
			continue
		}

		token, ok := resolveToken(profile)
		if !ok || len(token) < minTokenLen {
			continue
		}

		kind := j.InterventionType
		if kind == "" {
			kind = "general"
		}
		err = s.sender.Send(ctx, push.Notification{
			Token: token,
			Title: pushTitle,
			Body:  j.Message,
			Data: map[string]string{
				"type":             "jitai",
				"jitaiId":          j.ID,
				"interventionType": kind,
			},
		})
		if err != nil {
			res.Errors++
			if errors.Is(err, push.ErrInvalidToken) {
				// Best effort: a failed clear is logged, never escalated.
				if cerr := s.users.ClearPushTokens(ctx, j.UserID); cerr != nil {
					s.logger.Error("clear push tokens", "user_id", j.UserID, "error", cerr)
				}
			} else {
				s.logger.Error("send intervention", "jitai_id", j.ID, "error", err)
			}
			continue
		}

		if err := s.jitais.MarkDelivered(ctx, j.ID); err != nil {
			res.Errors++
			s.logger.Error("mark delivered", "jitai_id", j.ID, "error", err)
			continue
		}
		res.Sent++
	}

	return res, nil
}

// dueWithoutIndex is the degraded path when the composite index is
// missing: fetch everything undelivered and apply the time bound locally.
// Must produce the same logical set as the indexed query; records with no
// scheduled time are never due.
func (s *Sweeper) dueWithoutIndex(ctx context.Context, now time.Time) ([]store.JITAI, error) {
	all, err := s.jitais.Undelivered(ctx)
	if err != nil {
		return nil, err
	}
	var due []store.JITAI
	for _, j := range all {
		if j.ScheduledTime.IsZero() || j.ScheduledTime.After(now) {
			continue
		}
		due = append(due, j)
	}
	return due, nil
}
