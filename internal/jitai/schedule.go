package jitai

import (
	"context"
	"fmt"
	"time"

	"github.com/quitwise/quitwise-backend/internal/analytics"
	"github.com/quitwise/quitwise-backend/internal/store"
)

// scheduleLogSample bounds how much history feeds risk-window analysis.
const scheduleLogSample = 100

// intervention pairs a category with its message template.
type intervention struct {
	kind    string
	message string
}

// interventionFor rotates through the catalog by risk hour so a user with
// several risk windows sees varied intervention types.
func interventionFor(hour int, costPerUnit float64) intervention {
	catalog := []intervention{
		{store.InterventionBreathing,
			"Take a moment. Breathe in for 4, hold for 4, breathe out for 4. You've got this."},
		{store.InterventionCBTPrompt,
			"What are you feeling right now? Is smoking the only solution?"},
		{store.InterventionEconomicNudge,
			fmt.Sprintf("If you skip this cigarette, today's saving becomes ₹%.2f.", costPerUnit)},
		{store.InterventionUrgeSurfing,
			"Ride the craving for 5 minutes, then re-evaluate. Cravings pass."},
	}
	return catalog[hour%len(catalog)]
}

// BuildSchedule maps a user's risk windows to undelivered intervention
// records: one per risk hour, scheduled at the next occurrence of that
// hour (today if still ahead, otherwise tomorrow). Never schedules in
// the past.
func BuildSchedule(profile *store.UserProfile, logs []store.LogEntry, now time.Time) []store.JITAI {
	var costPerUnit float64
	if profile.EconomicProfile != nil {
		costPerUnit = profile.EconomicProfile.CostPerUnit
	}

	var out []store.JITAI
	for _, hour := range analytics.RiskWindows(logs) {
		at := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
		if !at.After(now) {
			at = at.Add(24 * time.Hour)
		}
		iv := interventionFor(hour, costPerUnit)
		out = append(out, store.JITAI{
			UserID:           profile.UID,
			ScheduledTime:    at,
			RiskWindow:       hour,
			InterventionType: iv.kind,
			Message:          iv.message,
		})
	}
	return out
}

// ScheduleForUser analyzes a user's recent logs and persists one
// intervention per detected risk window. Returns how many were created.
func ScheduleForUser(ctx context.Context, users store.UserStore, logs store.LogStore, jitais store.JITAIStore, uid string, now time.Time) (int, error) {
	profile, err := users.GetUser(ctx, uid)
	if err != nil {
		return 0, err
	}

	recent, err := logs.ListLogs(ctx, uid, store.LogFilter{Limit: scheduleLogSample})
	if err != nil {
		return 0, fmt.Errorf("list logs for %s: %w", uid, err)
	}

	created := 0
	for _, j := range BuildSchedule(profile, recent, now) {
		if _, err := jitais.CreateJITAI(ctx, j); err != nil {
			return created, fmt.Errorf("create intervention: %w", err)
		}
		created++
	}
	return created, nil
}
