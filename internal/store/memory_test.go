package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_DueBefore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	pastID, err := m.CreateJITAI(ctx, JITAI{UserID: "u1", ScheduledTime: now.Add(-time.Hour)})
	require.NoError(t, err)
	_, err = m.CreateJITAI(ctx, JITAI{UserID: "u1", ScheduledTime: now.Add(time.Hour)})
	require.NoError(t, err)
	_, err = m.CreateJITAI(ctx, JITAI{UserID: "u1", ScheduledTime: now.Add(-2 * time.Hour), Delivered: true})
	require.NoError(t, err)
	_, err = m.CreateJITAI(ctx, JITAI{UserID: "u1"}) // no scheduled time, never due
	require.NoError(t, err)

	due, err := m.DueBefore(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, pastID, due[0].ID)
}

func TestMemory_DueBefore_MissingIndex(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.DisableCompositeIndex()

	_, err := m.DueBefore(ctx, time.Now())
	assert.ErrorIs(t, err, ErrMissingIndex)

	// The degraded path stays available.
	_, err = m.Undelivered(ctx)
	assert.NoError(t, err)
}

func TestMemory_MarkDelivered(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	at := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	m.SetClock(func() time.Time { return at })

	id, err := m.CreateJITAI(ctx, JITAI{UserID: "u1", ScheduledTime: at.Add(-time.Hour)})
	require.NoError(t, err)

	require.NoError(t, m.MarkDelivered(ctx, id))

	j, ok := m.GetJITAI(id)
	require.True(t, ok)
	assert.True(t, j.Delivered)
	require.NotNil(t, j.DeliveredAt)
	assert.Equal(t, at, *j.DeliveredAt)

	assert.ErrorIs(t, m.MarkDelivered(ctx, "missing"), ErrNotFound)
}

func TestMemory_ListJITAIs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	base := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)

	early, err := m.CreateJITAI(ctx, JITAI{UserID: "u1", ScheduledTime: base})
	require.NoError(t, err)
	late, err := m.CreateJITAI(ctx, JITAI{UserID: "u1", ScheduledTime: base.Add(3 * time.Hour)})
	require.NoError(t, err)
	_, err = m.CreateJITAI(ctx, JITAI{UserID: "other", ScheduledTime: base})
	require.NoError(t, err)
	require.NoError(t, m.MarkDelivered(ctx, early))

	all, err := m.ListJITAIs(ctx, "u1", nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Descending by scheduled time.
	assert.Equal(t, late, all[0].ID)
	assert.Equal(t, early, all[1].ID)

	delivered := true
	only, err := m.ListJITAIs(ctx, "u1", &delivered)
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, early, only[0].ID)
}

func TestMemory_ClearPushTokens(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.MergeUser(ctx, "u1", map[string]any{
		"displayName":       "Asha",
		"token":             "t-current",
		"fcmToken":          "t-legacy-fcm",
		"notificationToken": "t-legacy-notif",
	}))

	require.NoError(t, m.ClearPushTokens(ctx, "u1"))

	doc, err := m.GetUserDoc(ctx, "u1")
	require.NoError(t, err)
	for _, field := range TokenAliasFields {
		assert.NotContains(t, doc, field)
	}
	assert.Equal(t, "Asha", doc["displayName"])

	assert.ErrorIs(t, m.ClearPushTokens(ctx, "missing"), ErrNotFound)
}

func TestMemory_MergeUser(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.MergeUser(ctx, "u1", map[string]any{"displayName": "Asha", "token": "t1"}))
	require.NoError(t, m.MergeUser(ctx, "u1", map[string]any{"displayName": "Asha R"}))

	p, err := m.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Asha R", p.DisplayName)
	assert.Equal(t, "t1", p.Token)

	_, err = m.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_GetUser_NestedProfiles(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.MergeUser(ctx, "u1", map[string]any{
		"economicProfile":      map[string]any{"costPerUnit": 12.5, "dailySpending": 100},
		"psychologicalProfile": map[string]any{"dailyUsage": 8},
		"quitGoal":             map[string]any{"strategy": "cold-turkey", "quitDate": "2026-08-01"},
	}))

	p, err := m.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, p.EconomicProfile)
	assert.Equal(t, 12.5, p.EconomicProfile.CostPerUnit)
	assert.Equal(t, 100.0, p.EconomicProfile.DailySpending)
	require.NotNil(t, p.PsychologicalProfile)
	assert.Equal(t, 8.0, p.PsychologicalProfile.DailyUsage)
	require.NotNil(t, p.QuitGoal)
	assert.Equal(t, "2026-08-01", p.QuitGoal.QuitDate)
}

func TestMemory_ListLogs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	base := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := m.CreateLog(ctx, LogEntry{UserID: "u1", Type: "use", Timestamp: base.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}
	_, err := m.CreateLog(ctx, LogEntry{UserID: "other", Type: "use", Timestamp: base})
	require.NoError(t, err)

	all, err := m.ListLogs(ctx, "u1", LogFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	// Newest first.
	assert.Equal(t, base.Add(4*time.Hour), all[0].Timestamp)

	start := base.Add(time.Hour)
	end := base.Add(3 * time.Hour)
	window, err := m.ListLogs(ctx, "u1", LogFilter{Start: &start, End: &end})
	require.NoError(t, err)
	assert.Len(t, window, 3)

	limited, err := m.ListLogs(ctx, "u1", LogFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestMemory_CommunityPosts(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	base := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)

	first, err := m.CreatePost(ctx, CommunityPost{UserID: "u1", Content: "day one", CreatedAt: base})
	require.NoError(t, err)
	_, err = m.CreatePost(ctx, CommunityPost{UserID: "u2", Content: "week two", CreatedAt: base.Add(time.Hour)})
	require.NoError(t, err)

	posts, err := m.ListPosts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "week two", posts[0].Content)

	one, err := m.ListPosts(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)

	require.NoError(t, m.LikePost(ctx, first))
	require.NoError(t, m.LikePost(ctx, first))
	posts, err = m.ListPosts(ctx, 0)
	require.NoError(t, err)
	for _, p := range posts {
		if p.ID == first {
			assert.Equal(t, 2, p.Likes)
		}
	}

	assert.ErrorIs(t, m.LikePost(ctx, "missing"), ErrNotFound)
}
