package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quitwise/quitwise-backend/internal/api/handler"
	"github.com/quitwise/quitwise-backend/internal/auth"
	"github.com/quitwise/quitwise-backend/internal/cache"
	"github.com/quitwise/quitwise-backend/internal/config"
	"github.com/quitwise/quitwise-backend/internal/jitai"
	"github.com/quitwise/quitwise-backend/internal/push"
	"github.com/quitwise/quitwise-backend/internal/store"
)

type stubVerifier struct {
	identity auth.Identity
	err      error
}

func (s stubVerifier) Verify(ctx context.Context, idToken string) (auth.Identity, error) {
	return s.identity, s.err
}

type recordingSender struct {
	sent []push.Notification
}

func (r *recordingSender) Send(ctx context.Context, n push.Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

type testEnv struct {
	store    *store.Memory
	sender   *recordingSender
	verifier *stubVerifier
	router   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	m := store.NewMemory()
	sender := &recordingSender{}
	verifier := &stubVerifier{identity: auth.Identity{UID: "u1", Email: "u1@example.com"}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Environment:      "test",
		CORSAllowOrigins: []string{"*"},
	}
	h := handler.New(handler.Deps{
		Users:    m,
		Logs:     m,
		JITAIs:   m,
		Posts:    m,
		Verifier: verifier,
		Sweeper:  jitai.NewSweeper(m, m, sender, logger),
		Cache:    cache.New(true),
		Config:   cfg,
		Logger:   logger,
	})

	return &testEnv{store: m, sender: sender, verifier: verifier, router: NewRouter(h, cfg)}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/", "/health", "/health/store", "/health/cache"} {
		rec := env.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestVerifyToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/verify", map[string]string{"token": "good"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "u1", body["uid"])
	assert.Equal(t, "u1@example.com", body["email"])
}

func TestVerifyToken_Missing(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/verify", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyToken_Invalid(t *testing.T) {
	env := newTestEnv(t)
	env.verifier.err = errors.New("expired")

	rec := env.do(t, http.MethodPost, "/api/auth/verify", map[string]string{"token": "bad"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserUpsertAndGet(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/users/u1", map[string]any{
		"displayName": "Asha",
		"quitGoal":    map[string]any{"quitDate": "2026-08-01"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := decodeBody(t, rec)
	assert.Equal(t, "Asha", doc["displayName"])
	assert.Contains(t, doc, "updatedAt")
}

func TestGetUser_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/users/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogsCreateAndList(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/logs/u1", map[string]any{
		"type":      "craving",
		"timestamp": "2026-08-25T09:30:00Z",
		"resisted":  true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["id"])

	rec = env.do(t, http.MethodGet, "/api/logs/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var logs []store.LogEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "craving", logs[0].Type)
	assert.Equal(t, "u1", logs[0].UserID)
	assert.True(t, logs[0].Resisted)
}

func TestListLogs_DateWindow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for day := 20; day <= 24; day++ {
		_, err := env.store.CreateLog(ctx, store.LogEntry{
			UserID:    "u1",
			Type:      "use",
			Timestamp: time.Date(2026, 8, day, 9, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	rec := env.do(t, http.MethodGet, "/api/logs/u1?startDate=2026-08-22&endDate=2026-08-23T23:59:59Z", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var logs []store.LogEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logs))
	assert.Len(t, logs, 2)
}

func TestListLogs_BadDate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/logs/u1?startDate=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListLogs_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/logs/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGetAnalytics(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.store.MergeUser(ctx, "u1", map[string]any{
		"economicProfile": map[string]any{"costPerUnit": 10.0},
	}))
	_, err := env.store.CreateLog(ctx, store.LogEntry{
		UserID:    "u1",
		Type:      "use",
		Timestamp: time.Now().UTC().Add(-time.Hour),
	})
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/api/analytics/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["totalUses"])
	assert.Equal(t, float64(10), body["totalSpent"])

	// Second read is a cache hit.
	rec = env.do(t, http.MethodGet, "/api/analytics/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	// Conditional read with the ETag short-circuits to 304.
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/u1", nil)
	req.Header.Set("If-None-Match", etag)
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNotModified, resp.Code)
}

func TestGetAnalytics_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/analytics/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckJITAIs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.store.MergeUser(ctx, "u1", map[string]any{
		"token": strings.Repeat("x", 120),
	}))
	id, err := env.store.CreateJITAI(ctx, store.JITAI{
		UserID:           "u1",
		ScheduledTime:    time.Now().Add(-time.Hour),
		InterventionType: store.InterventionBreathing,
		Message:          "Breathe.",
	})
	require.NoError(t, err)

	for _, method := range []string{http.MethodPost, http.MethodGet} {
		rec := env.do(t, method, "/api/notifications/check-jitais", nil)
		require.Equal(t, http.StatusOK, rec.Code, method)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
	}

	// First sweep delivered it; the second found nothing due.
	require.Len(t, env.sender.sent, 1)
	j, ok := env.store.GetJITAI(id)
	require.True(t, ok)
	assert.True(t, j.Delivered)
}

func TestListJITAIs_DeliveredFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	done, err := env.store.CreateJITAI(ctx, store.JITAI{UserID: "u1", ScheduledTime: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	require.NoError(t, env.store.MarkDelivered(ctx, done))
	_, err = env.store.CreateJITAI(ctx, store.JITAI{UserID: "u1", ScheduledTime: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/api/notifications/jitais/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []store.JITAI
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	rec = env.do(t, http.MethodGet, "/api/notifications/jitais/u1?delivered=false", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []store.JITAI
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.False(t, pending[0].Delivered)

	rec = env.do(t, http.MethodGet, "/api/notifications/jitais/u1?delivered=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleJITAIs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.store.MergeUser(ctx, "u1", map[string]any{"displayName": "Asha"}))
	for i := 0; i < 3; i++ {
		_, err := env.store.CreateLog(ctx, store.LogEntry{
			UserID:    "u1",
			Type:      "craving",
			Timestamp: time.Date(2026, 8, 24, 21, 10+i, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	rec := env.do(t, http.MethodPost, "/api/notifications/schedule/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["scheduled"])

	rec = env.do(t, http.MethodPost, "/api/notifications/schedule/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommunityFeed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/community/posts/u1", map[string]string{
		"content":    "Day 10 without smoking.",
		"authorName": "Asha",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	id, _ := decodeBody(t, rec)["id"].(string)
	require.NotEmpty(t, id)

	rec = env.do(t, http.MethodPost, "/api/community/posts/"+id+"/like", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/community/posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []store.CommunityPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "Day 10 without smoking.", posts[0].Content)
	assert.Equal(t, 1, posts[0].Likes)
}

func TestCreatePost_EmptyContent(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/community/posts/u1", map[string]string{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLikePost_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/community/posts/nope/like", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
