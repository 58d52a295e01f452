package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quitwise/quitwise-backend/internal/analytics"
	"github.com/quitwise/quitwise-backend/internal/api/respond"
	"github.com/quitwise/quitwise-backend/internal/cache"
	"github.com/quitwise/quitwise-backend/internal/store"
)

// analyticsWindow is the report window for usage summaries.
const analyticsWindow = 30 * 24 * time.Hour

// GetAnalytics returns a user's usage summary over the last 30 days.
// @Summary Get usage analytics
// @Tags analytics
// @Produce json
// @Param uid path string true "User ID"
// @Success 200 {object} analytics.Summary
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/analytics/{uid} [get]
func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	cacheKey := fmt.Sprintf("analytics:%s", uid)
	if data, etag, ok := h.deps.Cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLAnalytics, true)
		return
	}

	profile, err := h.deps.Users.GetUser(r.Context(), uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		h.deps.Logger.Error("get user for analytics", "uid", uid, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to load user")
		return
	}

	now := time.Now().UTC()
	windowStart := now.Add(-analyticsWindow)
	logs, err := h.deps.Logs.ListLogs(r.Context(), uid, store.LogFilter{Start: &windowStart})
	if err != nil {
		h.deps.Logger.Error("list logs for analytics", "uid", uid, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to load logs")
		return
	}

	summary := analytics.Summarize(profile, logs, now)
	data, err := json.Marshal(summary)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_ERROR", "Failed to encode analytics")
		return
	}

	etag := h.deps.Cache.Set(cacheKey, data, cache.TTLAnalytics)
	respond.WriteJSON(w, data, etag, cache.TTLAnalytics, false)
}
