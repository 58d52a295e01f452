package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quitwise/quitwise-backend/internal/api/respond"
	"github.com/quitwise/quitwise-backend/internal/store"
)

// listLogsLimit caps one page of log history.
const listLogsLimit = 100

// ListLogs returns a user's event logs, newest first.
// @Summary List event logs
// @Tags logs
// @Produce json
// @Param uid path string true "User ID"
// @Param startDate query string false "Window start (RFC 3339 or YYYY-MM-DD)"
// @Param endDate query string false "Window end (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {array} store.LogEntry
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/logs/{uid} [get]
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	filter := store.LogFilter{Limit: listLogsLimit}
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		t, ok := parseTimestamp(raw)
		if !ok {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_DATE", "startDate must be RFC 3339 or YYYY-MM-DD")
			return
		}
		filter.Start = &t
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		t, ok := parseTimestamp(raw)
		if !ok {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_DATE", "endDate must be RFC 3339 or YYYY-MM-DD")
			return
		}
		filter.End = &t
	}

	logs, err := h.deps.Logs.ListLogs(r.Context(), uid, filter)
	if err != nil {
		h.deps.Logger.Error("list logs", "uid", uid, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to load logs")
		return
	}
	if logs == nil {
		logs = []store.LogEntry{}
	}

	respond.WriteJSONObject(w, http.StatusOK, logs)
}

// CreateLog records a new use/craving event.
// @Summary Create log entry
// @Tags logs
// @Accept json
// @Produce json
// @Param uid path string true "User ID"
// @Param body body store.LogEntry true "Log entry"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/logs/{uid} [post]
func (h *Handler) CreateLog(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	var entry store.LogEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be a JSON log entry")
		return
	}
	entry.ID = ""
	entry.UserID = uid

	id, err := h.deps.Logs.CreateLog(r.Context(), entry)
	if err != nil {
		h.deps.Logger.Error("create log", "uid", uid, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to save log")
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]any{"id": id, "success": true})
}

// parseTimestamp accepts full RFC 3339 instants and bare dates.
func parseTimestamp(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
