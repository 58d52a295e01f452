package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quitwise/quitwise-backend/internal/api/respond"
	"github.com/quitwise/quitwise-backend/internal/jitai"
	"github.com/quitwise/quitwise-backend/internal/store"
)

// CheckJITAIs runs one sweep synchronously: due interventions are
// dispatched and marked before the response is written. Registered on both
// POST (manual trigger) and GET (externally scheduled cron, which only
// issues GETs).
// @Summary Check and send due interventions
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/notifications/check-jitais [post]
func (h *Handler) CheckJITAIs(w http.ResponseWriter, r *http.Request) {
	res, err := h.deps.Sweeper.Run(r.Context())
	if err != nil {
		h.deps.Logger.Error("jitai sweep", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "SWEEP_FAILED", err.Error())
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   fmt.Sprintf("JITAI check completed. Sent: %d, Errors: %d", res.Sent, res.Errors),
		"sent":      res.Sent,
		"errors":    res.Errors,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ListJITAIs returns a user's intervention records, newest scheduled
// first, optionally filtered by delivery status.
// @Summary List interventions
// @Tags notifications
// @Produce json
// @Param uid path string true "User ID"
// @Param delivered query boolean false "Filter by delivery status"
// @Success 200 {array} store.JITAI
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/notifications/jitais/{uid} [get]
func (h *Handler) ListJITAIs(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	var delivered *bool
	if raw := r.URL.Query().Get("delivered"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_FILTER", "delivered must be true or false")
			return
		}
		delivered = &v
	}

	jitais, err := h.deps.JITAIs.ListJITAIs(r.Context(), uid, delivered)
	if err != nil {
		h.deps.Logger.Error("list jitais", "uid", uid, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to load interventions")
		return
	}
	if jitais == nil {
		jitais = []store.JITAI{}
	}

	respond.WriteJSONObject(w, http.StatusOK, jitais)
}

// ScheduleJITAIs analyzes a user's recent logs and schedules one
// intervention per detected risk window.
// @Summary Schedule interventions from risk windows
// @Tags notifications
// @Produce json
// @Param uid path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/notifications/schedule/{uid} [post]
func (h *Handler) ScheduleJITAIs(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	created, err := jitai.ScheduleForUser(r.Context(), h.deps.Users, h.deps.Logs, h.deps.JITAIs, uid, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		h.deps.Logger.Error("schedule jitais", "uid", uid, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "SCHEDULE_FAILED", "Failed to schedule interventions")
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"success":   true,
		"scheduled": created,
	})
}
