package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quitwise/quitwise-backend/internal/api/respond"
	"github.com/quitwise/quitwise-backend/internal/store"
)

// GetUser returns a user's full profile document.
// @Summary Get user profile
// @Tags users
// @Produce json
// @Param uid path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/users/{uid} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	doc, err := h.deps.Users.GetUserDoc(r.Context(), uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		h.deps.Logger.Error("get user", "uid", uid, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to load user")
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, doc)
}

// UpsertUser merge-writes profile fields, creating the document if absent.
// @Summary Create or update user profile
// @Tags users
// @Accept json
// @Produce json
// @Param uid path string true "User ID"
// @Param body body map[string]interface{} true "Profile fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/users/{uid} [post]
func (h *Handler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be a JSON object")
		return
	}
	fields["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

	if err := h.deps.Users.MergeUser(r.Context(), uid, fields); err != nil {
		h.deps.Logger.Error("upsert user", "uid", uid, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to save user")
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]any{"success": true})
}
