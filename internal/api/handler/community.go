package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quitwise/quitwise-backend/internal/api/respond"
	"github.com/quitwise/quitwise-backend/internal/store"
)

const defaultPostLimit = 50

// ListPosts returns the community feed, newest first.
// @Summary List community posts
// @Tags community
// @Produce json
// @Param limit query int false "Max posts to return"
// @Success 200 {array} store.CommunityPost
// @Router /api/community/posts [get]
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit := defaultPostLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	posts, err := h.deps.Posts.ListPosts(r.Context(), limit)
	if err != nil {
		h.deps.Logger.Error("list posts", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to load posts")
		return
	}
	if posts == nil {
		posts = []store.CommunityPost{}
	}

	respond.WriteJSONObject(w, http.StatusOK, posts)
}

type createPostRequest struct {
	Content    string `json:"content"`
	AuthorName string `json:"authorName"`
}

// CreatePost adds a post to the community feed.
// @Summary Create community post
// @Tags community
// @Accept json
// @Produce json
// @Param uid path string true "User ID"
// @Param body body createPostRequest true "Post content"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/community/posts/{uid} [post]
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Post content is required")
		return
	}

	id, err := h.deps.Posts.CreatePost(r.Context(), store.CommunityPost{
		UserID:     uid,
		AuthorName: req.AuthorName,
		Content:    strings.TrimSpace(req.Content),
	})
	if err != nil {
		h.deps.Logger.Error("create post", "uid", uid, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to save post")
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]any{"id": id, "success": true})
}

// LikePost increments a post's like counter.
// @Summary Like community post
// @Tags community
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/community/posts/{id}/like [post]
func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.deps.Posts.LikePost(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Post not found")
			return
		}
		h.deps.Logger.Error("like post", "id", id, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to like post")
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]any{"success": true})
}
