// Package handler provides HTTP handlers for all API endpoints.
// Handlers are thin pass-throughs to the document store; the only real
// logic lives in the jitai and analytics packages they call into.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/quitwise/quitwise-backend/internal/api/respond"
	"github.com/quitwise/quitwise-backend/internal/auth"
	"github.com/quitwise/quitwise-backend/internal/cache"
	"github.com/quitwise/quitwise-backend/internal/config"
	"github.com/quitwise/quitwise-backend/internal/jitai"
	"github.com/quitwise/quitwise-backend/internal/store"
)

// Deps are the collaborators shared by all endpoint handlers.
type Deps struct {
	Users    store.UserStore
	Logs     store.LogStore
	JITAIs   store.JITAIStore
	Posts    store.CommunityStore
	Verifier auth.Verifier
	Sweeper  *jitai.Sweeper
	Cache    *cache.Cache
	Config   *config.Config
	Logger   *slog.Logger
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	deps Deps
}

// New creates a Handler with shared dependencies.
func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Root serves API info at /.
// @Summary API root info
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":        "QuitWise Backend API",
		"version":     "1.0.0",
		"status":      "running",
		"docs":        "/docs",
		"environment": h.deps.Config.Environment,
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"message":   "QuitWise Backend API",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckStore verifies document-store connectivity.
// @Summary Store health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/store [get]
func (h *Handler) HealthCheckStore(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// A NotFound read still proves the store answered.
	_, err := h.deps.Users.GetUser(ctx, "health-check")
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"store":     "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"store":     "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.deps.Cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
