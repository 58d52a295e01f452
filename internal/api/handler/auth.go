package handler

import (
	"encoding/json"
	"net/http"

	"github.com/quitwise/quitwise-backend/internal/api/respond"
)

type verifyRequest struct {
	Token string `json:"token"`
}

// VerifyToken verifies a Firebase ID token and returns its identity.
// @Summary Verify ID token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body verifyRequest true "ID token"
// @Success 200 {object} auth.Identity
// @Failure 400 {object} respond.ErrorResponse
// @Failure 401 {object} respond.ErrorResponse
// @Router /api/auth/verify [post]
func (h *Handler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_TOKEN", "Token is required")
		return
	}

	identity, err := h.deps.Verifier.Verify(r.Context(), req.Token)
	if err != nil {
		respond.WriteError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, identity)
}
