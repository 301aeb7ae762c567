// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielhkuo/quizo/auth"
	"github.com/danielhkuo/quizo/middleware"
	"github.com/danielhkuo/quizo/models"
)

// CredentialVerifier is satisfied by *auth.Verifier.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (models.User, error)
}

type AuthHandler struct {
	verifier CredentialVerifier
}

func NewAuthHandler(verifier CredentialVerifier) *AuthHandler {
	return &AuthHandler{verifier: verifier}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil || req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Username and password are required.")
		return
	}

	user, err := h.verifier.Verify(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		middleware.GetLogger(r.Context()).Info("login rejected", "username", req.Username)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials.")
		return
	}
	if err != nil {
		internalError(w, r, "failed to verify credentials", err)
		return
	}

	middleware.GetLogger(r.Context()).Info("login succeeded", "user_id", user.ID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Login successful."})
}
