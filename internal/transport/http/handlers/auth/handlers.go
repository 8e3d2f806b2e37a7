package authhandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"hrpay/internal/domain/auth"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
)

type Handler struct {
	Store    *auth.Store
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(store *auth.Store, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{Store: store, Secret: secret, TokenTTL: tokenTTL}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	user, err := h.Store.FindActiveUserByEmail(r.Context(), payload.Email)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	if err := auth.CheckPassword(user.Password, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID:   user.ID,
		TenantID: user.TenantID,
		RoleID:   user.RoleID,
		RoleName: user.RoleName,
		Name:     user.Name,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.UpdateLastLogin(r.Context(), user.ID); err != nil {
		slog.Warn("update last_login failed", "userId", user.ID, "err", err)
	}

	api.Success(w, map[string]any{
		"token": token,
		"user": map[string]string{
			"id":       user.ID,
			"tenantId": user.TenantID,
			"roleId":   user.RoleID,
			"role":     user.RoleName,
			"name":     user.Name,
		},
	}, middleware.GetRequestID(r.Context()))
}
