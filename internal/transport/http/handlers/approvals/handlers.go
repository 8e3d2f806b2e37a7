package approvalshandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
)

// Handler exposes the per-level approval endpoints. The level is a path
// segment, so the permission check happens here rather than in route
// middleware: each level maps to its own permission key.
type Handler struct {
	Service *payroll.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *payroll.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/approvals/{level}/{payrollID}", func(r chi.Router) {
		r.Patch("/approve", h.handleApprove)
		r.Patch("/reject", h.handleReject)
	})
}

type decisionRequest struct {
	Remarks string `json:"remarks"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, payroll.ActionApprove)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, payroll.ActionReject)
}

func (h *Handler) handleDecision(w http.ResponseWriter, r *http.Request, action payroll.Action) {
	reqID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	level, ok := payroll.ParseLevel(chi.URLParam(r, "level"))
	if !ok || !level.IsApprovalLevel() {
		api.Fail(w, http.StatusBadRequest, "invalid_level", "unknown approval level", reqID)
		return
	}

	permission, ok := auth.ApprovalPermissions[level]
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_level", "unknown approval level", reqID)
		return
	}
	allowed, err := h.Perms.HasPermission(r.Context(), user.RoleID, permission)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "permission_error", "permission check failed", reqID)
		return
	}
	if !allowed {
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions for this approval level", reqID)
		return
	}

	// An empty body is fine for approvals; only rejections need remarks.
	var payload decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	actor := payroll.Actor{UserID: user.UserID, Name: user.Name}
	updated, err := h.Service.Advance(r.Context(), user.TenantID, chi.URLParam(r, "payrollID"), level, actor, action, payload.Remarks)
	if err != nil {
		h.failDecision(w, err, reqID)
		return
	}

	api.Success(w, updated, reqID)
}

func (h *Handler) failDecision(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, payroll.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "payroll_not_found", "payroll not found", reqID)
	case errors.Is(err, payroll.ErrInvalidLevel):
		api.Fail(w, http.StatusBadRequest, "invalid_level", "unknown approval level", reqID)
	case errors.Is(err, payroll.ErrMissingReason):
		api.Fail(w, http.StatusBadRequest, "missing_reason", "a rejection reason is required", reqID)
	case errors.Is(err, payroll.ErrReasonTooLong):
		api.Fail(w, http.StatusBadRequest, "reason_too_long", "rejection reason is too long", reqID)
	case errors.Is(err, payroll.ErrInvalidTransition):
		api.Fail(w, http.StatusConflict, "invalid_transition", "payroll is not awaiting this decision", reqID)
	case errors.Is(err, payroll.ErrLevelConflict):
		api.Fail(w, http.StatusConflict, "level_conflict", "payroll moved to another level, reload and retry", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "approval_failed", "failed to record decision", reqID)
	}
}
