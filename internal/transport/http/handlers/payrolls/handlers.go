package payrollshandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *payroll.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payrolls", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/{payrollID}", h.handleGet)
		r.Get("/{payrollID}/payslip", h.handlePayslip)
		r.With(middleware.RequirePermission(auth.PermPayrollSubmit, h.Perms)).Post("/", h.handleSubmit)
		r.With(middleware.RequirePermission(auth.PermPayrollSubmit, h.Perms)).Post("/{payrollID}/resubmit", h.handleResubmit)
	})
}

type submitRequest struct {
	EmployeeID string            `json:"employeeId"`
	Month      int               `json:"month"`
	Year       int               `json:"year"`
	Lines      []payroll.PayLine `json:"lines"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload submitRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeId is required", reqID)
		return
	}

	submitter := payroll.Actor{UserID: user.UserID, Name: user.Name}
	created, err := h.Service.Submit(r.Context(), user.TenantID, submitter, payroll.SubmitInput{
		EmployeeID: payload.EmployeeID,
		Month:      payload.Month,
		Year:       payload.Year,
		Lines:      payload.Lines,
	})
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrInvalidPeriod):
			api.Fail(w, http.StatusBadRequest, "invalid_period", "month or year out of range", reqID)
		case errors.Is(err, payroll.ErrEmployeeNotFound):
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		case errors.Is(err, payroll.ErrAlreadyExists):
			api.Fail(w, http.StatusConflict, "payroll_exists", "payroll already exists for this period", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "payroll_create_failed", "failed to create payroll", reqID)
		}
		return
	}

	api.Created(w, created, reqID)
}

func (h *Handler) handleResubmit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	submitter := payroll.Actor{UserID: user.UserID, Name: user.Name}
	updated, err := h.Service.Resubmit(r.Context(), user.TenantID, chi.URLParam(r, "payrollID"), submitter)
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "payroll_not_found", "payroll not found", reqID)
		case errors.Is(err, payroll.ErrNotRejected):
			api.Fail(w, http.StatusConflict, "not_rejected", "only rejected payrolls can be resubmitted", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "payroll_resubmit_failed", "failed to resubmit payroll", reqID)
		}
		return
	}

	api.Success(w, updated, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	page := shared.ParsePagination(r, 50, 200)
	filter := payroll.ListFilter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		Status:     r.URL.Query().Get("status"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.Month = v
		}
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.Year = v
		}
	}

	items, total, err := h.Service.List(r.Context(), user.TenantID, filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_list_failed", "failed to list payrolls", reqID)
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, items, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	p, err := h.Service.FindByID(r.Context(), user.TenantID, chi.URLParam(r, "payrollID"))
	if err != nil {
		if errors.Is(err, payroll.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "payroll_not_found", "payroll not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payroll_get_failed", "failed to load payroll", reqID)
		return
	}

	api.Success(w, p, reqID)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	payrollID := chi.URLParam(r, "payrollID")
	pdf, err := h.Service.PayslipPDF(r.Context(), user.TenantID, payrollID)
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "payroll_not_found", "payroll not found", reqID)
		case errors.Is(err, payroll.ErrNotCompleted):
			api.Fail(w, http.StatusConflict, "not_completed", "payslip is available once the payroll is fully approved", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to render payslip", reqID)
		}
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%s.pdf", payrollID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
