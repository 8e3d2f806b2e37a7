package orghandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/notifications"
	"hrpay/internal/domain/org"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

type Handler struct {
	Store  *org.Store
	Perms  middleware.PermissionStore
	Notify *notifications.Service
}

func NewHandler(store *org.Store, perms middleware.PermissionStore, notify *notifications.Service) *Handler {
	return &Handler{Store: store, Perms: perms, Notify: notify}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/departments", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermOrgRead, h.Perms)).Get("/", h.handleListDepartments)
		r.With(middleware.RequirePermission(auth.PermOrgWrite, h.Perms)).Post("/", h.handleCreateDepartment)
		r.With(middleware.RequirePermission(auth.PermOrgWrite, h.Perms)).Put("/{departmentID}/head", h.handleSetHead)
	})
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.handleListEmployees)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/{employeeID}", h.handleGetEmployee)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/", h.handleCreateEmployee)
	})
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	departments, err := h.Store.ListDepartments(r.Context(), user.TenantID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_list_failed", "failed to list departments", reqID)
		return
	}
	api.Success(w, departments, reqID)
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload org.Department
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "department name is required", reqID)
		return
	}

	id, err := h.Store.CreateDepartment(r.Context(), user.TenantID, payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_create_failed", "failed to create department", reqID)
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleSetHead(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload struct {
		EmployeeID string `json:"employeeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeId is required", reqID)
		return
	}

	err := h.Store.SetDepartmentHead(r.Context(), user.TenantID, chi.URLParam(r, "departmentID"), payload.EmployeeID)
	if err != nil {
		if errors.Is(err, org.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "department_not_found", "department not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "department_update_failed", "failed to set department head", reqID)
		return
	}

	if h.Notify != nil {
		if head, err := h.Store.FindEmployee(r.Context(), user.TenantID, payload.EmployeeID); err == nil && head.UserID != "" {
			_ = h.Notify.Create(r.Context(), user.TenantID, notifications.Notification{
				UserID:  head.UserID,
				Type:    notifications.TypeDepartmentHeadSet,
				Title:   "Department Head Assignment",
				Message: "You are now responsible for payroll approvals in your department.",
			})
		}
	}

	api.Success(w, map[string]string{"status": "updated"}, reqID)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	page := shared.ParsePagination(r, 50, 200)
	employees, total, err := h.Store.ListEmployees(r.Context(), user.TenantID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", reqID)
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, employees, reqID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	employee, err := h.Store.FindEmployee(r.Context(), user.TenantID, chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, org.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", reqID)
		return
	}
	api.Success(w, employee, reqID)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload org.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.FirstName == "" || payload.LastName == "" || payload.Email == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "firstName, lastName and email are required", reqID)
		return
	}

	id, err := h.Store.CreateEmployee(r.Context(), user.TenantID, payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		return
	}

	if h.Notify != nil && payload.UserID != "" {
		_ = h.Notify.Create(r.Context(), user.TenantID, notifications.Notification{
			UserID:  payload.UserID,
			Type:    notifications.TypeEmployeeCreated,
			Title:   "Employee Profile Created",
			Message: "Your employee profile has been created.",
		})
	}

	api.Created(w, map[string]string{"id": id}, reqID)
}
