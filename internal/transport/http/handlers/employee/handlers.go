package employeehandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrms/internal/domain/employee"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

type Handler struct {
	Service *employee.Service
}

func NewHandler(service *employee.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Post("/login", h.handleLogin)
		r.Get("/", h.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
			r.Put("/details", h.handleUpdateDetails)
			r.Get("/export", h.handleExport)
		})
	})
}

// WriteDomainError maps domain errors to the HTTP taxonomy: validation
// and duplicates to 400, unknown records to 404, everything else to a
// generic 500 with detail kept in the logs.
func WriteDomainError(w http.ResponseWriter, err error, requestID string) {
	var verr *employee.ValidationError
	switch {
	case errors.As(err, &verr):
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
			map[string]any{"fields": verr.Issues}, requestID)
	case errors.Is(err, employee.ErrDuplicateEmployeeID):
		api.Fail(w, http.StatusBadRequest, "duplicate_employee_id", "Employee ID already exists", requestID)
	case errors.Is(err, employee.ErrInvalidCredentials):
		api.Fail(w, http.StatusBadRequest, "invalid_credentials", "Invalid credentials", requestID)
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "Employee not found", requestID)
	case errors.Is(err, employee.ErrNoProfilePicture):
		api.Fail(w, http.StatusNotFound, "not_found", "No profile picture found", requestID)
	case errors.Is(err, employee.ErrNoContactDetails):
		api.Fail(w, http.StatusNotFound, "not_found", "No contact details found", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "server_error", "Server error", requestID)
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input employee.CreateEmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Service.Register(r.Context(), input)
	if err != nil {
		WriteDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]any{
		"message":         "Employee created successfully",
		"employee":        result.Employee,
		"profile":         result.Profile,
		"birthday":        result.Birthday,
		"workAnniversary": result.WorkAnniversary,
	}, middleware.GetRequestID(r.Context()))
}

type loginRequest struct {
	EmployeeID string `json:"employeeId"`
	Password   string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Service.Login(r.Context(), payload.EmployeeID, payload.Password)
	if err != nil {
		WriteDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		WriteDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

// employeeID extracts the path id. A malformed id is indistinguishable
// from an unknown one at the API surface, both map to 404.
func employeeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "Employee not found", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return id, true
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}
	emp, err := h.Service.GetEmployee(r.Context(), id)
	if err != nil {
		WriteDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

type updateRequest struct {
	EmployeeID string `json:"employeeId"`
	Password   string `json:"password"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}
	var payload updateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Service.UpdateCredentials(r.Context(), id, payload.EmployeeID, payload.Password)
	if err != nil {
		WriteDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteEmployee(r.Context(), id); err != nil {
		WriteDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"message": "Employee removed"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}
	var update employee.DetailsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Service.UpdateDetails(r.Context(), id, update)
	if err != nil {
		WriteDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.Service.ExportProfilePDF(r.Context(), id, &buf); err != nil {
		WriteDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="employee-profile.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
