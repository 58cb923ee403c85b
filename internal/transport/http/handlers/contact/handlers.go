package contacthandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/employee"
	"hrms/internal/transport/http/api"
	employeehandler "hrms/internal/transport/http/handlers/employee"
	"hrms/internal/transport/http/middleware"
)

// Handler serves the contact-details sub-resource. The target employee
// is always the authenticated identity's employeeId claim, regardless of
// verb or request body.
type Handler struct {
	Service *employee.Service
}

func NewHandler(service *employee.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/contact-details", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleGet)
		r.Post("/", h.handleCreate)
		r.Put("/", h.handleUpdate)
		r.Delete("/", h.handleDelete)
	})
}

type contactPayload struct {
	ContactDetails *employee.ContactDetails `json:"contactDetails"`
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	details, err := h.Service.GetContactDetails(r.Context(), identity.EmployeeID)
	if err != nil {
		employeehandler.WriteDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, details, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	h.set(w, r, true)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	h.set(w, r, false)
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request, created bool) {
	identity, _ := middleware.GetIdentity(r.Context())

	var payload contactPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ContactDetails == nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "contactDetails is required", middleware.GetRequestID(r.Context()))
		return
	}

	details, err := h.Service.SetContactDetails(r.Context(), identity.EmployeeID, payload.ContactDetails)
	if err != nil {
		employeehandler.WriteDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if created {
		api.Created(w, details, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, details, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	if err := h.Service.DeleteContactDetails(r.Context(), identity.EmployeeID); err != nil {
		employeehandler.WriteDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.NoContent(w)
}
