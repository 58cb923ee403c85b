package directoryhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/employee"
	"hrms/internal/transport/http/api"
	employeehandler "hrms/internal/transport/http/handlers/employee"
	"hrms/internal/transport/http/middleware"
)

// Handler serves the denormalized calendar projections used by the
// birthday and work-anniversary widgets.
type Handler struct {
	Service *employee.Service
}

func NewHandler(service *employee.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/birthdays", h.handleBirthdays)
	r.Get("/work-anniversaries", h.handleWorkAnniversaries)
}

func (h *Handler) handleBirthdays(w http.ResponseWriter, r *http.Request) {
	birthdays, err := h.Service.ListBirthdays(r.Context())
	if err != nil {
		employeehandler.WriteDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, birthdays, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleWorkAnniversaries(w http.ResponseWriter, r *http.Request) {
	anniversaries, err := h.Service.ListWorkAnniversaries(r.Context())
	if err != nil {
		employeehandler.WriteDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, anniversaries, middleware.GetRequestID(r.Context()))
}
