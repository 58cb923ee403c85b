package profilehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrms/internal/domain/employee"
	"hrms/internal/transport/http/api"
	employeehandler "hrms/internal/transport/http/handlers/employee"
	"hrms/internal/transport/http/middleware"
)

const uploadField = "profilePicture"

type Handler struct {
	Service *employee.Service
}

func NewHandler(service *employee.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/profile/{employeeID}/picture", func(r chi.Router) {
		r.Post("/", h.handleUpload)
		r.Get("/", h.handleGet)
		r.Delete("/", h.handleDelete)
	})
}

func pathEmployeeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "employeeID")
	if _, err := uuid.Parse(id); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "Invalid employee ID", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return id, true
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	id, ok := pathEmployeeID(w, r)
	if !ok {
		return
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "profilePicture file is required", middleware.GetRequestID(r.Context()))
		return
	}
	defer file.Close()

	publicURL, err := h.Service.UploadProfilePicture(r.Context(), id, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		employeehandler.WriteDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{
		"message":   "Profile picture uploaded",
		"publicUrl": publicURL,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathEmployeeID(w, r)
	if !ok {
		return
	}
	url, err := h.Service.GetProfilePictureURL(r.Context(), id)
	if err != nil {
		employeehandler.WriteDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"profilePictureUrl": url}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathEmployeeID(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteProfilePicture(r.Context(), id); err != nil {
		employeehandler.WriteDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"message": "Profile picture deleted"}, middleware.GetRequestID(r.Context()))
}
