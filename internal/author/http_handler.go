package author

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"bookcatalog/internal/httpx"
	"bookcatalog/internal/logger"
)

const msgNotFound = "Authors not found with the specified last name"

type HTTPHandler struct {
	service *Service
	log     *logrus.Logger
}

func NewHTTPHandler(service *Service, log *logrus.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, log: log}
}

// List handles GET /authors
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.service.List(r.Context())
	if err != nil {
		logger.For(r.Context(), h.log).WithError(err).Error("list authors failed")
		httpx.JSONInternalError(w)
		return
	}
	httpx.JSONSuccess(w, authors)
}

// ListByLastName handles GET /authors/{lastName}
func (h *HTTPHandler) ListByLastName(w http.ResponseWriter, r *http.Request) {
	lastName := r.PathValue("lastName")

	authors, err := h.service.ListByLastName(r.Context(), lastName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, msgNotFound, nil)
			return
		}
		logger.For(r.Context(), h.log).WithError(err).WithField("last_name", lastName).Error("list authors by last name failed")
		httpx.JSONInternalError(w)
		return
	}
	httpx.JSONSuccess(w, authors)
}

// Create handles POST /authors
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "Validation failed", details)
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		logger.For(r.Context(), h.log).WithError(err).Error("create author failed")
		httpx.JSONInternalError(w)
		return
	}
	httpx.JSONSuccessCreated(w, created)
}
