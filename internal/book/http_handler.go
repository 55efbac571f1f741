package book

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"bookcatalog/internal/httpx"
	"bookcatalog/internal/logger"
)

const (
	msgNotFound  = "Book not found, try another number"
	msgInvalidID = "Invalid book id, must be an integer"
)

type HTTPHandler struct {
	service *Service
	log     *logrus.Logger
}

func NewHTTPHandler(service *Service, log *logrus.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, log: log}
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		logger.For(r.Context(), h.log).WithError(err).Error("list books failed")
		httpx.JSONInternalError(w)
		return
	}
	httpx.JSONSuccess(w, books)
}

// GetByID handles GET /books/{bookID}
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r.PathValue("bookID"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, msgNotFound, nil)
			return
		}
		logger.For(r.Context(), h.log).WithError(err).WithField("book_id", id).Error("get book failed")
		httpx.JSONInternalError(w)
		return
	}
	httpx.JSONSuccess(w, b)
}
