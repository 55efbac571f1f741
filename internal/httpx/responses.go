package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the envelope every non-success response uses.
type ErrorResponse struct {
	Error   string        `json:"error"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Messages shared by handlers.
const (
	MsgInternal = "Internal Server Error"
)

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func JSONSuccess(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

func JSONSuccessCreated(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

func JSONError(w http.ResponseWriter, statusCode int, message string, details []ErrorDetail) {
	JSON(w, statusCode, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

func JSONInternalError(w http.ResponseWriter) {
	JSONError(w, http.StatusInternalServerError, MsgInternal, nil)
}
