package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONError_Envelope(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, http.StatusNotFound, "Book not found, try another number", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Book not found, try another number"}`, w.Body.String())
}

func TestJSONError_WithDetails(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, http.StatusBadRequest, "Validation failed", []ErrorDetail{{Field: "lastName", Message: "lastName is invalid"}})

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body.Error)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "lastName", body.Details[0].Field)
}

func TestJSONInternalError(t *testing.T) {
	w := httptest.NewRecorder()
	JSONInternalError(w)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}

func TestJSONSuccess_BareArray(t *testing.T) {
	w := httptest.NewRecorder()
	JSONSuccess(w, []int{1, 2})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[1,2]`, w.Body.String())
}

func TestJSONSuccessCreated(t *testing.T) {
	w := httptest.NewRecorder()
	JSONSuccessCreated(w, map[string]string{"lastName": "Doe"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"lastName":"Doe"}`, w.Body.String())
}
