// Package testutil holds helpers shared by handler and routing tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/sirupsen/logrus"

	"bookcatalog/internal/author"
)

// TestAuthors are sample persisted authors; two share the last name "Doe".
var TestAuthors = []author.Author{
	{ID: "65f000000000000000000001", FirstName: "J", LastName: "Doe"},
	{ID: "65f000000000000000000002", FirstName: "Jane", LastName: "Doe"},
	{ID: "65f000000000000000000003", FirstName: "Adam", LastName: "Smith"},
}

// Logger returns a logger that discards everything.
func Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// NewRequest creates a new HTTP request for testing. A non-nil body is sent
// as JSON; a string body is sent verbatim.
func NewRequest(method, path string, body interface{}) *http.Request {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		bodyBytes, _ := json.Marshal(b)
		reader = bytes.NewReader(bodyBytes)
	}
	r := httptest.NewRequest(method, path, reader)
	if reader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

// Serve runs one request through h and returns the recorder.
func Serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

// ErrorMessage decodes the error envelope of a response body.
func ErrorMessage(w *httptest.ResponseRecorder) string {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body.Error
}
