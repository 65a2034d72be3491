package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/scavengerhunt/internal/model"
)

// APIError is the body of every JSON error the read API returns
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeInternalError    = "INTERNAL_ERROR"
)

type httpError struct {
	status   int
	apiError APIError
}

func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError renders err as JSON. Errors not built here and not known to
// the model are reported as a bare internal error.
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrInvalidPhoneNumber):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Invalid phone number"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// NotFound answers requests under the API prefix that match no route
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, &httpError{http.StatusNotFound, APIError{CodeNotFound, "No such endpoint: " + r.URL.Path}})
}

// MethodNotAllowed answers API routes hit with the wrong verb
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, &httpError{http.StatusMethodNotAllowed, APIError{CodeMethodNotAllowed, r.Method + " is not supported here"}})
}
