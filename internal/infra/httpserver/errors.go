package httpserver

import (
	"errors"
	"net/http"

	"github.com/dhnext/launchpad/internal/domain/workspace"
)

// httpError carries a status and code chosen by a handler
type httpError struct {
	status  int
	code    string
	message string
}

func (e *httpError) Error() string { return e.message }

func badRequest(message string) error {
	return &httpError{status: http.StatusBadRequest, code: errCodeInvalidRequest, message: message}
}

func validationFailed(message string) error {
	return &httpError{status: http.StatusBadRequest, code: errCodeValidation, message: message}
}

// statusFor maps a handler error onto the response it should produce
func statusFor(err error) (int, Error) {
	var he *httpError
	switch {
	case errors.As(err, &he):
		return he.status, Error{Code: he.code, Message: he.message}
	case errors.Is(err, workspace.ErrInvalidTenant):
		return http.StatusBadRequest, Error{Code: errCodeValidation, Message: err.Error()}
	case errors.Is(err, workspace.ErrCorruptValue):
		return http.StatusInternalServerError, Error{Code: errCodeInternal, Message: "stored workspace data is corrupt"}
	default:
		return http.StatusServiceUnavailable, Error{Code: errCodeUnavailable, Message: "workspace storage unavailable"}
	}
}
