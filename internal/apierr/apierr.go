package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced to clients. Codes are stable; messages are not.
const (
	CodeInvalidDateFormat     = "invalid_date_format"
	CodeCommitmentNotFound    = "commitment_not_found"
	CodeTransientStoreFailure = "transient_store_failure"
	CodeNotFound              = "not_found"
	CodeInvalidArgument       = "invalid_argument"
	CodeUnauthorized          = "unauthorized"
	CodeForbidden             = "forbidden"
	CodeUpstreamFailure       = "upstream_failure"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func InvalidDateFormat(err error) *Error {
	return New(http.StatusBadRequest, CodeInvalidDateFormat, err)
}

func CommitmentNotFound(err error) *Error {
	return New(http.StatusNotFound, CodeCommitmentNotFound, err)
}

func TransientStoreFailure(err error) *Error {
	return New(http.StatusServiceUnavailable, CodeTransientStoreFailure, err)
}

// StatusOf maps any error to the HTTP status and code the handler layer
// should respond with.
func StatusOf(err error) (int, string) {
	var ae *Error
	if errors.As(err, &ae) {
		status := ae.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, ae.Code
	}
	return http.StatusInternalServerError, ""
}
