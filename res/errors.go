package res

import (
	"errors"
	"net/http"
)

// ErrorRes is the only error type controllers hand to the error boundary.
// Message is what the client reads; Err is echoed next to it.
type ErrorRes struct {
	Err        error
	StatusCode int
	Message    string
}

func (e *ErrorRes) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Err.Error()
}

func (e *ErrorRes) Unwrap() error { return e.Err }

func newError(err error, message string, status int) *ErrorRes {
	if err == nil {
		err = errors.New(message)
	}
	return &ErrorRes{
		Err:        err,
		StatusCode: status,
		Message:    message,
	}
}

func BadRequest(err error, message string) *ErrorRes {
	return newError(err, message, http.StatusBadRequest)
}

func NotFound(message string) *ErrorRes {
	return newError(nil, message, http.StatusNotFound)
}

func ServerError(err error) *ErrorRes {
	return newError(err, "Server Error", http.StatusInternalServerError)
}

func ServerErrorMessage(err error, message string) *ErrorRes {
	return newError(err, message, http.StatusInternalServerError)
}

func Unavailable(err error, message string) *ErrorRes {
	return newError(err, message, http.StatusServiceUnavailable)
}

// AsErrorRes maps any error onto the taxonomy, unknown faults being 500.
func AsErrorRes(err error) *ErrorRes {
	var errRes *ErrorRes
	if errors.As(err, &errRes) {
		return errRes
	}
	return ServerError(err)
}
