package failure

import (
	"errors"
	"net/http"
)

// Failure carries the HTTP status a handler should answer with. When built
// from a domain error it still matches that error through errors.Is.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	cause   error
}

var (
	InvalidPageParam        = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
	InvalidLimitParam       = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
	ForbiddenError          = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}
)

func (e *Failure) Error() string {
	return e.Message
}

func (e *Failure) Unwrap() error {
	return e.cause
}

func New(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// wrap returns nil for a nil err so callers can wrap unconditionally.
func wrap(code int, err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: code, Message: err.Error(), cause: err}
}

func BadRequest(err error) error {
	return wrap(http.StatusBadRequest, err)
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

func NotFoundFromError(err error) error {
	return wrap(http.StatusNotFound, err)
}

func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

func ConflictFromError(err error) error {
	return wrap(http.StatusConflict, err)
}

// Unprocessable is for well formed requests that break a domain rule, such as
// checking out a booking whose fare cannot be computed.
func Unprocessable(err error) error {
	return wrap(http.StatusUnprocessableEntity, err)
}

func InternalError(err error) error {
	return wrap(http.StatusInternalServerError, err)
}

// UpstreamUnavailable is the only failure a caller may retry.
func UpstreamUnavailable(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{
		Code:    http.StatusServiceUnavailable,
		Message: "upstream unavailable: " + err.Error(),
		cause:   err,
	}
}

// GetCode defaults to 500 for errors that are not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

func IsRetryable(err error) bool {
	return GetCode(err) == http.StatusServiceUnavailable
}
