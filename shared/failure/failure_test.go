package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"parkflow/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errDomain = errors.New("checkout attempted on a completed booking")

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"bad request", failure.BadRequest(errors.New("validation failed")), http.StatusBadRequest, "validation failed"},
		{"bad request from string", failure.BadRequestFromString("plate is required"), http.StatusBadRequest, "plate is required"},
		{"unauthorized", failure.Unauthorized("token expired"), http.StatusUnauthorized, "token expired"},
		{"internal", failure.InternalError(errors.New("db down")), http.StatusInternalServerError, "db down"},
		{"not found", failure.NotFound("parking lot not found"), http.StatusNotFound, "parking lot not found"},
		{"conflict", failure.Conflict("plate already parked"), http.StatusConflict, "plate already parked"},
		{"conflict from error", failure.ConflictFromError(errDomain), http.StatusConflict, errDomain.Error()},
		{"unprocessable", failure.Unprocessable(errDomain), http.StatusUnprocessableEntity, errDomain.Error()},
		{"forbidden", failure.Forbidden("not your lot"), http.StatusForbidden, "not your lot"},
		{"upstream", failure.UpstreamUnavailable(errors.New("timeout")), http.StatusServiceUnavailable, "upstream unavailable: timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure

			assert.True(t, errors.As(tt.err, &f))
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.message, f.Message)
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestUnwrapKeepsDomainError(t *testing.T) {
	err := fmt.Errorf("checkout: %w", failure.ConflictFromError(errDomain))

	assert.ErrorIs(t, err, errDomain)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	notFound := failure.NotFoundFromError(errDomain)
	assert.ErrorIs(t, notFound, errDomain)
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(failure.InvalidPageParam))
	assert.Equal(t, http.StatusForbidden, failure.GetCode(failure.ForbiddenError))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, failure.IsRetryable(failure.UpstreamUnavailable(errors.New("geocoder down"))))
	assert.False(t, failure.IsRetryable(failure.ConflictFromError(errDomain)))
	assert.False(t, failure.IsRetryable(errors.New("plain")))
}

func TestNew(t *testing.T) {
	err := failure.New(http.StatusTooManyRequests, "slow down")

	assert.Equal(t, http.StatusTooManyRequests, failure.GetCode(err))
	assert.EqualError(t, err, "slow down")
	assert.NoError(t, failure.UpstreamUnavailable(nil))
}
