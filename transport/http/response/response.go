package response

import (
	"encoding/json"
	"net/http"
	"parkflow/shared/constant"
	"parkflow/shared/failure"
	"parkflow/shared/logger"
)

// Envelopes written by every endpoint. Exactly one of data, error or message
// is present in a body.
type (
	Data[T any] struct {
		Data *T `json:"data,omitempty"`
	}

	Error struct {
		Error *string `json:"error,omitempty"`
	}

	Message struct {
		Message *string `json:"message,omitempty"`
	}
)

func WithJSON(w http.ResponseWriter, code int, payload any) {
	write(w, code, Data[any]{Data: &payload})
}

func WithMessage(w http.ResponseWriter, code int, message string) {
	write(w, code, Message{Message: &message})
}

// WithError answers with the status of a failure.Failure, or 500. Messages
// of unexpected errors are not leaked to the client.
func WithError(w http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = http.StatusText(code)
	}

	write(w, code, Error{Error: &message})
}

func WithRequestLimitExceeded(w http.ResponseWriter) {
	WithMessage(w, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(w http.ResponseWriter) {
	WithMessage(w, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(w http.ResponseWriter) {
	WithMessage(w, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	w.WriteHeader(code)

	if _, err := w.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
