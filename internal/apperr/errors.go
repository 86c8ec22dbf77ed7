// Package apperr defines the errors that leave the diagnosis pipeline and
// the HTTP status each one maps to.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrUpstream            = errors.New("upstream error")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrTimeout             = errors.New("upstream timeout")
	ErrGenerator           = errors.New("explanation generator error")
	ErrInternal            = errors.New("internal error")
)

// Codes.
const (
	CodeValidation          = "VALIDATION_FAILED"
	CodeNotFound            = "NOT_FOUND"
	CodeUpstream            = "UPSTREAM_ERROR"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeTimeout             = "UPSTREAM_TIMEOUT"
	CodeGenerator           = "EXPLANATION_UNAVAILABLE"
	CodeInternal            = "INTERNAL_ERROR"
)

// AppError carries a user-facing message. Err holds the cause, which is logged
// but never sent to the caller.
type AppError struct {
	Err        error
	Kind       error
	Message    string
	Code       string
	HTTPStatus int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is matches the kind sentinel as well as the wrapped cause.
func (e *AppError) Is(target error) bool {
	return target == e.Kind
}

func Validation(message string) *AppError {
	return &AppError{
		Kind:       ErrValidation,
		Message:    message,
		Code:       CodeValidation,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NotFound(message string) *AppError {
	return &AppError{
		Kind:       ErrNotFound,
		Message:    message,
		Code:       CodeNotFound,
		HTTPStatus: http.StatusNotFound,
	}
}

// Upstream reports a non-2xx answer from the predictor. The upstream status is
// passed through unchanged.
func Upstream(status int, detail string) *AppError {
	return &AppError{
		Kind:       ErrUpstream,
		Message:    detail,
		Code:       CodeUpstream,
		HTTPStatus: status,
	}
}

func UpstreamUnavailable(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Kind:       ErrUpstreamUnavailable,
		Message:    message,
		Code:       CodeUpstreamUnavailable,
		HTTPStatus: http.StatusBadGateway,
	}
}

func Timeout(target string, err error, message string) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%s: %w", target, err),
		Kind:       ErrTimeout,
		Message:    message,
		Code:       CodeTimeout,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

func Generator(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Kind:       ErrGenerator,
		Message:    message,
		Code:       CodeGenerator,
		HTTPStatus: http.StatusBadGateway,
	}
}

func Internal(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Kind:       ErrInternal,
		Message:    message,
		Code:       CodeInternal,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// From maps any error to an AppError. Unknown errors become Internal with the
// given generic message.
func From(err error, generic string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err, generic)
}
