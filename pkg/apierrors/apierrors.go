// Package apierrors defines the status-coded error type shared by
// services and HTTP handlers.
package apierrors

import (
	"errors"
	"net/http"
)

// ApiError carries the HTTP status and machine code a failed
// operation should surface with.
type ApiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ApiError) Error() string {
	return e.Message
}

func New(status int, code, message string) *ApiError {
	return &ApiError{Status: status, Code: code, Message: message}
}

func NotFound(message string) *ApiError {
	return New(http.StatusNotFound, "NOT_FOUND", message)
}

func BadRequest(message string) *ApiError {
	return New(http.StatusBadRequest, "INVALID_REQUEST", message)
}

func Unauthorized(message string) *ApiError {
	return New(http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(message string) *ApiError {
	return New(http.StatusForbidden, "FORBIDDEN", message)
}

func Internal(message string) *ApiError {
	return New(http.StatusInternalServerError, "INTERNAL_ERROR", message)
}

// From unwraps err into an *ApiError when possible
func From(err error) (*ApiError, bool) {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
