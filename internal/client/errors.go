package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Error classes. Every error returned by Client matches exactly one of these
// with errors.Is. Requests that cannot be built locally count as
// ErrValidation.
var (
	ErrValidation          = errors.New("request rejected")
	ErrAuth                = errors.New("not authenticated")
	ErrNotFoundOrForbidden = errors.New("not found or not owned by caller")
	ErrTransient           = errors.New("transient network error")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("status %d: %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

// Unwrap returns the error class for the status code.
func (e *APIError) Unwrap() error {
	return classify(e.StatusCode)
}

func classify(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrAuth
	case status == http.StatusForbidden, status == http.StatusNotFound:
		return ErrNotFoundOrForbidden
	case status >= 500:
		return ErrTransient
	default:
		return ErrValidation
	}
}
