package client

import (
	"errors"
	"fmt"
)

// APIError is the error type for every failed request. Status is the HTTP
// status code, or 0 when the transport itself failed (connection refused,
// DNS, timeout) before a status was received.
type APIError struct {
	Status  int
	Message string
	cause   error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("request failed: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.cause }

// IsNotFound reports whether the error should take the not-found fallback
// path: an explicit 404, or an unreachable backend (status 0). Legacy service
// variants serve locally cached data in both cases instead of surfacing the
// error.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == 404 || apiErr.Status == 0
}
