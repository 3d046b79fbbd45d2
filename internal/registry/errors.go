package registry

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the index has no record of a package.
var ErrNotFound = errors.New("not found")

// ErrUnavailable is returned when the index is down or the circuit
// breaker is refusing requests to it.
var ErrUnavailable = errors.New("package index unavailable")

// HTTPError represents a non-2xx response from the index.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.URL)
}

// IsNotFound returns true if the error represents a 404 response.
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == 404
}

// NotFoundError wraps ErrNotFound with the package that was missing.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("package %s not found on index", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
