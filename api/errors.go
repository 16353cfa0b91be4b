package api

import (
	"fmt"
	"strings"
)

// StatusError is a non-2xx response that is not a validation failure. Detail
// carries the server's error message when the payload provided one.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}

// ValidationError aggregates the per-field messages of a 422 response whose
// detail payload is list-shaped.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}
