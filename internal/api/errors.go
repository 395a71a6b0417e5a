package api

import (
	"fmt"
	"strings"
)

// NetworkError wraps transport-level failures: connection errors, timeouts,
// or responses that could not be decoded at all.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a well-formed backend refusal: success=false with a message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error (status %d)", e.Status)
	}
	return e.Message
}

// ValidationError carries the backend's field rejection messages verbatim.
// Mapping messages back onto form fields is the caller's concern.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// NotFoundError reports an update against an id that no longer exists.
type NotFoundError struct {
	Kind Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
