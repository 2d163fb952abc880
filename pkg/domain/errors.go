package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyActionKey is returned when an action is run without a key.
var ErrEmptyActionKey = errors.New("action key is required")

// ErrBackendUnreachable wraps transport failures (connection refused, DNS, reset).
var ErrBackendUnreachable = errors.New("backend unreachable")

// ErrMalformedResponse is returned when a response body does not match the expected shape.
var ErrMalformedResponse = errors.New("malformed response")

// ErrEmptyTitle is returned when a todo title is blank after trimming.
var ErrEmptyTitle = errors.New("todo title is empty")

// ErrUnknownOperation is returned for calculator operations outside add/subtract/multiply/divide.
var ErrUnknownOperation = errors.New("unknown operation")

// ErrActionPanicked is the cause recorded when an action function panics.
var ErrActionPanicked = errors.New("action panicked")

// ErrTodoNotFound is returned by todo stores when the id does not exist.
var ErrTodoNotFound = errors.New("todo not found")

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}
