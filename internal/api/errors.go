package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means the bearer credential was rejected. It is
	// the signal for forcing re-authentication; no silent refresh is
	// attempted here.
	ErrUnauthorized = errors.New("unauthorized: session expired or invalid")

	// ErrNotFound means the entity no longer exists on the backend,
	// typically deleted by another session.
	ErrNotFound = errors.New("not found")
)

// ServerError is a non-2xx response that isn't a 401 or 404, carrying
// whatever message the backend included.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Message)
}

// NetworkError is a transport-level failure: the request never
// produced an HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
