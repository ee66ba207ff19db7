package api

import (
	"errors"
	"fmt"
)

// Error is a sentinel error type for transport/session failures.
type Error string

const (
	ErrNoSession      = Error("no active session, run: sigap login")
	ErrNoToken        = Error("session has no token")
	ErrSessionExpired = Error("session has expired, run: sigap login")
	ErrNoConnection   = Error("no connection to server")
	ErrInvalidServer  = Error("invalid server profile")
)

func (e Error) Error() string {
	return string(e)
}

// StatusError carries a non-2xx response. Message is the server-supplied
// message and is shown to the user verbatim.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// IsAuthError returns true if err denotes a rejected or missing credential.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, ErrNoSession), errors.Is(err, ErrNoToken), errors.Is(err, ErrSessionExpired):
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == 401 || se.StatusCode == 403
	}
	return false
}
