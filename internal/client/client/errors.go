package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable        = errors.New("backend not reachable")
	ErrUnexpectedResponse = errors.New("unexpected response")
	ErrUnauthorized       = errors.New("unauthorized")
)

// AuthError is a login or signup failure. Message is what the user sees;
// Err, when set, is the underlying cause.
type AuthError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx reply on an authenticated endpoint.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}
