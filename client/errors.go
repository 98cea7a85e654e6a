package client

import (
	"errors"
	"fmt"
)

// ErrLoginInFlight is returned while a login or registration round-trip is
// still pending. The caller should keep the form disabled rather than retry.
var ErrLoginInFlight = errors.New("authentication request already in flight")

// ErrSuperseded is returned when a login response arrives after a logout (or
// a newer login) has already been committed; the response is discarded.
var ErrSuperseded = errors.New("login superseded by a later session change")

// ValidationError reports malformed credentials caught before sending.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// BackendError is a non-2xx response, carrying the server-supplied detail
// message when one was present.
type BackendError struct {
	StatusCode int
	Detail     string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error (%d): %s", e.StatusCode, e.Detail)
}

// NetworkError means the request could not be sent or the response not
// received. The operation is abandoned; no automatic retry is attempted.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
