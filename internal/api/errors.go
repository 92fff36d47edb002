package api

import (
	"errors"
	"fmt"
)

// TransportError means no usable response arrived: the request could not be
// sent, the connection failed, or the body was not the JSON we expected.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: request failed", e.Endpoint)
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response. Message is the body's "error" field,
// empty when the body had none.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.Endpoint)
}

// ApplicationError is a 2xx response whose body still carries an "error".
type ApplicationError struct {
	Endpoint string
	Message  string
}

func (e *ApplicationError) Error() string {
	return e.Message
}

func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

func IsStatus(err error) bool {
	var target *StatusError
	return errors.As(err, &target)
}

func IsApplication(err error) bool {
	var target *ApplicationError
	return errors.As(err, &target)
}

// Kind names the failure category of err for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsStatus(err):
		return "status"
	case IsApplication(err):
		return "application"
	default:
		return "transport"
	}
}
