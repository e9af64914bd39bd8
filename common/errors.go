package common

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Error taxonomy
// --------------------------------------------------------------------------

// ErrClosed is returned for operations on a closed connection and is the
// failure every still-pending request is resolved with at teardown.
var ErrClosed = errors.New("iproto: connection closed")

// ValidationError reports malformed caller arguments. It is local to one
// operation; the connection is unaffected and nothing is written.
type ValidationError struct {
	Reason string
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string {
	return "iproto: invalid request: " + e.Reason
}

// ProtocolError reports a protocol-integrity violation: an unsolicited
// response, a response-type mismatch, or undecodable bytes. It is fatal
// to the connection; no partial trust is retained after a framing
// anomaly.
type ProtocolError struct {
	Reason string
}

func NewProtocolError(format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ProtocolError) Error() string {
	return "iproto: protocol error: " + e.Reason
}

// ServerError is a failure the server declared for one specific request.
// It is delivered to that request's waiter only; the connection remains
// usable.
type ServerError struct {
	Code   uint32
	Reason string
}

func (e *ServerError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("iproto: server error 0x%x", e.Code)
	}
	return fmt.Sprintf("iproto: server error 0x%x: %s", e.Code, e.Reason)
}

// IsFatal reports whether err must terminate the connection.
// Per-request failures (server errors, validation errors) are not fatal;
// everything else that reaches the dispatcher is.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var srvErr *ServerError
	if errors.As(err, &srvErr) {
		return false
	}
	var valErr *ValidationError
	return !errors.As(err, &valErr)
}
