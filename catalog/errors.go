package catalog

import (
	"context"
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidCategory indicates an unknown content category
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidLimit indicates a list limit below one
	ErrInvalidLimit = errors.New("limit must be at least 1")
	// ErrInvalidID indicates a title ID below one
	ErrInvalidID = errors.New("title id must be at least 1")
	// ErrMissingAPIKey indicates the client was configured without an API key
	ErrMissingAPIKey = errors.New("catalog API key is required")
)

// ErrorKind classifies catalog failures
type ErrorKind int

const (
	// KindInvalidRequest means the request could not be formed; nothing was sent
	KindInvalidRequest ErrorKind = iota + 1
	// KindTransport means the round trip failed before a response was read
	KindTransport
	// KindServerStatus means the API answered with a non-2xx status
	KindServerStatus
	// KindDecode means the response body did not have the expected shape
	KindDecode
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindTransport:
		return "transport"
	case KindServerStatus:
		return "server_status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Retryable reports whether retrying the same request can succeed.
// Invalid requests need different input first.
func (k ErrorKind) Retryable() bool {
	return k == KindTransport || k == KindServerStatus || k == KindDecode
}

// Error represents a failed catalog operation
type Error struct {
	Kind       ErrorKind
	Op         string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Kind == KindServerStatus && e.Message != "":
		return fmt.Sprintf("catalog %s: server error with code %d: %s", e.Op, e.StatusCode, e.Message)
	case e.Kind == KindServerStatus:
		return fmt.Sprintf("catalog %s: server error with code %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("catalog %s: %s: %v", e.Op, e.Message, e.Err)
	default:
		return fmt.Sprintf("catalog %s: %s", e.Op, e.Message)
	}
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error is a 404 response
func (e *Error) IsNotFound() bool {
	return e.Kind == KindServerStatus && e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates a rejected API key
func (e *Error) IsUnauthorized() bool {
	return e.Kind == KindServerStatus && (e.StatusCode == 401 || e.StatusCode == 403)
}

// KindOf returns the kind of a catalog error. Context cancellation and
// unrecognised errors are treated as transport failures; nil yields zero.
func KindOf(err error) ErrorKind {
	if err == nil {
		return 0
	}
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return KindTransport
}

// StatusCode returns the HTTP status carried by a ServerStatus error, or 0
func StatusCode(err error) int {
	var cerr *Error
	if errors.As(err, &cerr) && cerr.Kind == KindServerStatus {
		return cerr.StatusCode
	}
	return 0
}

func invalidRequest(op string, err error) *Error {
	return &Error{Kind: KindInvalidRequest, Op: op, Message: "invalid request", Err: err}
}

func transportError(op string, err error) *Error {
	msg := "network error"
	if errors.Is(err, context.Canceled) {
		msg = "request cancelled"
	} else if errors.Is(err, context.DeadlineExceeded) {
		msg = "request timed out"
	}
	return &Error{Kind: KindTransport, Op: op, Message: msg, Err: err}
}

func statusError(op string, code int, body string) *Error {
	return &Error{Kind: KindServerStatus, Op: op, StatusCode: code, Message: body}
}

func decodeError(op string, err error) *Error {
	return &Error{Kind: KindDecode, Op: op, Message: "failed to decode response", Err: err}
}
