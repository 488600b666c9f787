// Package loadstate implements the observable load/error/success state that
// the list and detail views render.
//
// A Controller owns one State at a time and moves it through
//
//	Idle -> Loading -> Loaded(data) | Failed(error)
//
// Load, Refresh and Retry all restart the cycle. Starting a new load cancels
// the one in flight, and a superseded load can never overwrite the state
// produced by a newer one. Observers either poll State or Subscribe to
// receive every committed state.
package loadstate

import (
	"fmt"

	"github.com/s0up4200/titlewatch/catalog"
)

// Status is the active variant of a State
type Status int

const (
	// StatusIdle means nothing has been loaded yet
	StatusIdle Status = iota
	// StatusLoading means a load is in flight
	StatusLoading
	// StatusLoaded means the last load succeeded and Data is valid
	StatusLoaded
	// StatusFailed means the last load failed and Err is set
	StatusFailed
)

// String returns the string representation of a Status
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of a controller. Only a Loaded state carries Data and
// only a Failed state carries Err.
type State[T any] struct {
	Status Status
	Data   T
	Err    *ErrorInfo
	// Seq is the load generation that produced the state; Idle is 0.
	Seq uint64
}

// Idle returns the initial state
func Idle[T any]() State[T] {
	return State[T]{Status: StatusIdle}
}

// Loading returns the in-flight state of load seq
func Loading[T any](seq uint64) State[T] {
	return State[T]{Status: StatusLoading, Seq: seq}
}

// Loaded returns the successful state of load seq
func Loaded[T any](seq uint64, data T) State[T] {
	return State[T]{Status: StatusLoaded, Data: data, Seq: seq}
}

// Failed returns the failed state of load seq
func Failed[T any](seq uint64, info *ErrorInfo) State[T] {
	return State[T]{Status: StatusFailed, Err: info, Seq: seq}
}

// IsLoading checks if a load is in flight
func (s State[T]) IsLoading() bool { return s.Status == StatusLoading }

// IsLoaded checks if Data is valid
func (s State[T]) IsLoaded() bool { return s.Status == StatusLoaded }

// IsFailed checks if Err is set
func (s State[T]) IsFailed() bool { return s.Status == StatusFailed }

// ErrorInfo is the user-facing description of a failed load
type ErrorInfo struct {
	Kind       catalog.ErrorKind
	StatusCode int
	Message    string
	// Err is the original error, kept for logging
	Err error
}

// NewErrorInfo classifies err for display. Errors that are not catalog
// errors are reported as transport failures.
func NewErrorInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}

	info := &ErrorInfo{
		Kind:       catalog.KindOf(err),
		StatusCode: catalog.StatusCode(err),
		Err:        err,
	}

	switch info.Kind {
	case catalog.KindInvalidRequest:
		info.Message = fmt.Sprintf("Invalid request: %v", err)
	case catalog.KindServerStatus:
		info.Message = fmt.Sprintf("Server error with code: %d", info.StatusCode)
	case catalog.KindDecode:
		info.Message = "Failed to decode response"
	default:
		info.Message = fmt.Sprintf("Network error: %v", err)
	}

	return info
}

// Error implements the error interface
func (e *ErrorInfo) Error() string {
	return e.Message
}

// Unwrap returns the original error
func (e *ErrorInfo) Unwrap() error {
	return e.Err
}

// Retryable checks if retrying without changing input can help
func (e *ErrorInfo) Retryable() bool {
	return e.Kind.Retryable()
}
