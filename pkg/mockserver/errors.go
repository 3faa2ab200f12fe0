package mockserver

import (
	"fmt"
	"time"
)

// SetupError reports that the endpoint's listener could not be
// established. It is the only error Start returns.
type SetupError struct {
	Cause error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("setting up listener: %s", e.Cause)
}

func (e *SetupError) Unwrap() error {
	return e.Cause
}

// UnexpectedConnectionError reports that a connection was accepted with no
// script left to assign. This is a broken test setup, not a runtime fault:
// the default policy aborts the process.
type UnexpectedConnectionError struct {
	RemoteAddr string
}

func (e *UnexpectedConnectionError) Error() string {
	return fmt.Sprintf("unexpected connection from %s: no script left to assign", e.RemoteAddr)
}

// StreamError reports a read or write failure on an active connection. It
// is connection-local: the connection is destroyed, the server keeps
// running.
type StreamError struct {
	Op    string // "send" or "recv"
	Label string // label of the action that failed
	Cause error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream error in %s %q: %s", e.Op, e.Label, e.Cause)
}

func (e *StreamError) Unwrap() error {
	return e.Cause
}

// TimeoutError reports that a connection exceeded its idle timeout while
// waiting on a blocking action.
type TimeoutError struct {
	Timeout time.Duration
	Label   string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("idle timeout after %v waiting on action %q", e.Timeout, e.Label)
}
