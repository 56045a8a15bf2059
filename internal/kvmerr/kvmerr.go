// Package kvmerr defines the error taxonomy shared by every layer of the
// client. Callers match kinds with errors.Is against the sentinel values
// below; wrapping context is added with fmt.Errorf("...: %w", ...).
package kvmerr

import (
	"errors"
	"fmt"
)

// Sentinel kinds. An error that falls into one of these kinds wraps the
// matching sentinel, so callers can branch with errors.Is regardless of how
// much context has been layered on top. Errors from local encoding,
// transport setup and context cancellation are returned without one.
var (
	// ErrConfigInvalid means a SessionConfig field failed validation
	// before any network activity was attempted.
	ErrConfigInvalid = errors.New("config invalid")

	// ErrAuthFailed means the appliance rejected the login attempt.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrSignallingProtocol means a signalling message violated the
	// expected shape or sequence (wrong message first, malformed SDP,
	// unexpected description type).
	ErrSignallingProtocol = errors.New("signalling protocol violation")

	// ErrSignallingTransport means the underlying HTTP or WebSocket
	// exchange itself failed (dial error, non-2xx status, closed
	// connection) before a protocol violation could even be assessed.
	ErrSignallingTransport = errors.New("signalling transport failure")

	// ErrChannelNotOpen means an RPC or serial call was attempted before
	// the corresponding data channel reached the open state.
	ErrChannelNotOpen = errors.New("channel not open")

	// ErrChannelClosed means the channel closed while a call was
	// in flight or after the session began shutting down.
	ErrChannelClosed = errors.New("channel closed")

	// ErrUnsupportedCharacter means a character has no KeyCombo entry in
	// the selected keyboard layout.
	ErrUnsupportedCharacter = errors.New("unsupported character for layout")

	// ErrRemoteError wraps a JSON-RPC error object returned by the
	// appliance itself, as opposed to a local transport failure.
	ErrRemoteError = errors.New("remote rpc error")

	// ErrNoFrame means no complete video frame arrived before the
	// screenshot deadline.
	ErrNoFrame = errors.New("no frame received before deadline")

	// ErrIO wraps local I/O failures (terminal, file) unrelated to the
	// RTC session itself.
	ErrIO = errors.New("io error")
)

// RemoteError carries the JSON-RPC error object verbatim so callers can
// inspect code/message/data without re-parsing the response.
type RemoteError struct {
	Code    int
	Message string
	Data    any
}

func (e *RemoteError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("remote error %d: %s (data=%v)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("remote error %d: %s", e.Code, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return ErrRemoteError
}

// Wrap annotates err with a message and associates it with kind so that
// errors.Is(result, kind) succeeds regardless of how much context callers
// further down the stack add.
func Wrap(kind error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, kind)
}
