package client

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a failed backend call.
type Kind int

const (
	KindAuthentication Kind = iota + 1
	KindRateLimit
	KindAPI
	KindServer
	KindTimeout
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindRateLimit:
		return "rate_limit"
	case KindAPI:
		return "api"
	case KindServer:
		return "server"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Sentinels matched by (*Error).Is, one per Kind.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrRateLimited    = errors.New("rate limit exceeded")
	ErrAPI            = errors.New("api error")
	ErrServer         = errors.New("server error")
	ErrTimeout        = errors.New("request timed out")
	ErrNetwork        = errors.New("network error")

	// ErrClosed is wrapped by the error returned from a closed client.
	ErrClosed = errors.New("client is closed")
)

// Error is the classified failure of a backend call.
type Error struct {
	Kind       Kind
	Message    string
	Details    any
	StatusCode int           // 0 when no response was received
	RetryAfter time.Duration // RateLimit only, 0 when the header is absent
	Err        error         // underlying transport or context error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindAuthentication:
		return target == ErrAuthentication
	case KindRateLimit:
		return target == ErrRateLimited
	case KindAPI:
		return target == ErrAPI
	case KindServer:
		return target == ErrServer
	case KindTimeout:
		return target == ErrTimeout
	case KindNetwork:
		return target == ErrNetwork
	}
	return false
}

// Retryable reports whether the failure is transient.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindServer, KindTimeout, KindNetwork:
		return true
	default:
		return false
	}
}

func newHTTPError(kind Kind, status int, message string, details any) *Error {
	return &Error{Kind: kind, StatusCode: status, Message: message, Details: details}
}

func timeoutError(timeout time.Duration, err error) *Error {
	return &Error{
		Kind:    KindTimeout,
		Message: fmt.Sprintf("Request timed out after %gs", timeout.Seconds()),
		Err:     err,
	}
}

func networkError(err error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: fmt.Sprintf("Network error: %v", err),
		Err:     err,
	}
}
