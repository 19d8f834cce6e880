package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Kind classifies a failed remote call
type Kind string

const (
	KindTimeout     Kind = "timeout"
	KindOffline     Kind = "offline"
	KindRateLimited Kind = "rate_limited"
	KindOther       Kind = "other"
)

// Message returns the user-readable text shown for a failure of this kind
func (k Kind) Message() string {
	switch k {
	case KindTimeout:
		return "⏱️ The request timed out. Please try again."
	case KindOffline:
		return "🔌 Cannot reach the chat service. Check your connection, or use local commands (type /help)."
	case KindRateLimited:
		return "🚦 Rate limit exceeded. Please slow down."
	default:
		return "⚠️ Something went wrong while getting a reply. Please try again."
	}
}

// Error is returned by Client.Send for every failure
type Error struct {
	Kind       Kind
	StatusCode int // HTTP status for non-success responses, 0 otherwise
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote %s error (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("remote %s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or KindOther when err is not an *Error
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindOther
}

// classify maps a transport error to an *Error
func classify(ctx context.Context, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindOther, Err: err}
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError
	if errors.As(err, &dnsErr) || errors.As(err, &opErr) ||
		errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ENETUNREACH) || errors.Is(err, syscall.EHOSTUNREACH) {
		return &Error{Kind: KindOffline, Err: err}
	}
	return &Error{Kind: KindOther, Err: err}
}
