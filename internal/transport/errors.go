package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// Kind is the user-facing category of a transport failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnreachable
	KindServerFault
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "Unreachable"
	case KindServerFault:
		return "ServerFault"
	case KindNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// User-facing messages written by Classify.
const (
	MessageUnreachable = "server is not reachable"
	MessageServerFault = "server error, retry later"
	MessageNotFound    = "endpoint not found"
)

// Error is a failed gateway call. Message starts out as the raw failure
// description and is rewritten in place by Classify.
type Error struct {
	Kind    Kind
	Message string
	Method  string
	Path    string
	Status  int    // 0 when no response was received
	Body    []byte // response body, if any
	Err     error  // underlying transport error, if any
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var terr *Error
	if errors.As(err, &terr) {
		return terr, true
	}
	return nil, false
}

// KindOf returns the classified kind of err, or KindUnknown.
func KindOf(err error) Kind {
	if terr, ok := AsError(err); ok {
		return terr.Kind
	}
	return KindUnknown
}

// Classify assigns a Kind to e and rewrites its Message accordingly.
// Every failure lands in exactly one kind; Unknown keeps the original message.
func Classify(e *Error) *Error {
	switch {
	case e.Status == http.StatusInternalServerError:
		e.Kind = KindServerFault
		e.Message = MessageServerFault
	case e.Status == http.StatusNotFound:
		e.Kind = KindNotFound
		e.Message = MessageNotFound
	case e.Status == 0 && isUnreachable(e.Err):
		e.Kind = KindUnreachable
		e.Message = MessageUnreachable
	default:
		e.Kind = KindUnknown
		if e.Message == "" {
			e.Message = rawMessage(e)
		}
	}
	return e
}

// isUnreachable reports connection-level failures. Timeouts are excluded and
// fall through to Unknown.
func isUnreachable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	return false
}

func rawMessage(e *Error) string {
	if e.Status != 0 {
		return fmt.Sprintf("request failed with status code %d", e.Status)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "request failed"
}
