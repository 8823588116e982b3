package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}

	tests := []struct {
		name        string
		err         *Error
		wantKind    Kind
		wantMessage string
	}{
		{
			name:        "connection refused",
			err:         &Error{Message: refused.Error(), Err: refused},
			wantKind:    KindUnreachable,
			wantMessage: MessageUnreachable,
		},
		{
			name:        "network unreachable",
			err:         &Error{Message: "unreachable", Err: fmt.Errorf("wrapped: %w", syscall.ENETUNREACH)},
			wantKind:    KindUnreachable,
			wantMessage: MessageUnreachable,
		},
		{
			name:        "dns failure",
			err:         &Error{Message: "lookup", Err: &net.DNSError{Err: "no such host", Name: "advisor.invalid"}},
			wantKind:    KindUnreachable,
			wantMessage: MessageUnreachable,
		},
		{
			name:        "http 500",
			err:         &Error{Status: 500, Message: "request failed with status code 500"},
			wantKind:    KindServerFault,
			wantMessage: MessageServerFault,
		},
		{
			name:        "http 404",
			err:         &Error{Status: 404, Message: "request failed with status code 404"},
			wantKind:    KindNotFound,
			wantMessage: MessageNotFound,
		},
		{
			name:        "other status passes through",
			err:         &Error{Status: 422, Message: "request failed with status code 422"},
			wantKind:    KindUnknown,
			wantMessage: "request failed with status code 422",
		},
		{
			name:        "timeout passes through",
			err:         &Error{Message: "i/o timeout", Err: &net.OpError{Op: "dial", Err: timeoutErr{}}},
			wantKind:    KindUnknown,
			wantMessage: "i/o timeout",
		},
		{
			name:        "deadline exceeded",
			err:         &Error{Message: "context deadline exceeded", Err: context.DeadlineExceeded},
			wantKind:    KindUnknown,
			wantMessage: "context deadline exceeded",
		},
		{
			name:        "empty message gets a description",
			err:         &Error{Status: 418},
			wantKind:    KindUnknown,
			wantMessage: "request failed with status code 418",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.Same(t, tt.err, got, "Classify must rewrite in place")
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantMessage, got.Message)
		})
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("chat request failed: %w", &Error{Kind: KindNotFound, Message: MessageNotFound})

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Unreachable", KindUnreachable.String())
	assert.Equal(t, "ServerFault", KindServerFault.String())
	assert.Equal(t, "NotFound", KindNotFound.String())
	assert.Equal(t, "Unknown", KindUnknown.String())
}
