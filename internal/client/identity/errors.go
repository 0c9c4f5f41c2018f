package identity

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
)

var ErrUnavailable = errors.New("server unavailable")

// RemoteError is a failure reported by the identity server. Message is the
// server's user-facing text.
type RemoteError struct {
	Code    codes.Code
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("rpc error: code = %s desc = %s", e.Code, e.Message)
}

func (e *RemoteError) UserMessage() string {
	return e.Message
}
