package flow

import (
	"errors"
	"strings"
)

var (
	ErrInvalidMode = errors.New("invalid mode")
	ErrModeFixed   = errors.New("mode is fixed by the host")
	ErrSubmitting  = errors.New("a submission is in flight")
)

const (
	genericServerError = "Server error"
	graphQLErrorPrefix = "GraphQL error: "
	plainErrorPrefix   = "Error: "
)

// userMessager is implemented by transport errors that carry a message
// meant for the user, separate from their wrapped diagnostic text.
type userMessager interface {
	UserMessage() string
}

// NormalizeError turns a remote failure into the message shown to the user.
// A missing message becomes "Server error", and the "GraphQL error: "
// marker becomes "Error: ".
func NormalizeError(err error) string {
	if err == nil {
		return genericServerError
	}

	msg := err.Error()
	var um userMessager
	if errors.As(err, &um) {
		msg = um.UserMessage()
	}

	if strings.TrimSpace(msg) == "" {
		return genericServerError
	}
	return strings.Replace(msg, graphQLErrorPrefix, plainErrorPrefix, 1)
}
