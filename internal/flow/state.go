package flow

import (
	"fmt"
	"strings"
)

// Mode selects which form is logically active.
type Mode string

const (
	ModeSignIn        Mode = "signin"
	ModeCreateAccount Mode = "create-account"
)

// ParseMode accepts the canonical names plus a few aliases used in configs.
// The empty string parses to the empty Mode (meaning "not set").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "signin", "sign-in", "login":
		return ModeSignIn, nil
	case "create-account", "createaccount", "join", "signup":
		return ModeCreateAccount, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Valid reports whether m is one of the two known modes.
func (m Mode) Valid() bool {
	return m == ModeSignIn || m == ModeCreateAccount
}

// Other returns the opposite mode.
func (m Mode) Other() Mode {
	if m == ModeCreateAccount {
		return ModeSignIn
	}
	return ModeCreateAccount
}

type phase int

const (
	phaseIdle phase = iota
	phaseSubmitting
)

// State is a snapshot of the flow state. Error is empty when absent.
type State struct {
	Mode         Mode
	Email        string
	Submitting   bool
	Error        string
	UnknownEmail bool
}

// HasError reports whether a user-visible error is recorded.
func (s State) HasError() bool {
	return s.Error != ""
}
