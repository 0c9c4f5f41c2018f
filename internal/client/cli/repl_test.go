package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	calls []string
	email string
}

func (f *fakeExec) SetEmail(email string) {
	f.calls = append(f.calls, "email")
	f.email = email
}
func (f *fakeExec) SignIn(ctx context.Context) error {
	f.calls = append(f.calls, "signin")
	return nil
}
func (f *fakeExec) Join(ctx context.Context) error {
	f.calls = append(f.calls, "join")
	return nil
}
func (f *fakeExec) Switch(ctx context.Context) error {
	f.calls = append(f.calls, "switch")
	return nil
}
func (f *fakeExec) PrintStatus() { f.calls = append(f.calls, "status") }

func silence(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		for _, v := range a {
			if s, ok := v.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &printed
}

func TestRunREPL_Commands(t *testing.T) {
	silence(t)

	input := bufio.NewReader(strings.NewReader(strings.Join([]string{
		"help",
		"email a@b.com",
		"signin",
		"",
		"switch",
		"join",
		"status",
		"foobar",
		"exit",
		"signin",
	}, "\n")))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, input)

	require.Equal(t, []string{"email", "signin", "switch", "join", "status"}, exec.calls)
	require.Equal(t, "a@b.com", exec.email)
}

func TestRunREPL_UsageAndEOF(t *testing.T) {
	printed := silence(t)

	input := bufio.NewReader(strings.NewReader("email\nemail a b\nsignin"))
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, input)

	require.Equal(t, []string{"signin"}, exec.calls)
	require.Contains(t, *printed, "Usage: email <addr>")
}
