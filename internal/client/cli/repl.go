package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	SetEmail(email string)
	SignIn(ctx context.Context) error
	Join(ctx context.Context) error
	Switch(ctx context.Context) error
	PrintStatus()
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
//	help           show available commands
//	email <addr>   set the email draft
//	signin         request a sign-in link
//	join           create a profile
//	switch         go to the other form
//	status         show the flow state
//	exit | quit    leave the program
//
// Errors returned by command handlers are not printed here; handlers report
// to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("join %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: email <addr>, signin, join, switch, status, exit")

		case "email":
			if len(args) != 1 {
				printlnFn("Usage: email <addr>")
				continue
			}
			a.SetEmail(args[0])

		case "signin":
			_ = a.SignIn(ctx)

		case "join":
			_ = a.Join(ctx)

		case "switch":
			_ = a.Switch(ctx)

		case "status":
			a.PrintStatus()

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
