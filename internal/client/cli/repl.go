package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Check(ctx context.Context, text string) error
	Dashboard(ctx context.Context) error
	DeleteUser(ctx context.Context, id int64, assumeYes bool) error
	Metrics(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the FraudShield CLI.
//
// It reads a line from reader, which the command prompts share, parses the
// first token as the command, and dispatches to methods on 'a'. The loop
// exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current session (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help          : show available commands
//	  - login         : authenticate
//	  - signup        : create an account
//	  - whoami        : show the session
//	  - metrics       : show request metrics
//	  - exit | quit   : leave the program
//
//	Logged in:
//	  - help          : show available commands
//	  - check [text]  : classify a message (prompts when text is omitted)
//	  - dashboard     : show the dashboard for your role
//	  - delete <id>   : delete a user (admin, asks for confirmation)
//	  - whoami        : show the session
//	  - metrics       : show request metrics
//	  - logout        : log out
//	  - exit | quit   : leave the program
//
// Errors returned by command handlers are printed as a notice and the loop
// continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("fraudshield (%s) > ", statusFn()))
		line, rerr := reader.ReadString('\n')
		if rerr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: check, dashboard, delete <id>, whoami, metrics, logout, exit")
			} else {
				printlnFn("Available commands: login, signup, whoami, metrics, exit")
			}

		case "login":
			err = a.Login(ctx)

		case "signup":
			err = a.Signup(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "check":
			err = a.Check(ctx, strings.Join(args, " "))

		case "dashboard":
			err = a.Dashboard(ctx)

		case "delete":
			if len(args) != 1 {
				printlnFn("Usage: delete <id>")
				continue
			}
			id, perr := strconv.ParseInt(args[0], 10, 64)
			if perr != nil {
				printlnFn("Usage: delete <id>")
				continue
			}
			err = a.DeleteUser(ctx, id, false)

		case "metrics":
			err = a.Metrics(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("!", Notice(err))
		}
	}
}

// Root runs the interactive shell until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to FraudShield (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
