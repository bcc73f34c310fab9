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
	isLoggedIn() bool
	Login(ctx context.Context) error
	Report(ctx context.Context) error
	List(ctx context.Context) error
	Pending(ctx context.Context) error
	Sync(ctx context.Context) error
	Root(ctx context.Context) error
	Action(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the field agent CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	Not logged in:
//	  - help          : show available commands
//	  - login         : authenticate with phone number and PIN
//	  - exit | quit   : leave the program
//
//	Logged in:
//	  - help          : show available commands
//	  - report        : capture a field report
//	  - (l)ist        : list reports from the remote store
//	  - pending       : show the pending-sync count
//	  - sync          : drain the offline queue
//	  - root          : start a root session (root PIN)
//	  - action        : run a privileged action
//	  - exit | quit   : leave the program
//
// Any errors returned by command handlers are ignored here; handlers log
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("agent %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: report, (l)ist, pending, sync, root, action, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "report":
			_ = a.Report(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "pending":
			_ = a.Pending(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "root":
			_ = a.Root(ctx)

		case "action":
			_ = a.Action(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
