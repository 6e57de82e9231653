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
	Set(name, value string)
	PromptSecret(name string)
	Start(ctx context.Context)
	Describe() string
}

// runREPL starts a simple read–eval–print loop for the migration wizard.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on scanner EOF
// or when the user types "exit" or "quit".
//
// Commands:
//
//	set <parameter> <value>  — update a connection parameter
//	set password             — update the password with hidden input
//	start                    — wipe the destination and run the migration
//	status | help            — show the wizard text with current values
//	exit | quit              — leave the program
//
// Any other input prints the wizard text so the operator always sees the
// current (masked) configuration.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn("mpdb> ")
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "set":
			switch {
			case len(parts) == 2 && parts[1] == "password":
				a.PromptSecret("password")
			case len(parts) == 3:
				a.Set(parts[1], parts[2])
			default:
				printlnFn("Usage: set <parameter> <value>")
			}

		case "start":
			a.Start(ctx)

		case "status", "help":
			printlnFn(a.Describe())

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn(a.Describe())
		}
	}
}
