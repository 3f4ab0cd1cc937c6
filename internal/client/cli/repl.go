package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ShowSettings(ctx context.Context) error
	Set(ctx context.Context, args []string) error
	FetchDerivatives(ctx context.Context) error
	Sync(ctx context.Context) error
	Status(ctx context.Context) error
	Ping(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit". Command
// errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("bynder %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("Error:", err)
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: settings, set <field> [value], derivatives, sync, status, ping, logout, exit")
			} else {
				printlnFn("Available commands: login, ping, exit")
			}

		case "login":
			cmdErr = a.Login(ctx)

		case "ping":
			cmdErr = a.Ping(ctx)

		case "logout", "settings", "set", "derivatives", "sync", "status":
			if !a.isLoggedIn() {
				cmdErr = errLoginRequired
				break
			}
			switch cmd {
			case "logout":
				cmdErr = a.Logout(ctx)
			case "settings":
				cmdErr = a.ShowSettings(ctx)
			case "set":
				cmdErr = a.Set(ctx, args)
			case "derivatives":
				cmdErr = a.FetchDerivatives(ctx)
			case "sync":
				cmdErr = a.Sync(ctx)
			case "status":
				cmdErr = a.Status(ctx)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
