package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/sitereg/internal/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	HashPassword(ctx context.Context) error
	Refresh(ctx context.Context) error
	Installations(ctx context.Context) error
	Accounts(ctx context.Context) error
	Search(ctx context.Context, q string) error
	StatusFilter(ctx context.Context, s string) error
	Calendar(ctx context.Context) error
	NextMonth(ctx context.Context) error
	PrevMonth(ctx context.Context) error
	Today(ctx context.Context) error
	SetStatus(ctx context.Context, id string, status models.InstallationStatus) error
	Toggle(ctx context.Context, id string) error
	Move(ctx context.Context, id, date string) error
	Attachments(ctx context.Context, id string) error
	Download(ctx context.Context, id, fileName string) error
}

const (
	helpLoggedOut = "Available commands: login, hash-password, exit"
	helpLoggedIn  = "Available commands: (i)nstallations, (a)ccounts, search <text>, status-filter <status|all>, " +
		"(c)alendar, next, prev, today, complete <id>, cancel <id>, toggle <id>, move <id> <YYYY-MM-DD>, " +
		"attachments <id>, download <id> <file>, refresh, logout, hash-password, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
//
// The first token is the command, the rest are its arguments. Commands that
// touch the dashboard require a session; without one the user is asked to
// log in. The loop exits on EOF, on ctx cancellation, or when the user types
// "exit" or "quit". Handler errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("sitereg %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if quit := dispatch(ctx, a, cmd, args); quit {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) (quit bool) {
	report := func(err error) {
		if err != nil {
			printlnFn("Error:", err)
		}
	}
	needID := func(usage string, run func(id string) error) {
		if len(args) != 1 {
			printlnFn("Usage:", usage)
			return
		}
		report(run(args[0]))
	}

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return false
	case "exit", "quit":
		printlnFn("Bye!")
		return true
	case "login":
		report(a.Login(ctx))
		return false
	case "hash-password":
		report(a.HashPassword(ctx))
		return false
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "logout", "refresh", "i", "installations", "a", "accounts", "search", "status-filter",
			"c", "calendar", "next", "prev", "today", "complete", "cancel", "toggle", "move", "attachments", "download":
			printlnFn("Please login first")
		default:
			printlnFn("Unknown command:", cmd)
		}
		return false
	}

	switch cmd {
	case "logout":
		report(a.Logout(ctx))
	case "refresh":
		report(a.Refresh(ctx))
	case "i", "installations":
		report(a.Installations(ctx))
	case "a", "accounts":
		report(a.Accounts(ctx))
	case "search":
		report(a.Search(ctx, strings.Join(args, " ")))
	case "status-filter":
		if len(args) != 1 {
			printlnFn("Usage: status-filter <pending|completed|cancelled|active|inactive|all>")
			return false
		}
		report(a.StatusFilter(ctx, args[0]))
	case "c", "calendar":
		report(a.Calendar(ctx))
	case "next":
		report(a.NextMonth(ctx))
	case "prev":
		report(a.PrevMonth(ctx))
	case "today":
		report(a.Today(ctx))
	case "complete":
		needID("complete <id>", func(id string) error { return a.SetStatus(ctx, id, models.InstallationCompleted) })
	case "cancel":
		needID("cancel <id>", func(id string) error { return a.SetStatus(ctx, id, models.InstallationCancelled) })
	case "toggle":
		needID("toggle <id>", func(id string) error { return a.Toggle(ctx, id) })
	case "attachments":
		needID("attachments <id>", func(id string) error { return a.Attachments(ctx, id) })
	case "move":
		if len(args) != 2 {
			printlnFn("Usage: move <id> <YYYY-MM-DD>")
			return false
		}
		report(a.Move(ctx, args[0], args[1]))
	case "download":
		if len(args) != 2 {
			printlnFn("Usage: download <id> <file>")
			return false
		}
		report(a.Download(ctx, args[0], args[1]))
	default:
		printlnFn("Unknown command:", cmd)
	}
	return false
}
