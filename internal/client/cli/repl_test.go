package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) HashPassword(context.Context) error  { return f.record("hash-password") }
func (f *fakeExec) Refresh(context.Context) error       { return f.record("refresh") }
func (f *fakeExec) Installations(context.Context) error { return f.record("installations") }
func (f *fakeExec) Accounts(context.Context) error      { return f.record("accounts") }
func (f *fakeExec) Search(_ context.Context, q string) error {
	return f.record("search:" + q)
}
func (f *fakeExec) StatusFilter(_ context.Context, s string) error {
	return f.record("status-filter:" + s)
}
func (f *fakeExec) Calendar(context.Context) error  { return f.record("calendar") }
func (f *fakeExec) NextMonth(context.Context) error { return f.record("next") }
func (f *fakeExec) PrevMonth(context.Context) error { return f.record("prev") }
func (f *fakeExec) Today(context.Context) error     { return f.record("today") }
func (f *fakeExec) SetStatus(_ context.Context, id string, status models.InstallationStatus) error {
	return f.record(string(status) + ":" + id)
}
func (f *fakeExec) Toggle(_ context.Context, id string) error { return f.record("toggle:" + id) }
func (f *fakeExec) Move(_ context.Context, id, date string) error {
	return f.record("move:" + id + ":" + date)
}
func (f *fakeExec) Attachments(_ context.Context, id string) error {
	return f.record("attachments:" + id)
}

func (f *fakeExec) Download(_ context.Context, id, fileName string) error {
	return f.record("download:" + id + ":" + fileName)
}

func lines(cmds ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(cmds, "\n") + "\n"))
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silencePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, lines(
		"help",
		"login",
		"help",
		"i",
		"accounts",
		"search main  st",
		"status-filter pending",
		"calendar",
		"next",
		"prev",
		"today",
		"complete i1",
		"cancel i2",
		"toggle a1",
		"move i1 2026-10-22",
		"attachments i1",
		"download i1 timing.csv",
		"refresh",
		"logout",
		"exit",
		"login",
	))

	assert.Equal(t, []string{
		"login", "installations", "accounts", "search:main st", "status-filter:pending",
		"calendar", "next", "prev", "today", "completed:i1", "cancelled:i2", "toggle:a1",
		"move:i1:2026-10-22", "attachments:i1", "download:i1:timing.csv", "refresh", "logout",
	}, exec.calls)
}

func TestRunREPL_RequiresLogin(t *testing.T) {
	out := silencePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, lines("installations", "move i1 2026-10-22", "foobar", "quit"))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Please login first")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_UsageAndErrors(t *testing.T) {
	out := silencePrintln(t)

	exec := &fakeExec{loggedIn: true, err: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "" }, lines("complete", "move i1", "status-filter", "toggle a1"))

	assert.Equal(t, []string{"toggle:a1"}, exec.calls)
	assert.Contains(t, *out, "Usage: complete <id>")
	assert.Contains(t, *out, "Usage: move <id> <YYYY-MM-DD>")
	assert.Contains(t, *out, "Error: boom")
}

func TestRunREPL_HashPasswordWithoutLogin(t *testing.T) {
	silencePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, lines("hash-password"))
	assert.Equal(t, []string{"hash-password"}, exec.calls)
}

func TestRunREPL_StopsOnCancel(t *testing.T) {
	silencePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, lines("login"))
	assert.Empty(t, exec.calls)
}
