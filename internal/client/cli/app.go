package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/calendar"
	"github.com/dmitrijs2005/sitereg/internal/client/api"
	"github.com/dmitrijs2005/sitereg/internal/client/board"
	"github.com/dmitrijs2005/sitereg/internal/client/config"
	"github.com/dmitrijs2005/sitereg/internal/logging"
	"github.com/dmitrijs2005/sitereg/internal/models"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// portal is the part of the API client the console drives.
type portal interface {
	board.API
	Ping(ctx context.Context) error
	Login(ctx context.Context, email, password string) (time.Time, error)
	Logout(ctx context.Context) error
	LoggedIn() bool
	Attachments(ctx context.Context, id string) ([]models.Attachment, error)
}

var _ portal = (*api.Client)(nil)

type App struct {
	config *config.Config
	api    portal
	board  *board.Board
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer

	mu       sync.Mutex
	userName string
	Mode     Mode
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	if _, err := url.ParseRequestURI(c.ServerURL); err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", c.ServerURL, err)
	}
	client := api.NewClient(c.ServerURL, c.RequestTimeout)
	return newApp(c, client, logger, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, p portal, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		api:    p,
		board:  board.New(p, calendar.ParseWeekday(c.WeekStart)),
		logger: logger.With("module", "console"),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()
	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", mode)
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

// Run starts the REPL and blocks until the user exits or ctx is done.
// A live session is revoked on the way out.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer func() {
		if !a.isLoggedIn() {
			return
		}
		logoutCtx, cancel := context.WithTimeout(context.Background(), a.config.RequestTimeout)
		defer cancel()
		if err := a.api.Logout(logoutCtx); err != nil {
			a.logger.Warn(logoutCtx, "logout on exit failed", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

// StartOnlineStatusWatcher probes the server every interval and flips Mode
// accordingly. It returns when ctx is done, or at once for a
// non-positive interval.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.api.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}
