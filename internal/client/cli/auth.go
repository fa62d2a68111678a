package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/calendar"
	"github.com/dmitrijs2005/sitereg/internal/client/api"
	"github.com/dmitrijs2005/sitereg/internal/client/board"
	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/cryptox"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login asks for the admin credential, opens a session and loads the
// dashboard. The configured admin email, when set, skips the email prompt.
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email := a.config.AdminEmail
	if email == "" {
		var err error
		email, err = getSimpleText(a.reader, "Enter email", a.out)
		if err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer cryptox.WipeBytes(password)

	expires, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		switch {
		case errors.Is(err, api.ErrUnavailable):
			a.setMode(ctx, ModeOffline)
		case errors.Is(err, common.ErrLockedOut):
			a.logger.Warn(ctx, "login locked out", "email", email)
		default:
			a.logger.Warn(ctx, "login unsuccessful", "email", email, "error", err)
		}
		return fmt.Errorf("login: %w", err)
	}

	a.setMode(ctx, ModeOnline)
	a.userName = email
	a.logger.Info(ctx, "login successful", "email", email, "expires_at", expires.Format(time.RFC3339))

	if err := a.board.Load(ctx); err != nil {
		return err
	}
	a.render()
	return nil
}

// Logout revokes the session and drops the local view.
func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	a.board = board.New(a.api, calendar.ParseWeekday(a.config.WeekStart))
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// HashPassword prints the bcrypt hash of a password typed at the prompt,
// ready for the server's admin_password_hash setting.
func (a *App) HashPassword(_ context.Context) error {
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer cryptox.WipeBytes(password)
	if len(password) == 0 {
		return errors.New("empty password")
	}

	hash, err := cryptox.HashPassword(password, 0)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, hash)
	return nil
}
