package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/dmitrijs2005/sitereg/internal/client/board"
	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/filex"
	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/dmitrijs2005/sitereg/internal/netx"
)

// downloadDir is where "download" saves attachments, relative to the
// working directory.
const downloadDir = "downloads"

// Refresh re-fetches both collections and redraws the current view.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.board.Load(ctx); err != nil {
		return err
	}
	a.render()
	return nil
}

func (a *App) Installations(_ context.Context) error {
	a.board.SetView(board.ViewInstallations)
	a.render()
	return nil
}

func (a *App) Accounts(_ context.Context) error {
	a.board.SetView(board.ViewMobility)
	a.render()
	return nil
}

// Search narrows the current view to records containing q. An empty q
// clears the search.
func (a *App) Search(_ context.Context, q string) error {
	a.board.SetQuery(q)
	a.render()
	return nil
}

// StatusFilter narrows the current view to one status tag, or "all".
func (a *App) StatusFilter(_ context.Context, s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		s = common.StatusAll
	}
	if !knownStatusFilter(s) {
		return fmt.Errorf("%w: %q", common.ErrInvalidStatus, s)
	}
	a.board.SetStatus(s)
	a.render()
	return nil
}

func knownStatusFilter(s string) bool {
	if s == common.StatusAll {
		return true
	}
	if slices.Contains(models.InstallationStatuses, models.InstallationStatus(s)) {
		return true
	}
	return slices.Contains(models.AccountStatuses, models.AccountStatus(s))
}

// SetStatus moves an installation to status once the server accepts it.
func (a *App) SetStatus(ctx context.Context, id string, status models.InstallationStatus) error {
	return a.apply(ctx, a.board.SetInstallationStatus(ctx, id, status), fmt.Sprintf("Installation %s is now %s", id, status))
}

// Toggle flips a mobility account between active and inactive.
func (a *App) Toggle(ctx context.Context, id string) error {
	return a.apply(ctx, a.board.ToggleAccount(ctx, id), fmt.Sprintf("Account %s toggled", id))
}

// Attachments lists the files of an installation with their download links.
func (a *App) Attachments(ctx context.Context, id string) error {
	list, err := a.api.Attachments(ctx, id)
	if err != nil {
		return err
	}
	renderAttachments(a.out, list)
	return nil
}

// Download saves the stored copy of an installation's file into the
// download directory under the working directory.
func (a *App) Download(ctx context.Context, id, fileName string) error {
	list, err := a.api.Attachments(ctx, id)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(list, func(x models.Attachment) bool { return x.FileName == fileName || x.ID == fileName })
	if i < 0 {
		return fmt.Errorf("%w: attachment %q", common.ErrorNotFound, fileName)
	}
	att := list[i]
	if att.DownloadURL == "" {
		return fmt.Errorf("%w: %s was recorded by name only", common.ErrStorageDisabled, att.FileName)
	}

	dir, err := filex.EnsureSubDir(downloadDir)
	if err != nil {
		return err
	}
	f, err := filex.Create(dir, att.FileName)
	if err != nil {
		return err
	}
	n, err := netx.DownloadPresignedURL(ctx, nil, att.DownloadURL, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	fmt.Fprintf(a.out, "Saved %s (%d bytes)\n", f.Name(), n)
	return nil
}

func (a *App) apply(ctx context.Context, res board.Result, done string) error {
	switch {
	case res.Err != nil && res.Reloaded:
		a.logger.Warn(ctx, "update rejected, view reloaded", "error", res.Err)
		a.render()
		return res.Err
	case res.Err != nil:
		a.logger.Warn(ctx, "update rejected", "error", res.Err)
		return res.Err
	case res.NoOp:
		fmt.Fprintln(a.out, "Nothing to change")
	default:
		fmt.Fprintln(a.out, done)
	}
	a.render()
	return nil
}

// render redraws the active view.
func (a *App) render() {
	switch a.board.View() {
	case board.ViewMobility:
		_, ac := a.board.Counts()
		renderAccounts(a.out, a.board.Accounts(), ac)
	case board.ViewCalendar:
		renderCalendar(a.out, a.board.Calendar())
	default:
		ic, _ := a.board.Counts()
		renderInstallations(a.out, a.board.Installations(), ic)
	}
}
