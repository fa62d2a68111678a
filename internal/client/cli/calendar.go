package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/sitereg/internal/client/board"
	"github.com/dmitrijs2005/sitereg/internal/models"
)

func (a *App) Calendar(_ context.Context) error {
	a.board.SetView(board.ViewCalendar)
	a.render()
	return nil
}

func (a *App) NextMonth(_ context.Context) error {
	a.board.NextMonth()
	return a.showCalendar()
}

func (a *App) PrevMonth(_ context.Context) error {
	a.board.PrevMonth()
	return a.showCalendar()
}

func (a *App) Today(_ context.Context) error {
	a.board.Today()
	return a.showCalendar()
}

func (a *App) showCalendar() error {
	a.board.SetView(board.ViewCalendar)
	a.render()
	return nil
}

// Move reschedules an installation to date, the console's form of dragging
// a calendar card onto another day.
func (a *App) Move(ctx context.Context, id, date string) error {
	to, err := models.ParseDate(date)
	if err != nil {
		return err
	}
	return a.apply(ctx, a.board.Move(ctx, id, to), fmt.Sprintf("Installation %s moved to %s", id, to))
}
