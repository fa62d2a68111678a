// Package board holds the admin console's local view of the portal: the
// loaded records, the active filter, the calendar month and the reschedule
// gesture. Mutations go to the server first and are applied locally only
// once the server confirms them.
package board

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/calendar"
	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/dmitrijs2005/sitereg/internal/search"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrBusy is returned while an earlier mutation of the same record is
	// still in flight.
	ErrBusy = errors.New("a request for this record is already in flight")

	// ErrNotLoaded is returned when a record id is not in the local view.
	ErrNotLoaded = errors.New("record not in the current view")

	// ErrNotDragging is returned by Drop without a preceding StartDrag.
	ErrNotDragging = errors.New("no installation is being moved")
)

// API is the part of the portal API the board uses.
type API interface {
	Installations(ctx context.Context) ([]models.Installation, error)
	MobilityAccounts(ctx context.Context) ([]models.MobilityAccount, error)
	UpdateInstallationStatus(ctx context.Context, id string, status models.InstallationStatus) (*models.Installation, error)
	UpdateAccountStatus(ctx context.Context, id string, status models.AccountStatus) (*models.MobilityAccount, error)
	Reschedule(ctx context.Context, id string, from, to models.Date) (*models.Installation, bool, error)
}

// Result is the outcome of a mutation. Applied means the server confirmed
// the change and the local view now shows it. NoOp means nothing had to
// be sent. On failure Err is set; Reloaded reports whether the request
// reached the server and the view was re-fetched since.
type Result struct {
	Applied  bool
	NoOp     bool
	Reloaded bool
	Err      error
}

// View selects the dashboard tab.
type View int

const (
	ViewInstallations View = iota
	ViewMobility
	ViewCalendar
)

func (v View) String() string {
	switch v {
	case ViewMobility:
		return "mobility"
	case ViewCalendar:
		return "calendar"
	default:
		return "installations"
	}
}

type Board struct {
	api       API
	weekStart time.Weekday
	now       func() time.Time

	mu            sync.Mutex
	installations []models.Installation
	accounts      []models.MobilityAccount
	query         string
	status        string
	view          View
	month         calendar.Month
	drag          calendar.Drag
	inflight      map[string]bool
}

func New(api API, weekStart time.Weekday) *Board {
	b := &Board{
		api:           api,
		weekStart:     weekStart,
		now:           time.Now,
		installations: []models.Installation{},
		accounts:      []models.MobilityAccount{},
		status:        common.StatusAll,
		inflight:      map[string]bool{},
	}
	b.month = calendar.MonthOf(b.today())
	return b
}

func (b *Board) today() models.Date {
	return models.DateOf(b.now())
}

// Load fetches installations and accounts concurrently. The view is
// replaced only when both fetches succeed.
func (b *Board) Load(ctx context.Context) error {
	var (
		insts []models.Installation
		accs  []models.MobilityAccount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		insts, err = b.api.Installations(gctx)
		if err != nil {
			return fmt.Errorf("load installations: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		accs, err = b.api.MobilityAccounts(gctx)
		if err != nil {
			return fmt.Errorf("load mobility accounts: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.installations = insts
	b.accounts = accs
	return nil
}

func (b *Board) SetQuery(q string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.query = q
}

// SetStatus sets the status selector; "" selects all.
func (b *Board) SetStatus(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s == "" {
		s = common.StatusAll
	}
	b.status = s
}

func (b *Board) Filter() (query, status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query, b.status
}

func (b *Board) SetView(v View) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view = v
}

func (b *Board) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view
}

// Installations returns the installations matching the filter.
func (b *Board) Installations() []models.Installation {
	b.mu.Lock()
	defer b.mu.Unlock()
	return search.Filter(b.installations, b.query, b.status)
}

// Accounts returns the mobility accounts matching the filter.
func (b *Board) Accounts() []models.MobilityAccount {
	b.mu.Lock()
	defer b.mu.Unlock()
	return search.Filter(b.accounts, b.query, b.status)
}

// Counts summarises every loaded record, ignoring the filter.
func (b *Board) Counts() (models.InstallationCounts, models.AccountCounts) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return models.CountInstallations(b.installations), models.CountAccounts(b.accounts)
}

func (b *Board) Month() calendar.Month {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.month
}

func (b *Board) NextMonth() calendar.Month {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.month = b.month.Next()
	return b.month
}

func (b *Board) PrevMonth() calendar.Month {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.month = b.month.Prev()
	return b.month
}

// Today jumps the calendar back to the current month.
func (b *Board) Today() calendar.Month {
	m := calendar.MonthOf(b.today())
	b.mu.Lock()
	defer b.mu.Unlock()
	b.month = m
	return m
}

// Calendar lays the filtered installations onto the current month.
func (b *Board) Calendar() calendar.Grid {
	today := b.today()
	b.mu.Lock()
	defer b.mu.Unlock()
	return calendar.Build(b.month, search.Filter(b.installations, b.query, b.status), today, b.weekStart)
}

func (b *Board) acquire(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inflight[id] {
		return false
	}
	b.inflight[id] = true
	return true
}

func (b *Board) release(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.inflight, id)
}

// failed re-fetches the view after a rejected mutation.
func (b *Board) failed(ctx context.Context, err error) Result {
	if reloadErr := b.Load(ctx); reloadErr != nil {
		return Result{Err: errors.Join(err, reloadErr)}
	}
	return Result{Err: err, Reloaded: true}
}

func (b *Board) replaceInstallation(inst models.Installation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := slices.IndexFunc(b.installations, func(x models.Installation) bool { return x.ID == inst.ID }); i >= 0 {
		b.installations[i] = inst
	}
}

func (b *Board) findInstallation(id string) (models.Installation, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := slices.IndexFunc(b.installations, func(x models.Installation) bool { return x.ID == id })
	if i < 0 {
		return models.Installation{}, false
	}
	return b.installations[i], true
}

func (b *Board) findAccount(id string) (models.MobilityAccount, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := slices.IndexFunc(b.accounts, func(x models.MobilityAccount) bool { return x.ID == id })
	if i < 0 {
		return models.MobilityAccount{}, false
	}
	return b.accounts[i], true
}

// SetInstallationStatus asks the server to change an installation's status
// and applies the confirmed record locally.
func (b *Board) SetInstallationStatus(ctx context.Context, id string, status models.InstallationStatus) Result {
	if !status.Valid() {
		return Result{Err: fmt.Errorf("%w: %q", common.ErrInvalidStatus, status)}
	}
	if _, ok := b.findInstallation(id); !ok {
		return Result{Err: ErrNotLoaded}
	}
	if !b.acquire(id) {
		return Result{Err: ErrBusy}
	}
	defer b.release(id)

	inst, err := b.api.UpdateInstallationStatus(ctx, id, status)
	if err != nil {
		return b.failed(ctx, err)
	}
	b.replaceInstallation(*inst)
	return Result{Applied: true}
}

// ToggleAccount flips a mobility account between active and inactive.
func (b *Board) ToggleAccount(ctx context.Context, id string) Result {
	acc, ok := b.findAccount(id)
	if !ok {
		return Result{Err: ErrNotLoaded}
	}
	if !b.acquire(id) {
		return Result{Err: ErrBusy}
	}
	defer b.release(id)

	updated, err := b.api.UpdateAccountStatus(ctx, id, acc.Status.Toggled())
	if err != nil {
		return b.failed(ctx, err)
	}

	b.mu.Lock()
	if i := slices.IndexFunc(b.accounts, func(x models.MobilityAccount) bool { return x.ID == id }); i >= 0 {
		b.accounts[i] = *updated
	}
	b.mu.Unlock()
	return Result{Applied: true}
}

// StartDrag picks up an installation from its scheduled day.
func (b *Board) StartDrag(id string) error {
	inst, ok := b.findInstallation(id)
	if !ok {
		return ErrNotLoaded
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.drag.Start(id, inst.EstimatedInstallDate)
	return nil
}

func (b *Board) CancelDrag() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.drag.Cancel()
}

func (b *Board) Dragging() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.drag.State() == calendar.Dragging
}

// Drop ends the gesture on target. Dropping on the origin day sends
// nothing; any other day issues exactly one date update.
func (b *Board) Drop(ctx context.Context, target models.Date) Result {
	b.mu.Lock()
	move, ok := b.drag.Drop(target)
	b.mu.Unlock()
	if !ok {
		return Result{Err: ErrNotDragging}
	}
	if !move.Changed() {
		return Result{NoOp: true}
	}
	if !b.acquire(move.InstallationID) {
		return Result{Err: ErrBusy}
	}
	defer b.release(move.InstallationID)

	inst, _, err := b.api.Reschedule(ctx, move.InstallationID, move.From, move.To)
	if err != nil {
		return b.failed(ctx, err)
	}
	b.replaceInstallation(*inst)
	return Result{Applied: true}
}

// Move is StartDrag followed by Drop.
func (b *Board) Move(ctx context.Context, id string, target models.Date) Result {
	if err := b.StartDrag(id); err != nil {
		return Result{Err: err}
	}
	return b.Drop(ctx, target)
}
