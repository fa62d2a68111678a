package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/calendar"
	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/dmitrijs2005/sitereg/internal/search"
	"github.com/dmitrijs2005/sitereg/internal/server/config"
	"github.com/dmitrijs2005/sitereg/internal/server/repositories/installations"
	"github.com/dmitrijs2005/sitereg/internal/server/repositories/repomanager"
	"golang.org/x/sync/errgroup"
)

// Dashboard is the admin's list view. Counts cover every record; the
// lists hold only the records matching the filter. A nil list was not
// requested.
type Dashboard struct {
	Installations      []models.Installation     `json:"installations,omitempty"`
	MobilityAccounts   []models.MobilityAccount  `json:"mobility_accounts,omitempty"`
	InstallationCounts models.InstallationCounts `json:"installation_counts"`
	AccountCounts      models.AccountCounts      `json:"account_counts"`
}

// CalendarView is one month of scheduled installations.
type CalendarView struct {
	Grid   calendar.Grid             `json:"grid"`
	Counts models.InstallationCounts `json:"counts"`
}

// DashboardService builds the admin read model.
type DashboardService struct {
	repomanager repomanager.RepositoryManager
	weekStart   time.Weekday
	now         func() time.Time
}

func NewDashboardService(m repomanager.RepositoryManager, cfg *config.Config) *DashboardService {
	return &DashboardService{
		repomanager: m,
		weekStart:   calendar.ParseWeekday(cfg.CalendarWeekStart),
		now:         time.Now,
	}
}

// Load fetches installations and accounts concurrently and filters both
// by query and status. A failure of either fetch fails the load.
func (s *DashboardService) Load(ctx context.Context, query, status string) (*Dashboard, error) {
	var (
		insts []models.Installation
		accs  []models.MobilityAccount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		insts, err = s.repomanager.Installations().List(gctx, installations.ByCreatedDesc)
		if err != nil {
			return fmt.Errorf("list installations: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		accs, err = s.repomanager.MobilityAccounts().List(gctx)
		if err != nil {
			return fmt.Errorf("list mobility accounts: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{
		Installations:      search.Filter(insts, query, status),
		MobilityAccounts:   search.Filter(accs, query, status),
		InstallationCounts: models.CountInstallations(insts),
		AccountCounts:      models.CountAccounts(accs),
	}, nil
}

// Calendar lays the installations matching query and status onto the
// 42-day grid of month. Counts cover the matching records.
func (s *DashboardService) Calendar(ctx context.Context, month calendar.Month, query, status string) (*CalendarView, error) {
	insts, err := s.repomanager.Installations().List(ctx, installations.ByInstallDateAsc)
	if err != nil {
		return nil, fmt.Errorf("list installations: %w", err)
	}

	matched := search.Filter(insts, query, status)
	today := models.DateOf(s.now())
	return &CalendarView{
		Grid:   calendar.Build(month, matched, today, s.weekStart),
		Counts: models.CountInstallations(matched),
	}, nil
}

// Today is the current month, the target of the calendar's "today" action.
func (s *DashboardService) Today() calendar.Month {
	return calendar.MonthOf(models.DateOf(s.now()))
}
