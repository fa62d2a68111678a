package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/client/config"
	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/logging"
	"github.com/dmitrijs2005/sitereg/internal/models"
)

type fakePortal struct {
	mu sync.Mutex

	installations []models.Installation
	accounts      []models.MobilityAccount
	attachments   []models.Attachment

	loginEmail, loginPassword string
	loginErr                  error
	token                     bool
	logoutCalls               int

	pingErr   error
	mutateErr error
	moves     int
}

func (f *fakePortal) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakePortal) Login(_ context.Context, email, password string) (time.Time, error) {
	f.loginEmail, f.loginPassword = email, password
	if f.loginErr != nil {
		return time.Time{}, f.loginErr
	}
	f.token = true
	return time.Date(2026, time.October, 15, 20, 0, 0, 0, time.UTC), nil
}

func (f *fakePortal) Logout(context.Context) error {
	f.logoutCalls++
	f.token = false
	return nil
}

func (f *fakePortal) LoggedIn() bool { return f.token }

func (f *fakePortal) Attachments(_ context.Context, id string) ([]models.Attachment, error) {
	if id != "i1" {
		return nil, common.ErrorNotFound
	}
	return f.attachments, nil
}

func (f *fakePortal) Installations(context.Context) ([]models.Installation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Installation(nil), f.installations...), nil
}

func (f *fakePortal) MobilityAccounts(context.Context) ([]models.MobilityAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.MobilityAccount(nil), f.accounts...), nil
}

func (f *fakePortal) UpdateInstallationStatus(_ context.Context, id string, status models.InstallationStatus) (*models.Installation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	for i := range f.installations {
		if f.installations[i].ID == id {
			f.installations[i].Status = status
			inst := f.installations[i]
			return &inst, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakePortal) UpdateAccountStatus(_ context.Context, id string, status models.AccountStatus) (*models.MobilityAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	for i := range f.accounts {
		if f.accounts[i].ID == id {
			f.accounts[i].Status = status
			acc := f.accounts[i]
			return &acc, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakePortal) Reschedule(_ context.Context, id string, _, to models.Date) (*models.Installation, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moves++
	if f.mutateErr != nil {
		return nil, false, f.mutateErr
	}
	for i := range f.installations {
		if f.installations[i].ID == id {
			f.installations[i].EstimatedInstallDate = to
			inst := f.installations[i]
			return &inst, true, nil
		}
	}
	return nil, false, common.ErrorNotFound
}

func seededPortal() *fakePortal {
	return &fakePortal{
		installations: []models.Installation{
			{ID: "i1", IntersectionName: "Main St & 5th", EndUser: "City of Springfield", ContactName: "Dana",
				Status: models.InstallationPending, EstimatedInstallDate: models.NewDate(2026, time.October, 3)},
			{ID: "i2", IntersectionName: "Oak Rd", EndUser: "County", ContactName: "Lee",
				Status: models.InstallationCompleted, EstimatedInstallDate: models.NewDate(2026, time.October, 9)},
		},
		accounts: []models.MobilityAccount{
			{ID: "a1", FirstName: "Ana", LastName: "Chen", Email: "ana@metro.io", EndUser: "Metro", Status: models.AccountActive},
		},
		attachments: []models.Attachment{
			{ID: "f1", InstallationID: "i1", Kind: models.AttachmentPhasing, FileName: "phasing.pdf", Size: 12, DownloadURL: "https://files/p"},
			{ID: "f2", InstallationID: "i1", Kind: models.AttachmentTiming, FileName: "timing.csv", Size: 3},
		},
	}
}

// newTestApp builds an App over p reading input and writing to the
// returned buffer.
func newTestApp(t *testing.T, p *fakePortal, input string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	var out bytes.Buffer
	return newApp(cfg, p, logging.Nop{}, strings.NewReader(input), &out), &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(fmt.Sprint(v))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}
