package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/logging"
	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/dmitrijs2005/sitereg/internal/server/forms"
	"github.com/dmitrijs2005/sitereg/internal/server/repositories/installations"
	"github.com/dmitrijs2005/sitereg/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func installationForm() forms.InstallationForm {
	return forms.InstallationForm{
		IntersectionName:     "Main St & 1st Ave",
		EndUser:              "City of Springfield",
		Distributor:          "Orange Traffic",
		CabinetType:          "NEMA TS2",
		TLSConnection:        "NTCIP",
		DetectionIO:          "SDLC - 15 Pin",
		ContactName:          "Ana Chen",
		ContactEmail:         "ana@x.io",
		ContactPhone:         "555-0100",
		EstimatedInstallDate: "2026-10-20",
	}
}

func newRegistration(m repomanager.RepositoryManager, files FileStore) *RegistrationService {
	return NewRegistrationService(m, forms.New(forms.DefaultOptions()), files, logging.Nop{}, testConfig())
}

func TestSubmitInstallation_OtherCabinet(t *testing.T) {
	ctx := context.Background()
	m := repomanager.NewMemoryRepositoryManager()
	svc := newRegistration(m, NoopFileStore{})

	f := installationForm()
	f.CabinetType = forms.Other
	f.CabinetTypeOther = "Custom-Cab-9"

	receipt, err := svc.SubmitInstallation(ctx, f, nil)
	require.NoError(t, err)
	assert.Equal(t, "/", receipt.RedirectTo)
	assert.Equal(t, 3*time.Second, receipt.RedirectAfter)

	list, err := m.Installations().List(ctx, installations.ByCreatedDesc)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, receipt.ID, list[0].ID)
	assert.Equal(t, "Custom-Cab-9", list[0].CabinetType)
	assert.Equal(t, models.InstallationPending, list[0].Status)
	assert.Equal(t, models.NewDate(2026, time.October, 20), list[0].EstimatedInstallDate)
}

func TestSubmitInstallation_InvalidInsertsNothing(t *testing.T) {
	ctx := context.Background()
	m := repomanager.NewMemoryRepositoryManager()
	files := &fakeFileStore{enabled: true}
	svc := newRegistration(m, files)

	f := installationForm()
	f.CabinetType = forms.Other
	f.ContactEmail = "not-an-email"

	_, err := svc.SubmitInstallation(ctx, f, []Upload{upload(models.AttachmentPhasing, "p.pdf", "x")})
	require.ErrorIs(t, err, common.ErrorValidation)

	var ve forms.ValidationErrors
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve, "cabinet_type_other")
	assert.Contains(t, ve, "contact_email")

	list, _ := m.Installations().List(ctx, installations.ByCreatedDesc)
	assert.Empty(t, list)
	assert.Empty(t, files.puts)
}

func TestSubmitInstallation_NamesOnlyWithoutStorage(t *testing.T) {
	ctx := context.Background()
	m := repomanager.NewMemoryRepositoryManager()
	svc := newRegistration(m, NoopFileStore{})

	receipt, err := svc.SubmitInstallation(ctx, installationForm(), []Upload{
		upload(models.AttachmentPhasing, "phase.pdf", "phase"),
		upload(models.AttachmentTiming, "timing.csv", "timing"),
	})
	require.NoError(t, err)

	inst, err := m.Installations().Get(ctx, receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FileNames{"phase.pdf"}, inst.PhasingFiles)
	assert.Equal(t, models.FileNames{"timing.csv"}, inst.TimingFiles)

	atts, err := m.Attachments().ListByInstallation(ctx, receipt.ID)
	require.NoError(t, err)
	assert.Empty(t, atts)
}

func TestSubmitInstallation_StoresFiles(t *testing.T) {
	ctx := context.Background()
	m := repomanager.NewMemoryRepositoryManager()
	files := &fakeFileStore{enabled: true}
	svc := newRegistration(m, files)

	receipt, err := svc.SubmitInstallation(ctx, installationForm(), []Upload{
		upload(models.AttachmentPhasing, "phase.pdf", "phase"),
		upload(models.AttachmentTiming, "timing.csv", "timing"),
	})
	require.NoError(t, err)

	require.Len(t, files.puts, 2)
	assert.Equal(t, []byte("phase"), files.puts[0].Body)
	assert.Equal(t, int64(6), files.puts[1].Size)

	atts, err := m.Attachments().ListByInstallation(ctx, receipt.ID)
	require.NoError(t, err)
	require.Len(t, atts, 2)
	for _, a := range atts {
		assert.Equal(t, receipt.ID, a.InstallationID)
		assert.NotEmpty(t, a.StorageKey)
	}
}

func TestSubmitInstallation_StorageFailure(t *testing.T) {
	ctx := context.Background()
	m := repomanager.NewMemoryRepositoryManager()
	svc := newRegistration(m, &fakeFileStore{enabled: true, putErr: errStore})

	_, err := svc.SubmitInstallation(ctx, installationForm(), []Upload{upload(models.AttachmentPhasing, "p.pdf", "x")})
	require.ErrorIs(t, err, errStore)

	list, _ := m.Installations().List(ctx, installations.ByCreatedDesc)
	assert.Empty(t, list)
}

func TestSubmitMobilityAccount(t *testing.T) {
	ctx := context.Background()
	m := repomanager.NewMemoryRepositoryManager()
	svc := newRegistration(m, NoopFileStore{})

	receipt, err := svc.SubmitMobilityAccount(ctx, forms.MobilityForm{
		FirstName: "Ana", LastName: "Chen", Email: "ana@x.io", Phone: "555", EndUser: "Metro",
	})
	require.NoError(t, err)

	acc, err := m.MobilityAccounts().Get(ctx, receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AccountActive, acc.Status)
	assert.Equal(t, "Metro", acc.EndUser)

	_, err = svc.SubmitMobilityAccount(ctx, forms.MobilityForm{FirstName: "Ana"})
	assert.ErrorIs(t, err, common.ErrorValidation)
	list, _ := m.MobilityAccounts().List(ctx)
	assert.Len(t, list, 1)
}

func TestRegistrationOptions(t *testing.T) {
	svc := newRegistration(repomanager.NewMemoryRepositoryManager(), NoopFileStore{})
	assert.Contains(t, svc.Options().CabinetTypes, forms.Other)
}
