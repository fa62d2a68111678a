package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/dmitrijs2005/sitereg/internal/server/config"
	"github.com/dmitrijs2005/sitereg/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/sitereg/internal/server/repositories/installations"
	"github.com/dmitrijs2005/sitereg/internal/server/repositories/repomanager"
)

// -------- test fakes --------

type putCall struct {
	Key, ContentType string
	Body             []byte
	Size             int64
}

type fakeFileStore struct {
	enabled bool
	putErr  error
	urlErr  error

	mu   sync.Mutex
	puts []putCall
}

func (f *fakeFileStore) Enabled() bool { return f.enabled }

func (f *fakeFileStore) Put(_ context.Context, key, contentType string, body io.Reader, size int64) error {
	if f.putErr != nil {
		return f.putErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, putCall{Key: key, ContentType: contentType, Body: b, Size: size})
	return nil
}

func (f *fakeFileStore) PresignGet(_ context.Context, key string) (string, error) {
	if f.urlErr != nil {
		return "", f.urlErr
	}
	return "https://files.example/" + key, nil
}

var errStore = errors.New("store unavailable")

// failingInstallations fails every List; the rest comes from the embedded repo.
type failingInstallations struct {
	installations.Repository
}

func (failingInstallations) List(context.Context, installations.Order) ([]models.Installation, error) {
	return nil, errStore
}

type failingAccounts struct {
	accounts.Repository
}

func (failingAccounts) List(context.Context) ([]models.MobilityAccount, error) {
	return nil, errStore
}

type brokenRepoMgr struct {
	*repomanager.MemoryRepositoryManager
	insts installations.Repository
	accs  accounts.Repository
}

func (m *brokenRepoMgr) Installations() installations.Repository {
	if m.insts != nil {
		return m.insts
	}
	return m.MemoryRepositoryManager.Installations()
}

func (m *brokenRepoMgr) MobilityAccounts() accounts.Repository {
	if m.accs != nil {
		return m.accs
	}
	return m.MemoryRepositoryManager.MobilityAccounts()
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return cfg
}

func upload(kind models.AttachmentKind, name, content string) Upload {
	return Upload{
		Kind:        kind,
		FileName:    name,
		ContentType: "application/octet-stream",
		Size:        int64(len(content)),
		Body:        bytes.NewReader([]byte(content)),
	}
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
