package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/dmitrijs2005/sitereg/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/sitereg/internal/server/repositories/attachments"
	"github.com/dmitrijs2005/sitereg/internal/server/repositories/installations"
)

// MemoryRepositoryManager keeps every record in process memory. Data is
// lost on restart.
type MemoryRepositoryManager struct {
	installations *installations.MemoryRepository
	accounts      *accounts.MemoryRepository
	attachments   *attachments.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		installations: installations.NewMemoryRepository(),
		accounts:      accounts.NewMemoryRepository(),
		attachments:   attachments.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Installations() installations.Repository {
	return m.installations
}

func (m *MemoryRepositoryManager) MobilityAccounts() accounts.Repository {
	return m.accounts
}

func (m *MemoryRepositoryManager) Attachments() attachments.Repository {
	return m.attachments
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Ping(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }

// WithinTx runs fn against repositories that log an undo step for every
// write. On error or panic only those writes are undone, newest first;
// writes made outside fn are left alone.
func (m *MemoryRepositoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	tx := &memoryTx{m: m}

	defer func() {
		if p := recover(); p != nil {
			tx.rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		tx.rollback(ctx)
		return err
	}
	return nil
}

type memoryTx struct {
	m *MemoryRepositoryManager

	mu   sync.Mutex
	undo []func(ctx context.Context)
}

func (tx *memoryTx) push(step func(ctx context.Context)) {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.undo = append(tx.undo, step)
}

func (tx *memoryTx) rollback(ctx context.Context) {
	tx.mu.Lock()
	steps := tx.undo
	tx.undo = nil
	tx.mu.Unlock()

	for i := len(steps) - 1; i >= 0; i-- {
		steps[i](ctx)
	}
}

func (tx *memoryTx) Installations() installations.Repository {
	return txInstallations{Repository: tx.m.installations, tx: tx}
}

func (tx *memoryTx) MobilityAccounts() accounts.Repository {
	return txAccounts{Repository: tx.m.accounts, tx: tx}
}

func (tx *memoryTx) Attachments() attachments.Repository {
	return txAttachments{Repository: tx.m.attachments, tx: tx}
}

type txInstallations struct {
	installations.Repository
	tx *memoryTx
}

func (r txInstallations) Create(ctx context.Context, inst *models.Installation) (*models.Installation, error) {
	created, err := r.Repository.Create(ctx, inst)
	if err != nil {
		return nil, err
	}
	id := created.ID
	r.tx.push(func(context.Context) { r.tx.m.installations.Delete(id) })
	return created, nil
}

func (r txInstallations) UpdateStatus(ctx context.Context, id string, status models.InstallationStatus) (*models.Installation, error) {
	prev, err := r.Repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := r.Repository.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	r.tx.push(func(ctx context.Context) { _, _ = r.tx.m.installations.UpdateStatus(ctx, id, prev.Status) })
	return updated, nil
}

func (r txInstallations) UpdateDate(ctx context.Context, id string, date models.Date) (*models.Installation, error) {
	prev, err := r.Repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := r.Repository.UpdateDate(ctx, id, date)
	if err != nil {
		return nil, err
	}
	r.tx.push(func(ctx context.Context) { _, _ = r.tx.m.installations.UpdateDate(ctx, id, prev.EstimatedInstallDate) })
	return updated, nil
}

type txAccounts struct {
	accounts.Repository
	tx *memoryTx
}

func (r txAccounts) Create(ctx context.Context, acc *models.MobilityAccount) (*models.MobilityAccount, error) {
	created, err := r.Repository.Create(ctx, acc)
	if err != nil {
		return nil, err
	}
	id := created.ID
	r.tx.push(func(context.Context) { r.tx.m.accounts.Delete(id) })
	return created, nil
}

func (r txAccounts) UpdateStatus(ctx context.Context, id string, status models.AccountStatus) (*models.MobilityAccount, error) {
	prev, err := r.Repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := r.Repository.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	r.tx.push(func(ctx context.Context) { _, _ = r.tx.m.accounts.UpdateStatus(ctx, id, prev.Status) })
	return updated, nil
}

type txAttachments struct {
	attachments.Repository
	tx *memoryTx
}

func (r txAttachments) Create(ctx context.Context, a *models.Attachment) (*models.Attachment, error) {
	created, err := r.Repository.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	id := created.ID
	r.tx.push(func(context.Context) { r.tx.m.attachments.Delete(id) })
	return created, nil
}
