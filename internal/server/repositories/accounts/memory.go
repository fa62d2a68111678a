package accounts

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	items []models.MobilityAccount
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

func (r *MemoryRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx := r.indexOf(id); idx >= 0 {
		r.items = slices.Delete(r.items, idx, idx+1)
	}
}

func (r *MemoryRepository) Create(_ context.Context, acc *models.MobilityAccount) (*models.MobilityAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	acc.ID = uuid.NewString()
	acc.CreatedAt = now
	acc.UpdatedAt = now
	r.items = append(r.items, *acc)
	return acc, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*models.MobilityAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, common.ErrorNotFound
	}
	acc := r.items[idx]
	return &acc, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]models.MobilityAccount, error) {
	r.mu.RLock()
	result := slices.Clone(r.items)
	r.mu.RUnlock()

	if result == nil {
		return []models.MobilityAccount{}, nil
	}
	slices.Reverse(result)
	slices.SortStableFunc(result, func(a, b models.MobilityAccount) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return result, nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id string, status models.AccountStatus) (*models.MobilityAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, common.ErrorNotFound
	}
	r.items[idx].Status = status
	r.items[idx].UpdatedAt = r.now().UTC()
	acc := r.items[idx]
	return &acc, nil
}

func (r *MemoryRepository) indexOf(id string) int {
	return slices.IndexFunc(r.items, func(a models.MobilityAccount) bool { return a.ID == id })
}
