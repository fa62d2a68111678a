package installations

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps installations in process memory. It backs the
// server when no database DSN is configured.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []models.Installation
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

// Delete removes the installation with id, if present.
func (r *MemoryRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx := r.indexOf(id); idx >= 0 {
		r.items = slices.Delete(r.items, idx, idx+1)
	}
}

func (r *MemoryRepository) Create(_ context.Context, inst *models.Installation) (*models.Installation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	inst.ID = uuid.NewString()
	inst.CreatedAt = now
	inst.UpdatedAt = now
	inst.PhasingFiles = slices.Clone(inst.PhasingFiles)
	inst.TimingFiles = slices.Clone(inst.TimingFiles)
	r.items = append(r.items, *inst)
	return inst, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*models.Installation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, common.ErrorNotFound
	}
	inst := r.items[idx]
	return &inst, nil
}

func (r *MemoryRepository) List(_ context.Context, order Order) ([]models.Installation, error) {
	r.mu.RLock()
	result := slices.Clone(r.items)
	r.mu.RUnlock()

	if result == nil {
		result = []models.Installation{}
	}

	byCreatedDesc := func(a, b models.Installation) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	}
	// Creation order breaks ties between equal timestamps.
	slices.Reverse(result)
	switch order {
	case ByInstallDateAsc:
		slices.SortStableFunc(result, func(a, b models.Installation) int {
			az, bz := a.EstimatedInstallDate.IsZero(), b.EstimatedInstallDate.IsZero()
			switch {
			case az && bz:
				return byCreatedDesc(a, b)
			case az:
				return 1
			case bz:
				return -1
			}
			if c := a.EstimatedInstallDate.Time().Compare(b.EstimatedInstallDate.Time()); c != 0 {
				return c
			}
			return byCreatedDesc(a, b)
		})
	default:
		slices.SortStableFunc(result, byCreatedDesc)
	}
	return result, nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id string, status models.InstallationStatus) (*models.Installation, error) {
	return r.update(id, func(i *models.Installation) { i.Status = status })
}

func (r *MemoryRepository) UpdateDate(_ context.Context, id string, date models.Date) (*models.Installation, error) {
	return r.update(id, func(i *models.Installation) { i.EstimatedInstallDate = date })
}

func (r *MemoryRepository) update(id string, fn func(*models.Installation)) (*models.Installation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, common.ErrorNotFound
	}
	fn(&r.items[idx])
	r.items[idx].UpdatedAt = r.now().UTC()
	inst := r.items[idx]
	return &inst, nil
}

func (r *MemoryRepository) indexOf(id string) int {
	return slices.IndexFunc(r.items, func(i models.Installation) bool {
		return i.ID == id
	})
}
