package attachments

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	items []models.Attachment
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = slices.DeleteFunc(r.items, func(a models.Attachment) bool { return a.ID == id })
}

func (r *MemoryRepository) Create(_ context.Context, a *models.Attachment) (*models.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()
	r.items = append(r.items, *a)
	return a, nil
}

func (r *MemoryRepository) ListByInstallation(_ context.Context, installationID string) ([]models.Attachment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []models.Attachment{}
	for _, a := range r.items {
		if a.InstallationID == installationID {
			result = append(result, a)
		}
	}
	slices.SortStableFunc(result, func(a, b models.Attachment) int {
		return strings.Compare(string(a.Kind), string(b.Kind))
	})
	return result, nil
}
