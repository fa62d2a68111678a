// Package installations stores installation registrations.
package installations

import (
	"context"

	"github.com/dmitrijs2005/sitereg/internal/models"
)

// Order selects how List sorts its result.
type Order int

const (
	// ByCreatedDesc lists newest submissions first (dashboard tables).
	ByCreatedDesc Order = iota
	// ByInstallDateAsc lists by scheduled day, unscheduled last (calendar).
	ByInstallDateAsc
)

type Repository interface {
	Create(ctx context.Context, inst *models.Installation) (*models.Installation, error)
	Get(ctx context.Context, id string) (*models.Installation, error)
	List(ctx context.Context, order Order) ([]models.Installation, error)
	UpdateStatus(ctx context.Context, id string, status models.InstallationStatus) (*models.Installation, error)
	UpdateDate(ctx context.Context, id string, date models.Date) (*models.Installation, error)
}
