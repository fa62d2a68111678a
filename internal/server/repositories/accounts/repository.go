// Package accounts stores mobility-account registrations.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/sitereg/internal/models"
)

type Repository interface {
	Create(ctx context.Context, acc *models.MobilityAccount) (*models.MobilityAccount, error)
	Get(ctx context.Context, id string) (*models.MobilityAccount, error)
	// List returns every account, newest first.
	List(ctx context.Context) ([]models.MobilityAccount, error)
	UpdateStatus(ctx context.Context, id string, status models.AccountStatus) (*models.MobilityAccount, error)
}
