// Package attachments stores metadata of files uploaded with an
// installation registration.
package attachments

import (
	"context"

	"github.com/dmitrijs2005/sitereg/internal/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.Attachment) (*models.Attachment, error)
	ListByInstallation(ctx context.Context, installationID string) ([]models.Attachment, error)
}
