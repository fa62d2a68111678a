package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/sitereg/internal/logging"
	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/dmitrijs2005/sitereg/internal/server/repositories/repomanager"
)

// AttachmentService lists the files of an installation.
type AttachmentService struct {
	repomanager repomanager.RepositoryManager
	files       FileStore
	logger      logging.Logger
}

func NewAttachmentService(m repomanager.RepositoryManager, files FileStore, logger logging.Logger) *AttachmentService {
	return &AttachmentService{repomanager: m, files: files, logger: logger.With("module", "attachments")}
}

// List returns the stored files of installationID. With object storage
// enabled each stored file carries a presigned download URL.
func (s *AttachmentService) List(ctx context.Context, installationID string) ([]models.Attachment, error) {
	if err := checkID(installationID); err != nil {
		return nil, err
	}
	if _, err := s.repomanager.Installations().Get(ctx, installationID); err != nil {
		return nil, err
	}

	list, err := s.repomanager.Attachments().ListByInstallation(ctx, installationID)
	if err != nil {
		return nil, err
	}
	if !s.files.Enabled() {
		return list, nil
	}

	for i := range list {
		if list[i].StorageKey == "" {
			continue
		}
		url, err := s.files.PresignGet(ctx, list[i].StorageKey)
		if err != nil {
			return nil, fmt.Errorf("presign %s: %w", list[i].FileName, err)
		}
		list[i].DownloadURL = url
	}
	return list, nil
}
