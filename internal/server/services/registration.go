// Package services contains the portal's server-side business logic:
// public registrations, admin authentication, the dashboard read model and
// the status and date mutators.
package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/logging"
	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/dmitrijs2005/sitereg/internal/server/config"
	"github.com/dmitrijs2005/sitereg/internal/server/forms"
	"github.com/dmitrijs2005/sitereg/internal/server/repositories/repomanager"
)

// Upload is one file attached to an installation registration.
type Upload struct {
	Kind        models.AttachmentKind
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Receipt is returned for an accepted registration. The client shows a
// success screen and returns to RedirectTo after RedirectAfter.
type Receipt struct {
	ID            string
	RedirectTo    string
	RedirectAfter time.Duration
}

// RegistrationService accepts the public registration forms.
type RegistrationService struct {
	repomanager   repomanager.RepositoryManager
	validator     *forms.Validator
	files         FileStore
	logger        logging.Logger
	redirectDelay time.Duration
}

func NewRegistrationService(m repomanager.RepositoryManager, v *forms.Validator, files FileStore, logger logging.Logger, cfg *config.Config) *RegistrationService {
	return &RegistrationService{
		repomanager:   m,
		validator:     v,
		files:         files,
		logger:        logger.With("module", "registration"),
		redirectDelay: cfg.RedirectDelay,
	}
}

// Options returns the choices of the enumerated installation fields.
func (s *RegistrationService) Options() forms.Options {
	return s.validator.Options()
}

func (s *RegistrationService) receipt(id string) *Receipt {
	return &Receipt{ID: id, RedirectTo: "/", RedirectAfter: s.redirectDelay}
}

// SubmitInstallation validates form, stores uploaded bytes when object
// storage is enabled and inserts the installation as pending together with
// its attachment records. Upload names are added to the form's file lists.
// Nothing is inserted when validation fails.
func (s *RegistrationService) SubmitInstallation(ctx context.Context, form forms.InstallationForm, uploads []Upload) (*Receipt, error) {
	for _, u := range uploads {
		switch u.Kind {
		case models.AttachmentTiming:
			form.TimingFiles = append(form.TimingFiles, u.FileName)
		default:
			form.PhasingFiles = append(form.PhasingFiles, u.FileName)
		}
	}

	inst, err := s.validator.Installation(form)
	if err != nil {
		return nil, err
	}
	inst.Status = models.InstallationPending

	var stored []models.Attachment
	if s.files.Enabled() {
		for _, u := range uploads {
			if u.Body == nil {
				continue
			}
			key := GetRandomStorageKey()
			if err := s.files.Put(ctx, key, u.ContentType, u.Body, u.Size); err != nil {
				return nil, fmt.Errorf("error storing %s: %w", u.FileName, err)
			}
			stored = append(stored, models.Attachment{
				Kind:        u.Kind,
				FileName:    u.FileName,
				StorageKey:  key,
				ContentType: u.ContentType,
				Size:        u.Size,
			})
		}
	}

	var created *models.Installation
	err = s.repomanager.WithinTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		var err error
		created, err = r.Installations().Create(ctx, &inst)
		if err != nil {
			return err
		}
		for i := range stored {
			stored[i].InstallationID = created.ID
			if _, err := r.Attachments().Create(ctx, &stored[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if len(stored) > 0 {
			s.logger.Warn(ctx, "uploaded objects left without a registration", "count", len(stored))
		}
		return nil, fmt.Errorf("error creating installation: %w", err)
	}

	s.logger.Info(ctx, "installation registered", "id", created.ID, "files", len(stored))
	return s.receipt(created.ID), nil
}

// SubmitMobilityAccount validates form and inserts the account as active.
func (s *RegistrationService) SubmitMobilityAccount(ctx context.Context, form forms.MobilityForm) (*Receipt, error) {
	acc, err := s.validator.MobilityAccount(form)
	if err != nil {
		return nil, err
	}
	acc.Status = models.AccountActive

	created, err := s.repomanager.MobilityAccounts().Create(ctx, &acc)
	if err != nil {
		return nil, fmt.Errorf("error creating mobility account: %w", err)
	}

	s.logger.Info(ctx, "mobility account registered", "id", created.ID)
	return s.receipt(created.ID), nil
}
