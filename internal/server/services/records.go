package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/logging"
	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/dmitrijs2005/sitereg/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// RecordService applies the admin's single-field mutations.
type RecordService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewRecordService(m repomanager.RepositoryManager, logger logging.Logger) *RecordService {
	return &RecordService{repomanager: m, logger: logger.With("module", "records")}
}

// Ids are store-assigned UUIDs; anything else cannot name a record.
func checkID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return fmt.Errorf("%w: id %q", common.ErrorNotFound, id)
	}
	return nil
}

// UpdateInstallationStatus sets the status of one installation and returns
// the updated record.
func (s *RecordService) UpdateInstallationStatus(ctx context.Context, id, status string) (*models.Installation, error) {
	st, err := models.ParseInstallationStatus(status)
	if err != nil {
		return nil, err
	}
	if err := checkID(id); err != nil {
		return nil, err
	}

	inst, err := s.repomanager.Installations().UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "installation status updated", "id", id, "status", st)
	return inst, nil
}

// UpdateAccountStatus sets the status of one mobility account and returns
// the updated record.
func (s *RecordService) UpdateAccountStatus(ctx context.Context, id, status string) (*models.MobilityAccount, error) {
	st, err := models.ParseAccountStatus(status)
	if err != nil {
		return nil, err
	}
	if err := checkID(id); err != nil {
		return nil, err
	}

	acc, err := s.repomanager.MobilityAccounts().UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "account status updated", "id", id, "status", st)
	return acc, nil
}

// Reschedule moves an installation from one day to another. Dropping a
// record on its own day changes nothing and reports changed == false with
// the current record. Concurrent moves of one record: the last write wins.
func (s *RecordService) Reschedule(ctx context.Context, id string, from, to models.Date) (inst *models.Installation, changed bool, err error) {
	if to.IsZero() {
		return nil, false, fmt.Errorf("%w: missing target day", common.ErrInvalidDate)
	}
	if err := checkID(id); err != nil {
		return nil, false, err
	}

	if from == to {
		inst, err := s.repomanager.Installations().Get(ctx, id)
		if err != nil {
			return nil, false, err
		}
		return inst, false, nil
	}

	inst, err = s.repomanager.Installations().UpdateDate(ctx, id, to)
	if err != nil {
		return nil, false, err
	}
	s.logger.Info(ctx, "installation rescheduled", "id", id, "from", from, "to", to)
	return inst, true, nil
}
