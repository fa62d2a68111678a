package installations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/dbx"
	"github.com/dmitrijs2005/sitereg/internal/models"
)

const columns = `id, intersection_name, end_user, distributor, cabinet_type, tls_connection, detection_io,
		phasing_files, timing_files, contact_name, contact_email, contact_phone,
		estimated_install_date, status, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.Installation, error) {
	i := &models.Installation{}
	err := row.Scan(&i.ID, &i.IntersectionName, &i.EndUser, &i.Distributor, &i.CabinetType,
		&i.TLSConnection, &i.DetectionIO, &i.PhasingFiles, &i.TimingFiles,
		&i.ContactName, &i.ContactEmail, &i.ContactPhone,
		&i.EstimatedInstallDate, &i.Status, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (r *PostgresRepository) Create(ctx context.Context, inst *models.Installation) (*models.Installation, error) {
	query :=
		`INSERT INTO installations (intersection_name, end_user, distributor, cabinet_type, tls_connection,
		 detection_io, phasing_files, timing_files, contact_name, contact_email, contact_phone,
		 estimated_install_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		inst.IntersectionName, inst.EndUser, inst.Distributor, inst.CabinetType, inst.TLSConnection,
		inst.DetectionIO, inst.PhasingFiles, inst.TimingFiles, inst.ContactName, inst.ContactEmail,
		inst.ContactPhone, inst.EstimatedInstallDate, inst.Status,
	).Scan(&inst.ID, &inst.CreatedAt, &inst.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return inst, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Installation, error) {
	query := `SELECT ` + columns + ` FROM installations WHERE id = $1`

	inst, err := scan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return inst, nil
}

func (r *PostgresRepository) List(ctx context.Context, order Order) ([]models.Installation, error) {
	orderBy := `created_at DESC`
	if order == ByInstallDateAsc {
		orderBy = `estimated_install_date ASC NULLS LAST, created_at DESC`
	}
	query := `SELECT ` + columns + ` FROM installations ORDER BY ` + orderBy

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Installation{}
	for rows.Next() {
		inst, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.InstallationStatus) (*models.Installation, error) {
	query := `UPDATE installations SET status = $2, updated_at = now() WHERE id = $1 RETURNING ` + columns
	return r.updateOne(ctx, query, id, status)
}

func (r *PostgresRepository) UpdateDate(ctx context.Context, id string, date models.Date) (*models.Installation, error) {
	query := `UPDATE installations SET estimated_install_date = $2, updated_at = now() WHERE id = $1 RETURNING ` + columns
	return r.updateOne(ctx, query, id, date)
}

func (r *PostgresRepository) updateOne(ctx context.Context, query, id string, value any) (*models.Installation, error) {
	inst, err := scan(r.db.QueryRowContext(ctx, query, id, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return inst, nil
}
