package attachments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/sitereg/internal/dbx"
	"github.com/dmitrijs2005/sitereg/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Attachment) (*models.Attachment, error) {
	query :=
		`INSERT INTO attachments (installation_id, kind, file_name, storage_key, content_type, size)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		a.InstallationID, a.Kind, a.FileName, a.StorageKey, a.ContentType, a.Size,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) ListByInstallation(ctx context.Context, installationID string) ([]models.Attachment, error) {
	query :=
		`SELECT id, installation_id, kind, file_name, storage_key, content_type, size, created_at
		 FROM attachments
		 WHERE installation_id = $1
		 ORDER BY kind, created_at`

	rows, err := r.db.QueryContext(ctx, query, installationID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Attachment{}
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.ID, &a.InstallationID, &a.Kind, &a.FileName, &a.StorageKey,
			&a.ContentType, &a.Size, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
