package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/dbx"
	"github.com/dmitrijs2005/sitereg/internal/models"
)

const columns = `id, first_name, last_name, email, phone, end_user, status, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.MobilityAccount, error) {
	a := &models.MobilityAccount{}
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Phone, &a.EndUser,
		&a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, acc *models.MobilityAccount) (*models.MobilityAccount, error) {
	query :=
		`INSERT INTO mobility_accounts (first_name, last_name, email, phone, end_user, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		acc.FirstName, acc.LastName, acc.Email, acc.Phone, acc.EndUser, acc.Status,
	).Scan(&acc.ID, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return acc, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.MobilityAccount, error) {
	query := `SELECT ` + columns + ` FROM mobility_accounts WHERE id = $1`

	acc, err := scan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return acc, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.MobilityAccount, error) {
	query := `SELECT ` + columns + ` FROM mobility_accounts ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.MobilityAccount{}
	for rows.Next() {
		acc, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.AccountStatus) (*models.MobilityAccount, error) {
	query := `UPDATE mobility_accounts SET status = $2, updated_at = now() WHERE id = $1 RETURNING ` + columns

	acc, err := scan(r.db.QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return acc, nil
}
