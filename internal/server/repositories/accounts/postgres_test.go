package accounts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columnNames = []string{"id", "first_name", "last_name", "email", "phone", "end_user", "status", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	q := `(?s)^INSERT\s+INTO\s+mobility_accounts\s*\(first_name,\s*last_name,\s*email,\s*phone,\s*end_user,\s*status\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id,\s*created_at,\s*updated_at$`
	mock.ExpectQuery(q).
		WithArgs("Ana", "Chen", "ana@x.io", "555-0100", "County", "active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("a-1", now, now))

	got, err := repo.Create(context.Background(), &models.MobilityAccount{
		FirstName: "Ana",
		LastName:  "Chen",
		Email:     "ana@x.io",
		Phone:     "555-0100",
		EndUser:   "County",
		Status:    models.AccountActive,
	})
	require.NoError(t, err)
	assert.Equal(t, "a-1", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+mobility_accounts`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.MobilityAccount{Status: models.AccountActive})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(columnNames).
		AddRow("a-2", "Bo", "Li", "bo@x.io", "1", "City", "inactive", now, now).
		AddRow("a-1", "Ana", "Chen", "ana@x.io", "2", "County", "active", now, now)
	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+mobility_accounts\s+ORDER\s+BY\s+created_at\s+DESC$`).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.AccountInactive, got[0].Status)
	assert.Equal(t, "Ana", got[1].FirstName)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+mobility_accounts\s+WHERE\s+id`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateStatus(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	q := `(?s)^UPDATE\s+mobility_accounts\s+SET\s+status\s*=\s*\$2,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1\s+RETURNING`
	mock.ExpectQuery(q).WithArgs("a-1", "inactive").
		WillReturnRows(sqlmock.NewRows(columnNames).AddRow("a-1", "Ana", "Chen", "ana@x.io", "2", "County", "inactive", now, now))

	got, err := repo.UpdateStatus(context.Background(), "a-1", models.AccountInactive)
	require.NoError(t, err)
	assert.Equal(t, models.AccountInactive, got.Status)

	mock.ExpectQuery(q).WithArgs("ghost", "active").WillReturnRows(sqlmock.NewRows(columnNames))
	_, err = repo.UpdateStatus(context.Background(), "ghost", models.AccountActive)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
