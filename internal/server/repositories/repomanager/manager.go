// Package repomanager vends the portal repositories over one backing
// store and runs multi-repository writes atomically.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/sitereg/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/sitereg/internal/server/repositories/attachments"
	"github.com/dmitrijs2005/sitereg/internal/server/repositories/installations"
)

// Repositories is the set of repositories bound to one connection or
// transaction.
type Repositories interface {
	Installations() installations.Repository
	MobilityAccounts() accounts.Repository
	Attachments() attachments.Repository
}

type RepositoryManager interface {
	Repositories
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	// WithinTx runs fn against repositories that commit together when fn
	// returns nil and are rolled back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	Close() error
}

// Open returns a PostgreSQL manager for dsn, or an in-memory one when dsn
// is empty.
func Open(ctx context.Context, dsn string) (RepositoryManager, error) {
	if dsn == "" {
		return NewMemoryRepositoryManager(), nil
	}
	return OpenPostgres(ctx, dsn)
}
