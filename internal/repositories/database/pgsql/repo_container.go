package pgsql

import (
	portsrepo "github.com/enpointe-io/bank_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires up the pgx-backed repositories against a
// shared connection pool. The pool is the process-wide storage handle:
// created at startup, passed here explicitly, closed on shutdown.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)
	return &portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(pool),
		AccountRepo:     accountRepo,
		TransactionRepo: newPgxTransactionRepository(pool, accountRepo),
	}
}
