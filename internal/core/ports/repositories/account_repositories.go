package repositories

import (
	"context"

	"github.com/enpointe-io/bank_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	// SaveAccount inserts a new account and returns the persisted row
	// with its generated ID. A unique-constraint violation (either on
	// owner_user_id or account_number) surfaces as apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// FindAccountByOwner returns the account owned by the given user,
	// or apperrors.ErrNotFound.
	FindAccountByOwner(ctx context.Context, ownerUserID int64) (*domain.Account, error)

	// ListAccountsWithOwner returns every account joined with its
	// owner's display name, newest first. Plain snapshot read, no locks.
	ListAccountsWithOwner(ctx context.Context) ([]domain.AccountWithOwner, error)
}

// AccountRepositoryWithTx extends AccountRepository with the
// transaction-scoped operations the ledger's unit of work needs.
type AccountRepositoryWithTx interface {
	AccountRepository

	// FindAccountByOwnerForUpdate fetches the account row with an
	// exclusive row lock held until the surrounding transaction ends.
	// This is the sole serialization point for balance mutations.
	FindAccountByOwnerForUpdate(ctx context.Context, tx pgx.Tx, ownerUserID int64) (*domain.Account, error)

	// UpdateAccountBalanceInTx persists a new balance for the locked row.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID int64, newBalance decimal.Decimal) error
}
