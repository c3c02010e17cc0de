package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/enpointe-io/bank_backend/internal/apperrors"
	"github.com/enpointe-io/bank_backend/internal/core/domain"
	portsrepo "github.com/enpointe-io/bank_backend/internal/core/ports/repositories"
	"github.com/enpointe-io/bank_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.ID,
		OwnerUserID:   m.OwnerUserID,
		AccountNumber: m.AccountNumber,
		AccountType:   domain.AccountType(m.AccountType),
		Balance:       m.Balance,
		CreatedAt:     m.CreatedAt,
	}
}

// SaveAccount inserts a new account and returns the persisted row.
// The UNIQUE constraints on owner_user_id and account_number make the
// insert the atomic "create only if absent" step of provisioning; a
// violation of either surfaces as apperrors.ErrDuplicate for the
// service to resolve.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (owner_user_id, account_number, account_type, balance, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		account.OwnerUserID,
		account.AccountNumber,
		account.AccountType,
		account.Balance,
		account.CreatedAt,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return nil, fmt.Errorf("%w: account insert conflicts on %s", apperrors.ErrDuplicate, pgErr.ConstraintName)
		}
		return nil, fmt.Errorf("failed to save account for user %d: %w", account.OwnerUserID, err)
	}

	account.AccountID = id
	return &account, nil
}

// FindAccountByOwner retrieves the account owned by the given user.
func (r *PgxAccountRepository) FindAccountByOwner(ctx context.Context, ownerUserID int64) (*domain.Account, error) {
	query := `
		SELECT id, owner_user_id, account_number, account_type, COALESCE(balance, 0), created_at
		FROM accounts
		WHERE owner_user_id = $1;
	`
	var modelAcc models.Account
	err := r.pool.QueryRow(ctx, query, ownerUserID).Scan(
		&modelAcc.ID,
		&modelAcc.OwnerUserID,
		&modelAcc.AccountNumber,
		&modelAcc.AccountType,
		&modelAcc.Balance,
		&modelAcc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account for user %d: %w", ownerUserID, err)
	}

	domainAcc := toDomainAccount(modelAcc)
	return &domainAcc, nil
}

// FindAccountByOwnerForUpdate retrieves the account row with an
// exclusive row lock. Must be called within a transaction; the lock is
// held until the transaction commits or rolls back.
func (r *PgxAccountRepository) FindAccountByOwnerForUpdate(ctx context.Context, tx pgx.Tx, ownerUserID int64) (*domain.Account, error) {
	query := `
		SELECT id, owner_user_id, account_number, account_type, COALESCE(balance, 0), created_at
		FROM accounts
		WHERE owner_user_id = $1
		FOR UPDATE;
	`
	var modelAcc models.Account
	err := tx.QueryRow(ctx, query, ownerUserID).Scan(
		&modelAcc.ID,
		&modelAcc.OwnerUserID,
		&modelAcc.AccountNumber,
		&modelAcc.AccountType,
		&modelAcc.Balance,
		&modelAcc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account for user %d: %w", ownerUserID, err)
	}

	domainAcc := toDomainAccount(modelAcc)
	return &domainAcc, nil
}

// UpdateAccountBalanceInTx persists a new balance for the locked row.
func (r *PgxAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID int64, newBalance decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET balance = $2
		WHERE id = $1;
	`
	ct, err := tx.Exec(ctx, query, accountID, newBalance)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %d: %w", accountID, err)
	}
	if ct.RowsAffected() == 0 {
		// Cannot happen while the row lock is held, but guard anyway.
		return fmt.Errorf("%w: account %d disappeared during balance update", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// ListAccountsWithOwner returns every account joined with its owner's
// display name, ordered by creation time descending. Plain snapshot
// read; it takes no locks and may race benignly with concurrent
// balance mutations.
func (r *PgxAccountRepository) ListAccountsWithOwner(ctx context.Context) ([]domain.AccountWithOwner, error) {
	query := `
		SELECT a.id, a.owner_user_id, a.account_number, a.account_type, COALESCE(a.balance, 0), a.created_at, u.username
		FROM accounts a
		JOIN users u ON a.owner_user_id = u.id
		ORDER BY a.created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts with owners: %w", err)
	}
	defer rows.Close()

	accounts := []domain.AccountWithOwner{}
	for rows.Next() {
		var modelAcc models.Account
		var ownerName string
		err := rows.Scan(
			&modelAcc.ID,
			&modelAcc.OwnerUserID,
			&modelAcc.AccountNumber,
			&modelAcc.AccountType,
			&modelAcc.Balance,
			&modelAcc.CreatedAt,
			&ownerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, domain.AccountWithOwner{
			Account:   toDomainAccount(modelAcc),
			OwnerName: ownerName,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return accounts, nil
}
