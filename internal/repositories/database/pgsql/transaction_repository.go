package pgsql

import (
	"context"
	"fmt"

	"github.com/enpointe-io/bank_backend/internal/apperrors"
	"github.com/enpointe-io/bank_backend/internal/core/domain"
	portsrepo "github.com/enpointe-io/bank_backend/internal/core/ports/repositories"
	"github.com/enpointe-io/bank_backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryWithTx
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryWithTx) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepository
var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

// SaveTransaction applies one balance mutation inside a single database
// transaction. The FOR UPDATE fetch serializes concurrent mutations on
// the same account: the second caller blocks on the row lock and then
// observes the first caller's committed balance. Any error before the
// commit rolls the whole unit of work back, leaving the balance untouched.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// No-op once the transaction is committed.
	defer r.Rollback(ctx, tx)

	account, err := r.accountRepo.FindAccountByOwnerForUpdate(ctx, tx, txn.UserID)
	if err != nil {
		// Includes ErrNotFound when the user has no account; the ledger
		// never provisions.
		return nil, err
	}

	if txn.Kind == domain.Withdraw && txn.Amount.GreaterThan(account.Balance) {
		return nil, fmt.Errorf("%w: withdrawal of %s exceeds balance %s",
			apperrors.ErrInsufficientBalance, txn.Amount.StringFixed(2), account.Balance.StringFixed(2))
	}

	newBalance := account.Balance.Add(txn.SignedAmount()).Round(2)

	if err := r.accountRepo.UpdateAccountBalanceInTx(ctx, tx, account.AccountID, newBalance); err != nil {
		return nil, err
	}

	txn.AccountID = account.AccountID
	txn.RunningBalance = newBalance

	insertQuery := `
		INSERT INTO transactions (transaction_id, account_id, user_id, kind, amount, running_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, insertQuery,
		txn.TransactionID,
		txn.AccountID,
		txn.UserID,
		txn.Kind,
		txn.Amount,
		txn.RunningBalance,
		txn.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &txn, nil
}

// ListTransactionsByUser returns the user's transactions, newest first.
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, account_id, user_id, kind, amount, running_balance, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		var m models.Transaction
		err := rows.Scan(
			&m.TransactionID,
			&m.AccountID,
			&m.UserID,
			&m.Kind,
			&m.Amount,
			&m.RunningBalance,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, domain.Transaction{
			TransactionID:  m.TransactionID,
			AccountID:      m.AccountID,
			UserID:         m.UserID,
			Kind:           domain.TransactionKind(m.Kind),
			Amount:         m.Amount,
			RunningBalance: m.RunningBalance,
			CreatedAt:      m.CreatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return txns, nil
}
