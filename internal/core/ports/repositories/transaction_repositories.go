package repositories

import (
	"context"

	"github.com/enpointe-io/bank_backend/internal/core/domain"
)

// TransactionRepository persists balance mutations atomically.
type TransactionRepository interface {
	// SaveTransaction applies one balance mutation inside a single
	// database transaction: it locks the owner's account row, verifies
	// the withdrawal constraint, persists the rounded new balance and
	// appends the transaction record. It returns the persisted
	// transaction with AccountID and RunningBalance filled in.
	//
	// Failure modes: apperrors.ErrNotFound when the owner has no
	// account, apperrors.ErrInsufficientBalance when a withdrawal
	// exceeds the balance. Any failure rolls the whole unit of work back.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// ListTransactionsByUser returns the user's transactions, newest first.
	ListTransactionsByUser(ctx context.Context, userID int64) ([]domain.Transaction, error)
}
