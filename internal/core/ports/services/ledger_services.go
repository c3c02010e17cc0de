package services

import (
	"context"

	"github.com/enpointe-io/bank_backend/internal/core/domain"
)

// LedgerSvcFacade exposes the balance-mutation engine.
type LedgerSvcFacade interface {
	// ApplyTransaction validates kind and amount, then applies the
	// mutation atomically against the owner's account. The returned
	// transaction carries the new balance in RunningBalance.
	//
	// Failure modes, in order of checking: ErrInvalidTransactionKind,
	// ErrInvalidAmount (both before any storage access), ErrNotFound,
	// ErrInsufficientBalance (both inside the locked unit of work).
	ApplyTransaction(ctx context.Context, ownerUserID int64, kind string, amount string) (*domain.Transaction, error)

	// ListTransactions returns the user's transaction history, newest first.
	ListTransactions(ctx context.Context, ownerUserID int64) ([]domain.Transaction, error)
}
