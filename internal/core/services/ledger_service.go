package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/enpointe-io/bank_backend/internal/apperrors"
	"github.com/enpointe-io/bank_backend/internal/core/domain"
	portsrepo "github.com/enpointe-io/bank_backend/internal/core/ports/repositories"
	"github.com/enpointe-io/bank_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService applies deposits and withdrawals to accounts.
type LedgerService struct {
	transactionRepo portsrepo.TransactionRepository
}

func NewLedgerService(transactionRepo portsrepo.TransactionRepository) *LedgerService {
	return &LedgerService{transactionRepo: transactionRepo}
}

// ApplyTransaction validates the input, then delegates the locked unit
// of work to the repository. Validation failures never touch storage.
// The ledger does not provision: a user without an account gets
// ErrNotFound and must hit the account endpoint first.
func (s *LedgerService) ApplyTransaction(ctx context.Context, ownerUserID int64, kind string, amount string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	k := domain.TransactionKind(kind)
	if !k.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidTransactionKind, kind)
	}

	amt, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not numeric", apperrors.ErrInvalidAmount, amount)
	}
	if !amt.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrInvalidAmount, amt.String())
	}
	amt = amt.Round(2)
	if amt.IsZero() {
		// Sub-cent amounts like 0.004 round to zero; storage rejects a
		// zero transaction, so fail validation here instead.
		return nil, fmt.Errorf("%w: %s rounds to zero at cent precision", apperrors.ErrInvalidAmount, amount)
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        ownerUserID,
		Kind:          k,
		Amount:        amt,
		CreatedAt:     time.Now().UTC(),
	}

	applied, err := s.transactionRepo.SaveTransaction(ctx, txn)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrInsufficientBalance) {
			// Expected caller errors, no need for error-level logging.
			return nil, err
		}
		logger.Error("Failed to apply transaction", slog.String("error", err.Error()),
			slog.Int64("owner_user_id", ownerUserID), slog.String("kind", kind))
		return nil, err
	}

	logger.Info("Transaction applied",
		slog.String("transaction_id", applied.TransactionID),
		slog.Int64("account_id", applied.AccountID),
		slog.String("kind", string(applied.Kind)),
		slog.String("new_balance", applied.RunningBalance.StringFixed(2)))
	return applied, nil
}

// ListTransactions returns the user's transaction history, newest first.
func (s *LedgerService) ListTransactions(ctx context.Context, ownerUserID int64) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txns, err := s.transactionRepo.ListTransactionsByUser(ctx, ownerUserID)
	if err != nil {
		logger.Error("Failed to list transactions from repository", slog.String("error", err.Error()), slog.Int64("owner_user_id", ownerUserID))
		return nil, err
	}
	return txns, nil
}
