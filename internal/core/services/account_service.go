package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/enpointe-io/bank_backend/internal/apperrors"
	"github.com/enpointe-io/bank_backend/internal/core/domain"
	portsrepo "github.com/enpointe-io/bank_backend/internal/core/ports/repositories"
	"github.com/enpointe-io/bank_backend/internal/middleware"
	"github.com/enpointe-io/bank_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// provisionAttempts bounds retries when a freshly generated account
// number collides with an existing one.
const provisionAttempts = 3

// AccountService implements account provisioning and the admin listing.
type AccountService struct {
	accountRepo portsrepo.AccountRepository
}

func NewAccountService(repo portsrepo.AccountRepository) *AccountService {
	return &AccountService{accountRepo: repo}
}

// GetOrCreateAccount returns the caller's account, creating it on first
// access. Creation is a plain insert guarded by the UNIQUE constraint
// on owner_user_id: when two first-access calls race, exactly one
// insert succeeds and the loser re-fetches the winner's row. The caller
// never sees an "already exists" error.
func (s *AccountService) GetOrCreateAccount(ctx context.Context, ownerUserID int64) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByOwner(ctx, ownerUserID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to look up account in repository", slog.String("error", err.Error()), slog.Int64("owner_user_id", ownerUserID))
		return nil, err
	}

	for attempt := 0; attempt < provisionAttempts; attempt++ {
		number, err := utils.GenerateAccountNumber()
		if err != nil {
			return nil, fmt.Errorf("failed to generate account number: %w", err)
		}
		accountType, err := utils.RandomAccountType()
		if err != nil {
			return nil, fmt.Errorf("failed to pick account type: %w", err)
		}

		created, err := s.accountRepo.SaveAccount(ctx, domain.Account{
			OwnerUserID:   ownerUserID,
			AccountNumber: number,
			AccountType:   accountType,
			Balance:       decimal.Zero,
			CreatedAt:     time.Now().UTC(),
		})
		if err == nil {
			logger.Info("Account provisioned",
				slog.Int64("owner_user_id", ownerUserID),
				slog.Int64("account_id", created.AccountID),
				slog.String("account_type", string(created.AccountType)))
			return created, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.Int64("owner_user_id", ownerUserID))
			return nil, err
		}

		// Duplicate: either a concurrent first-access call won the race
		// on owner_user_id, or the account number collided. Re-fetch to
		// distinguish; a hit means the race was lost and the winner's
		// row is the answer.
		existing, findErr := s.accountRepo.FindAccountByOwner(ctx, ownerUserID)
		if findErr == nil {
			logger.Info("Lost provisioning race, returning existing account",
				slog.Int64("owner_user_id", ownerUserID), slog.Int64("account_id", existing.AccountID))
			return existing, nil
		}
		if !errors.Is(findErr, apperrors.ErrNotFound) {
			return nil, findErr
		}
		// Account number collision: retry with a fresh number.
		logger.Warn("Account number collision during provisioning, retrying", slog.Int64("owner_user_id", ownerUserID))
	}

	return nil, fmt.Errorf("failed to provision account for user %d after %d attempts", ownerUserID, provisionAttempts)
}

// ListAllAccounts returns every account with its owner's display name,
// newest first. The role gate lives here, once, and short-circuits
// before any data access.
func (s *AccountService) ListAllAccounts(ctx context.Context, callerRole domain.Role) ([]domain.AccountWithOwner, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if callerRole != domain.RoleAdmin {
		logger.Warn("Non-admin caller attempted account listing", slog.String("role", string(callerRole)))
		return nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}

	accounts, err := s.accountRepo.ListAccountsWithOwner(ctx)
	if err != nil {
		logger.Error("Failed to list accounts from repository", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Debug("Accounts listed", slog.Int("count", len(accounts)))
	return accounts, nil
}
