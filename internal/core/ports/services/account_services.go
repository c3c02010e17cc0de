package services

import (
	"context"

	"github.com/enpointe-io/bank_backend/internal/core/domain"
)

// AccountSvcFacade exposes account provisioning and the admin listing.
type AccountSvcFacade interface {
	// GetOrCreateAccount returns the user's account, creating it on
	// first access. Two concurrent first-access calls for the same user
	// yield the same single row; provisioning losers re-fetch the
	// winner's account instead of erroring.
	GetOrCreateAccount(ctx context.Context, ownerUserID int64) (*domain.Account, error)

	// ListAllAccounts returns every account with its owner's name,
	// newest first. Non-admin callers fail with apperrors.ErrForbidden
	// before any read happens.
	ListAllAccounts(ctx context.Context, callerRole domain.Role) ([]domain.AccountWithOwner, error)
}
