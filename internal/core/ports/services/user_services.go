package services

import (
	"context"

	"github.com/enpointe-io/bank_backend/internal/core/domain"
)

// UserSvcFacade exposes registration and credential verification.
type UserSvcFacade interface {
	// RegisterUser creates a user with a bcrypt-hashed password. The
	// role is derived from the email domain. Duplicate username/email
	// surfaces as apperrors.ErrDuplicate.
	RegisterUser(ctx context.Context, username, email, password string) (*domain.User, error)

	// AuthenticateUser verifies the credentials and returns the user.
	// Unknown email and wrong password both return apperrors.ErrValidation
	// so callers cannot distinguish them.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}
