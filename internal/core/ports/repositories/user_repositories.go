package repositories

import (
	"context"

	"github.com/enpointe-io/bank_backend/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// SaveUser inserts a new user and returns the persisted row with its
	// generated ID. Duplicate username/email surfaces as apperrors.ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) (*domain.User, error)

	// FindUserByEmail returns the user with the given email, or
	// apperrors.ErrNotFound.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByID returns the user with the given ID, or
	// apperrors.ErrNotFound.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)
}
