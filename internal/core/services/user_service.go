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
	"github.com/enpointe-io/bank_backend/internal/utils"
)

// UserService implements registration and credential verification.
type UserService struct {
	userRepo         portsrepo.UserRepository
	adminEmailDomain string
}

func NewUserService(repo portsrepo.UserRepository, adminEmailDomain string) *UserService {
	return &UserService{userRepo: repo, adminEmailDomain: adminEmailDomain}
}

// RegisterUser creates a user with a bcrypt-hashed password. Accounts
// with an email under the configured admin domain get the admin role.
func (s *UserService) RegisterUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := domain.RoleUser
	if s.adminEmailDomain != "" && strings.HasSuffix(strings.ToLower(email), strings.ToLower(s.adminEmailDomain)) {
		role = domain.RoleAdmin
	}

	user, err := s.userRepo.SaveUser(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save user in repository", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("User registered", slog.Int64("user_id", user.UserID), slog.String("role", string(user.Role)))
	return user, nil
}

// AuthenticateUser verifies the credentials and returns the user.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrValidation)
		}
		logger.Error("Failed to look up user by email", slog.String("error", err.Error()))
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrValidation)
	}

	return user, nil
}
