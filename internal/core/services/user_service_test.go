package services_test

import (
	"context"
	"testing"

	"github.com/enpointe-io/bank_backend/internal/apperrors"
	"github.com/enpointe-io/bank_backend/internal/core/domain"
	"github.com/enpointe-io/bank_backend/internal/core/services"
	"github.com/enpointe-io/bank_backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockUserRepository is a mock type for the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  *services.UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo, "@enpointe.io")
}

// --- RegisterUser ---

func (suite *UserServiceTestSuite) TestRegisterUser_DefaultsToUserRole() {
	ctx := context.Background()

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleUser &&
			u.PasswordHash != "" &&
			u.PasswordHash != "hunter2secret" &&
			utils.CheckPasswordHash("hunter2secret", u.PasswordHash)
	})).Return(&domain.User{UserID: 1, Username: "carol", Role: domain.RoleUser}, nil).Once()

	user, err := suite.service.RegisterUser(ctx, "carol", "carol@example.com", "hunter2secret")

	suite.Require().NoError(err)
	suite.Equal(domain.RoleUser, user.Role)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_AdminDomainGetsAdminRole() {
	ctx := context.Background()

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleAdmin
	})).Return(&domain.User{UserID: 2, Username: "root", Role: domain.RoleAdmin}, nil).Once()

	user, err := suite.service.RegisterUser(ctx, "root", "ops@Enpointe.IO", "hunter2secret")

	suite.Require().NoError(err)
	suite.Equal(domain.RoleAdmin, user.Role)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_PropagatesDuplicate() {
	ctx := context.Background()

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(nil, apperrors.ErrDuplicate).Once()

	user, err := suite.service.RegisterUser(ctx, "carol", "carol@example.com", "hunter2secret")

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
}

// --- AuthenticateUser ---

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("hunter2secret")
	suite.Require().NoError(err)

	suite.mockRepo.On("FindUserByEmail", ctx, "carol@example.com").
		Return(&domain.User{UserID: 1, Email: "carol@example.com", PasswordHash: hash}, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "carol@example.com", "hunter2secret")

	suite.Require().NoError(err)
	suite.Equal(int64(1), user.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("hunter2secret")
	suite.Require().NoError(err)

	suite.mockRepo.On("FindUserByEmail", ctx, "carol@example.com").
		Return(&domain.User{UserID: 1, PasswordHash: hash}, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "carol@example.com", "wrong")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmailIndistinguishable() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByEmail", ctx, "ghost@example.com").
		Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.AuthenticateUser(ctx, "ghost@example.com", "whatever")

	// Same error kind as a wrong password.
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(user)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
