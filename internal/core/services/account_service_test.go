package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/enpointe-io/bank_backend/internal/apperrors"
	"github.com/enpointe-io/bank_backend/internal/core/domain"
	"github.com/enpointe-io/bank_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByOwner(ctx context.Context, ownerUserID int64) (*domain.Account, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsWithOwner(ctx context.Context) ([]domain.AccountWithOwner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountWithOwner), args.Error(1)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  *services.AccountService
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

// --- GetOrCreateAccount ---

func (suite *AccountServiceTestSuite) TestGetOrCreateAccount_ReturnsExisting() {
	ctx := context.Background()
	existing := &domain.Account{
		AccountID:     7,
		OwnerUserID:   42,
		AccountNumber: "123456789",
		AccountType:   domain.Savings,
		Balance:       decimal.NewFromFloat(100.00),
		CreatedAt:     time.Now().UTC(),
	}

	suite.mockRepo.On("FindAccountByOwner", ctx, int64(42)).Return(existing, nil).Once()

	account, err := suite.service.GetOrCreateAccount(ctx, 42)

	suite.Require().NoError(err)
	suite.Equal(existing, account)
	// No SaveAccount call: existing rows are returned unchanged.
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetOrCreateAccount_CreatesOnFirstAccess() {
	ctx := context.Background()

	suite.mockRepo.On("FindAccountByOwner", ctx, int64(42)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.OwnerUserID == 42 &&
			acc.Balance.IsZero() &&
			len(acc.AccountNumber) == 9
	})).Return(&domain.Account{
		AccountID:     1,
		OwnerUserID:   42,
		AccountNumber: "987654321",
		AccountType:   domain.Checking,
		Balance:       decimal.Zero,
	}, nil).Once()

	account, err := suite.service.GetOrCreateAccount(ctx, 42)

	suite.Require().NoError(err)
	suite.Equal(int64(42), account.OwnerUserID)
	suite.True(account.Balance.IsZero(), "new accounts start at 0.00")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetOrCreateAccount_LostRaceReturnsWinnersRow() {
	ctx := context.Background()
	winner := &domain.Account{
		AccountID:     3,
		OwnerUserID:   42,
		AccountNumber: "111222333",
		AccountType:   domain.Business,
		Balance:       decimal.Zero,
	}

	// First lookup misses, the insert loses the unique-constraint race,
	// the re-fetch finds the winner's row.
	suite.mockRepo.On("FindAccountByOwner", ctx, int64(42)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(nil, fmt.Errorf("%w: account insert conflicts on accounts_owner_user_id_key", apperrors.ErrDuplicate)).Once()
	suite.mockRepo.On("FindAccountByOwner", ctx, int64(42)).Return(winner, nil).Once()

	account, err := suite.service.GetOrCreateAccount(ctx, 42)

	suite.Require().NoError(err)
	suite.Equal(winner, account)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetOrCreateAccount_RetriesOnAccountNumberCollision() {
	ctx := context.Background()

	// The duplicate was on account_number (re-fetch still misses), so a
	// second insert with a fresh number goes through.
	suite.mockRepo.On("FindAccountByOwner", ctx, int64(42)).Return(nil, apperrors.ErrNotFound).Twice()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(nil, fmt.Errorf("%w: account insert conflicts on accounts_account_number_key", apperrors.ErrDuplicate)).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(&domain.Account{AccountID: 5, OwnerUserID: 42, Balance: decimal.Zero}, nil).Once()

	account, err := suite.service.GetOrCreateAccount(ctx, 42)

	suite.Require().NoError(err)
	suite.Equal(int64(5), account.AccountID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetOrCreateAccount_PropagatesRepoError() {
	ctx := context.Background()
	repoErr := fmt.Errorf("connection refused")

	suite.mockRepo.On("FindAccountByOwner", ctx, int64(42)).Return(nil, repoErr).Once()

	account, err := suite.service.GetOrCreateAccount(ctx, 42)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- ListAllAccounts ---

func (suite *AccountServiceTestSuite) TestListAllAccounts_AdminSucceeds() {
	ctx := context.Background()
	rows := []domain.AccountWithOwner{
		{Account: domain.Account{AccountID: 2, OwnerUserID: 9}, OwnerName: "alice"},
		{Account: domain.Account{AccountID: 1, OwnerUserID: 4}, OwnerName: "bob"},
	}

	suite.mockRepo.On("ListAccountsWithOwner", ctx).Return(rows, nil).Once()

	accounts, err := suite.service.ListAllAccounts(ctx, domain.RoleAdmin)

	suite.Require().NoError(err)
	suite.Equal(rows, accounts)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAllAccounts_NonAdminDeniedWithoutRead() {
	ctx := context.Background()

	accounts, err := suite.service.ListAllAccounts(ctx, domain.RoleUser)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(accounts)
	// The role gate short-circuits before any data access.
	suite.mockRepo.AssertNotCalled(suite.T(), "ListAccountsWithOwner", mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
