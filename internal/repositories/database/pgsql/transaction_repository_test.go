//go:build integration

package pgsql_test

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/enpointe-io/bank_backend/internal/apperrors"
	"github.com/enpointe-io/bank_backend/internal/core/domain"
	portsrepo "github.com/enpointe-io/bank_backend/internal/core/ports/repositories"
	"github.com/enpointe-io/bank_backend/internal/repositories/database/pgsql"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// Exercises the locked unit of work against a real Postgres instance.
// Run with:
//
//	TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repositories/database/pgsql/
type TransactionRepositorySuite struct {
	suite.Suite
	pool   *pgxpool.Pool
	repos  *portsrepo.RepositoryProvider
	userID int64
}

func TestTransactionRepositorySuite(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	suite.Run(t, new(TransactionRepositorySuite))
}

func (suite *TransactionRepositorySuite) SetupSuite() {
	databaseURL := os.Getenv("TEST_DATABASE_URL")

	migrationDB, err := sql.Open("pgx", databaseURL)
	suite.Require().NoError(err)
	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	suite.Require().NoError(err)
	m, err := migrate.NewWithDatabaseInstance("file://../../../../migrations", "postgres", driver)
	suite.Require().NoError(err)
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		suite.Require().NoError(err)
	}
	sourceErr, dbErr := m.Close()
	suite.Require().NoError(sourceErr)
	suite.Require().NoError(dbErr)

	pool, err := pgxpool.New(context.Background(), databaseURL)
	suite.Require().NoError(err)
	suite.pool = pool
	suite.repos = pgsql.NewRepositoryProvider(pool)
}

func (suite *TransactionRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

// SetupTest resets the tables and seeds one user with an account
// holding 100.00.
func (suite *TransactionRepositorySuite) SetupTest() {
	ctx := context.Background()

	_, err := suite.pool.Exec(ctx, `TRUNCATE transactions, accounts, users RESTART IDENTITY CASCADE;`)
	suite.Require().NoError(err)

	err = suite.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ('alice', 'alice@example.com', 'not-a-real-hash', 'user')
		RETURNING id;
	`).Scan(&suite.userID)
	suite.Require().NoError(err)

	_, err = suite.pool.Exec(ctx, `
		INSERT INTO accounts (owner_user_id, account_number, account_type, balance)
		VALUES ($1, '123456789', 'Savings', 100.00);
	`, suite.userID)
	suite.Require().NoError(err)
}

func (suite *TransactionRepositorySuite) newTxn(kind domain.TransactionKind, amount string) domain.Transaction {
	amt, err := decimal.NewFromString(amount)
	suite.Require().NoError(err)
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		Kind:          kind,
		Amount:        amt,
		CreatedAt:     time.Now().UTC(),
	}
}

func (suite *TransactionRepositorySuite) currentBalance() decimal.Decimal {
	var balance decimal.Decimal
	err := suite.pool.QueryRow(context.Background(),
		`SELECT balance FROM accounts WHERE owner_user_id = $1;`, suite.userID).Scan(&balance)
	suite.Require().NoError(err)
	return balance
}

func (suite *TransactionRepositorySuite) transactionCount() int {
	var count int
	err := suite.pool.QueryRow(context.Background(),
		`SELECT count(*) FROM transactions WHERE user_id = $1;`, suite.userID).Scan(&count)
	suite.Require().NoError(err)
	return count
}

func (suite *TransactionRepositorySuite) TestSaveTransaction_DepositUpdatesBalanceAndAppendsRow() {
	ctx := context.Background()

	applied, err := suite.repos.TransactionRepo.SaveTransaction(ctx, suite.newTxn(domain.Deposit, "50.25"))

	suite.Require().NoError(err)
	suite.True(decimal.NewFromFloat(150.25).Equal(applied.RunningBalance))
	suite.True(decimal.NewFromFloat(150.25).Equal(suite.currentBalance()))
	suite.Equal(1, suite.transactionCount())
}

func (suite *TransactionRepositorySuite) TestSaveTransaction_InsufficientBalanceRollsBack() {
	ctx := context.Background()

	applied, err := suite.repos.TransactionRepo.SaveTransaction(ctx, suite.newTxn(domain.Withdraw, "150.00"))

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.Nil(applied)

	// The aborted unit of work must leave no trace.
	suite.True(decimal.NewFromFloat(100.00).Equal(suite.currentBalance()))
	suite.Equal(0, suite.transactionCount())
}

func (suite *TransactionRepositorySuite) TestSaveTransaction_NoAccountIsNotFound() {
	ctx := context.Background()

	var otherUserID int64
	err := suite.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ('bob', 'bob@example.com', 'not-a-real-hash', 'user')
		RETURNING id;
	`).Scan(&otherUserID)
	suite.Require().NoError(err)

	txn := suite.newTxn(domain.Deposit, "10.00")
	txn.UserID = otherUserID
	applied, err := suite.repos.TransactionRepo.SaveTransaction(ctx, txn)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(applied)
}

// Concurrent deposits serialize on the account row lock: every one of
// them must land, and the final balance is the exact sum.
func (suite *TransactionRepositorySuite) TestSaveTransaction_ConcurrentDepositsSumExactly() {
	ctx := context.Background()
	const depositors = 20

	var wg sync.WaitGroup
	errs := make(chan error, depositors)
	for i := 0; i < depositors; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.repos.TransactionRepo.SaveTransaction(ctx, suite.newTxn(domain.Deposit, "1.01"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		suite.Require().NoError(err)
	}

	// 100.00 + 20 * 1.01
	suite.True(decimal.NewFromFloat(120.20).Equal(suite.currentBalance()))
	suite.Equal(depositors, suite.transactionCount())

	// Serialized applies produce pairwise-distinct running balances.
	var distinct int
	err := suite.pool.QueryRow(ctx,
		`SELECT count(DISTINCT running_balance) FROM transactions WHERE user_id = $1;`, suite.userID).Scan(&distinct)
	suite.Require().NoError(err)
	suite.Equal(depositors, distinct)
}

// Interleaved withdrawals can only fail by running out of funds, never
// by corrupting the balance: whatever subset succeeds is reflected
// exactly.
func (suite *TransactionRepositorySuite) TestSaveTransaction_ConcurrentWithdrawalsNeverOverdraw() {
	ctx := context.Background()
	const withdrawers = 8 // 8 * 30.00 > 100.00, so some must fail

	var wg sync.WaitGroup
	results := make(chan error, withdrawers)
	for i := 0; i < withdrawers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.repos.TransactionRepo.SaveTransaction(ctx, suite.newTxn(domain.Withdraw, "30.00"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		suite.Require().ErrorIs(err, apperrors.ErrInsufficientBalance)
	}

	// 100.00 funds exactly three 30.00 withdrawals.
	suite.Equal(3, succeeded)
	suite.True(decimal.NewFromFloat(10.00).Equal(suite.currentBalance()))
	suite.Equal(3, suite.transactionCount())
}
